package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	keystore "github.com/fieldgate/fieldgate/pkg/signer/store"
)

// signingKeyShowCmd represents the signing-key > show command
var signingKeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the policy signing key fingerprint and public key",
	Long: `Show the fingerprint and PEM-encoded public half of the policy signing key.

The fingerprint is the kid carried in every signed policy document, and the
public key is what device agents need to verify them.

Example:
  fieldgatectl signing-key show`,
	Run: func(cmd *cobra.Command, args []string) {
		keys, err := openKeyStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open keystore: %v\n", err)
			os.Exit(1)
		}

		key, err := keys.ByID(keystore.PolicySigningKeyID)
		if err != nil {
			if errors.Is(err, keystore.ErrKeyNotFound) {
				fmt.Fprintln(os.Stderr, "No signing key found. Run \"fieldgatectl signing-key generate\" first.")
			} else {
				fmt.Fprintf(os.Stderr, "Failed to load signing key: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Fingerprint: %s\n", key.Fingerprint())
		fmt.Print(string(key.PublicPem()))
	},
}

func init() {
	signingKeyCmd.AddCommand(signingKeyShowCmd)
}
