package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	keystore "github.com/fieldgate/fieldgate/pkg/signer/store"
)

// signingKeyGenerateCmd represents the signing-key > generate command
var signingKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store the policy signing key",
	Long: `Generate a new RSA signing key and store it, encrypted with the data key,
in the signing_keys table under the well-known policy-signing id.

Fails if a policy signing key already exists.

Example:
  fieldgatectl signing-key generate`,
	Run: func(cmd *cobra.Command, args []string) {
		keys, err := openKeyStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open keystore: %v\n", err)
			os.Exit(1)
		}

		if _, err := keys.ByID(keystore.PolicySigningKeyID); err == nil {
			fmt.Fprintln(os.Stderr, "A policy signing key already exists")
			os.Exit(1)
		} else if !errors.Is(err, keystore.ErrKeyNotFound) {
			fmt.Fprintf(os.Stderr, "Failed to check for existing key: %v\n", err)
			os.Exit(1)
		}

		key, err := keys.Generate(keystore.PolicySigningKeyID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate signing key: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Generated signing key %s\n", keystore.PolicySigningKeyID)
		fmt.Printf("Fingerprint: %s\n", key.Fingerprint())
	},
}

func init() {
	signingKeyCmd.AddCommand(signingKeyGenerateCmd)
}
