package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldgate/fieldgate/pkg/db"
	keystore "github.com/fieldgate/fieldgate/pkg/signer/store"
)

// signingKeyCmd represents the signing-key command
var signingKeyCmd = &cobra.Command{
	Use:   "signing-key",
	Short: "Manage the policy signing key",
	Long:  `Manage the RSA key that signs device policy documents and session credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'signing-key' requires a subcommand (generate, show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(signingKeyCmd)
}

// openKeyStore connects to the database and builds the keystore from
// FIELDGATE_DATA_KEY.
func openKeyStore() (*keystore.KeyStore, error) {
	dataKeyB64, ok := os.LookupEnv("FIELDGATE_DATA_KEY")
	if !ok {
		return nil, fmt.Errorf("FIELDGATE_DATA_KEY environment variable is required")
	}

	dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIELDGATE_DATA_KEY: %w", err)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}

	return keystore.NewKeyStore(database, dataKey)
}
