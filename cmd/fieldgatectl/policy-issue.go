package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/db"
	"github.com/fieldgate/fieldgate/pkg/policy"
	keystore "github.com/fieldgate/fieldgate/pkg/signer/store"
	gormstore "github.com/fieldgate/fieldgate/pkg/store/gorm"
)

// policyIssueCmd represents the policy issue command
var policyIssueCmd = &cobra.Command{
	Use:   "issue <device-id>",
	Short: "Issue a signed policy document for a device",
	Long: `Issue a signed policy document for a device and print the compact JWS.

Useful for pre-provisioning a device before it can reach the server, or
for inspecting what a device would receive.

Example:
  fieldgatectl policy issue device-7`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := issuePolicy(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue policy: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	policyCmd.AddCommand(policyIssueCmd)
}

func issuePolicy(deviceID string) error {
	keys, err := openKeyStore()
	if err != nil {
		return err
	}

	signingKey, err := keys.ByID(keystore.PolicySigningKeyID)
	if err != nil {
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return fmt.Errorf("no signing key found, run \"fieldgatectl signing-key generate\" first")
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	defaults := policy.DefaultDefaults()
	if cfg.PolicyDefaultsPath != "" {
		defaults, err = policy.LoadDefaults(cfg.PolicyDefaultsPath)
		if err != nil {
			return err
		}
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	engine := policy.NewEngine(
		gormstore.NewDeviceStore(database),
		gormstore.NewTeamStore(database),
		gormstore.NewPolicyIssueStore(database),
		signingKey.Key,
		defaults,
	)

	result := engine.IssuePolicy(context.Background(), deviceID, "")
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Fprintf(os.Stderr, "Issued policy version %d for %s (expires %s)\n",
		result.PolicyVersion, deviceID, result.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(result.JWS)
	return nil
}
