package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldgate/fieldgate/pkg/audit"
	"github.com/fieldgate/fieldgate/pkg/db"
	"github.com/fieldgate/fieldgate/pkg/store"
	gormstore "github.com/fieldgate/fieldgate/pkg/store/gorm"
)

// tokenRevokeCmd represents the token revoke command
var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke an issued credential or a whole session",
	Long: `Revoke an issued credential by JTI, or every outstanding credential
tied to a session.

Revocation appends to the ledger; the credential stays invalid until its
ledger entry is pruned after it expires.

Example:
  fieldgatectl token revoke --jti 5c0f1b9e
  fieldgatectl token revoke --session session-42 --user user-7`,
	Run: func(cmd *cobra.Command, args []string) {
		jti, _ := cmd.Flags().GetString("jti")
		sessionID, _ := cmd.Flags().GetString("session")
		userID, _ := cmd.Flags().GetString("user")
		reason, _ := cmd.Flags().GetString("reason")
		revokedBy, _ := cmd.Flags().GetString("revoked-by")

		if jti == "" && sessionID == "" {
			fmt.Fprintln(os.Stderr, "Either --jti or --session is required")
			os.Exit(1)
		}

		if err := revokeTokens(jti, sessionID, userID, reason, revokedBy); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to revoke: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenRevokeCmd)
	tokenRevokeCmd.Flags().String("jti", "", "JTI of the credential to revoke")
	tokenRevokeCmd.Flags().String("session", "", "Session whose credentials to revoke")
	tokenRevokeCmd.Flags().String("user", "", "Narrow session revocation to one user")
	tokenRevokeCmd.Flags().String("reason", "manual_revocation", "Reason recorded in the ledger")
	tokenRevokeCmd.Flags().String("revoked-by", "", "Operator recorded in the ledger")
}

func revokeTokens(jti, sessionID, userID, reason, revokedBy string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	tokens := gormstore.NewTokenStore(database)
	ctx := context.Background()
	now := time.Now().UTC()

	if jti != "" {
		if err := tokens.Revoke(ctx, store.Revocation{
			JTI:       jti,
			Reason:    reason,
			RevokedBy: revokedBy,
			RevokedAt: now,
		}); err != nil {
			return err
		}
		audit.Log(audit.TokenRevokedEvent{
			JTI:       jti,
			UserID:    userID,
			Reason:    reason,
			RevokedBy: revokedBy,
		})
		fmt.Printf("Revoked credential %s\n", jti)
		return nil
	}

	jtis, err := tokens.JTIsForSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	for _, id := range jtis {
		if err := tokens.Revoke(ctx, store.Revocation{
			JTI:       id,
			SessionID: sessionID,
			UserID:    userID,
			Reason:    reason,
			RevokedBy: revokedBy,
			RevokedAt: now,
		}); err != nil {
			return err
		}
		audit.Log(audit.TokenRevokedEvent{
			JTI:       id,
			UserID:    userID,
			SessionID: sessionID,
			Reason:    reason,
			RevokedBy: revokedBy,
		})
	}
	fmt.Printf("Revoked %d credential(s) for session %s\n", len(jtis), sessionID)
	return nil
}
