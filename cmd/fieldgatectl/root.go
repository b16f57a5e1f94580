package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fieldgatectl",
	Short: "Fieldgate authorization server control",
	Long: `fieldgatectl manages the Fieldgate authorization and credential server:
run the server, migrate the database, manage keys, and seed roles.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
