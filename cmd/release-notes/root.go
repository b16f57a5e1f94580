// Command release-notes reads the repository CHANGELOG.md and cuts
// per-release note bodies from it. The release pipeline runs
// `release-notes lint` on every change and `release-notes show` when
// tagging.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "release-notes",
	Short: "Changelog linter and release note extractor",
	Long:  `Lint the repository changelog and extract per-version release note bodies from it.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
