package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func loadNotes(cmd *cobra.Command) (*Notes, error) {
	file, _ := cmd.Flags().GetString("file")
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return parseNotes(source)
}

func printRelease(notes *Notes, release *Release) {
	if release.Date != "" {
		fmt.Printf("## [%s] - %s\n\n", release.Version, release.Date)
	} else {
		fmt.Printf("## [%s]\n\n", release.Version)
	}
	fmt.Print(release.Body)
	if url, ok := notes.Links[release.Version]; ok {
		fmt.Printf("\n\n[%s]: %s\n", release.Version, url)
	}
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one version's release notes",
	Long:  `Print a single version's section as a standalone release note body.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		version, _ := cmd.Flags().GetString("version")
		release := notes.Find(version)
		if release == nil {
			return fmt.Errorf("no changelog entry for %s", version)
		}

		printRelease(notes, release)
		return nil
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest released version's notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		release := notes.Latest()
		if release == nil {
			return fmt.Errorf("no dated releases in changelog")
		}

		if versionOnly, _ := cmd.Flags().GetBool("version-only"); versionOnly {
			fmt.Println(release.Version)
			return nil
		}
		printRelease(notes, release)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List changelog versions in file order",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		for _, release := range notes.Releases {
			if release.Date != "" {
				fmt.Printf("%s\t%s\n", release.Version, release.Date)
			} else {
				fmt.Println(release.Version)
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{showCmd, latestCmd, listCmd} {
		cmd.Flags().StringP("file", "f", "CHANGELOG.md", "changelog file to read")
	}
	showCmd.Flags().StringP("version", "v", "", "version to print, with or without a leading v")
	_ = showCmd.MarkFlagRequired("version")
	latestCmd.Flags().Bool("version-only", false, "print only the version number")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(listCmd)
}
