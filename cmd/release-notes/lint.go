package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// Issue is one lint finding. Line 0 means the finding applies to the
// file as a whole.
type Issue struct {
	Line    int
	Message string
}

var (
	isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	semver  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// sectionNames are the Keep a Changelog change categories.
var sectionNames = map[string]bool{
	"Added":      true,
	"Changed":    true,
	"Deprecated": true,
	"Removed":    true,
	"Fixed":      true,
	"Security":   true,
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check the changelog before a release",
	Long: `Check the changelog file for the problems that break release cutting:

- missing title or [Unreleased] section
- version headings that are not "## [X.Y.Z] - YYYY-MM-DD"
- unknown change categories (only Added, Changed, Deprecated, Removed, Fixed, Security)
- releases out of date order (newest must come first)
- versions without a link definition`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}

		issues := Lint(source)
		if len(issues) == 0 {
			fmt.Printf("%s: ok\n", file)
			return nil
		}

		for _, issue := range issues {
			if issue.Line > 0 {
				fmt.Printf("%s:%d: %s\n", file, issue.Line, issue.Message)
			} else {
				fmt.Printf("%s: %s\n", file, issue.Message)
			}
		}
		os.Exit(1)
		return nil
	},
}

// Lint checks a changelog line by line, then cross-checks parsed
// releases against the link definitions.
func Lint(source []byte) []Issue {
	var issues []Issue
	report := func(line int, format string, args ...any) {
		issues = append(issues, Issue{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	var (
		sawTitle      bool
		sawUnreleased bool
		prevDate      string
		versions      []string
	)

	for i, line := range strings.Split(string(source), "\n") {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### "):
			if name := strings.TrimPrefix(trimmed, "### "); !sectionNames[name] {
				report(lineNum, "unknown change category %q", name)
			}

		case strings.HasPrefix(trimmed, "## "):
			version, date := splitVersionHeading(strings.TrimPrefix(trimmed, "## "))
			if strings.EqualFold(version, "unreleased") {
				sawUnreleased = true
				continue
			}
			versions = append(versions, version)

			if !semver.MatchString(version) {
				report(lineNum, "version %q is not semantic (X.Y.Z)", version)
			}
			switch {
			case date == "":
				report(lineNum, "release %s has no date", version)
			case !isoDate.MatchString(date):
				report(lineNum, "date %q is not ISO 8601 (YYYY-MM-DD)", date)
			default:
				// ISO dates sort lexically, so string compare suffices.
				if prevDate != "" && date > prevDate {
					report(lineNum, "release %s (%s) is newer than the entry above it", version, date)
				}
				prevDate = date
			}

		case strings.HasPrefix(trimmed, "# "):
			sawTitle = true
			if !strings.Contains(strings.ToLower(trimmed), "changelog") {
				report(lineNum, "title should mention Changelog")
			}
		}
	}

	if !sawTitle {
		report(0, "missing title heading")
	}
	if !sawUnreleased {
		report(0, "missing [Unreleased] section")
	}

	notes, err := parseNotes(source)
	if err != nil {
		report(0, "unparseable markdown: %v", err)
		return issues
	}
	if sawUnreleased {
		if _, ok := notes.Links["Unreleased"]; !ok {
			report(0, "missing link definition for [Unreleased]")
		}
	}
	for _, version := range versions {
		if _, ok := notes.Links[version]; !ok {
			report(0, "missing link definition for [%s]", version)
		}
	}

	return issues
}

func init() {
	lintCmd.Flags().StringP("file", "f", "CHANGELOG.md", "changelog file to check")
	rootCmd.AddCommand(lintCmd)
}
