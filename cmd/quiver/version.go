// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newVersionCommand creates the `quiver version` command.
func newVersionCommand() *cobra.Command {
	var checkUpdateFlag bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "quiver %s\n", getVersionString())
			if checkUpdateFlag {
				checkUpdate(cmd.OutOrStdout(), Version)
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&checkUpdateFlag, "check-update", false, "check for a newer release")

	return versionCmd
}

// checkUpdate reports whether a newer release exists. Network failures are
// silent: a version check must never break the launcher.
func checkUpdate(w io.Writer, currentVer string) {
	if currentVer == "dev" {
		fmt.Fprintln(w, "Cannot check for updates on a dev build")
		return
	}

	githubTag := &latest.GithubTag{
		Owner:      "quiver-cli",
		Repository: "quiver",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Fprintf(w, "A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Fprintln(w, "Download it from https://github.com/quiver-cli/quiver/releases")
	} else {
		fmt.Fprintf(w, "You are using the latest version: %s\n", currentVer)
	}
}
