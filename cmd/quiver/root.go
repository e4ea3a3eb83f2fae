// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quiver-cli/internal/config"
	"quiver-cli/internal/issue"
)

var (
	// verbose enables debug logging and error chains.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string

	// app is the composition root shared by all command handlers.
	app = NewApp(Dependencies{})

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "quiver",
		Short: "A keyboard-driven application launcher",
		Long: TitleStyle.Render("quiver") + SubtitleStyle.Render(" - a keyboard-driven application launcher") + `

quiver collects runnable programs from desktop entries, the executable
search path, and user plugin scripts, merges them into one deduplicated
catalog, and launches the entry you pick.

` + SubtitleStyle.Render("Examples:") + `
  quiver                    Open the interactive picker
  quiver run firefox        Launch the best match for "firefox"
  quiver list media         List every entry matching "media"
  quiver config init        Create a default configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// On a terminal the bare command is the picker; piped or
			// redirected it degrades to the plain listing.
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return runPicker(cmd.Context(), app)
			}
			return runList(cmd.Context(), app, listOptions{})
		},
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/quiver/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newTuiCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and applies it to global state:
// the effective verbosity and the default logger.
func initRootConfig() {
	cfg, err := app.Config.Load(context.Background(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Always surface config loading errors to the user.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	log.SetPrefix(config.AppName)
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
