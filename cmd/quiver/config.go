// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quiver-cli/internal/config"
	"quiver-cli/internal/issue"
)

// newConfigCommand creates the `quiver config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage quiver configuration",
		Long: `Manage quiver configuration.

Configuration is stored in:
  - Linux: ~/.config/quiver/config.toml
  - macOS: ~/Library/Application Support/quiver/config.toml
  - Windows: %APPDATA%\quiver\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		app.renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	cfgPath, pathErr := config.Path()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	if cfg.Language == "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("language"), SubtitleStyle.Render("(derived from $LANG)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("language"), valueStyle.Render(cfg.Language))
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("list_size"), valueStyle.Render(fmt.Sprintf("%d", cfg.ListSize)))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("terminal_runner"), valueStyle.Render(string(cfg.TerminalRunner)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("sources"))
	for _, src := range cfg.Sources {
		fmt.Fprintf(app.stdout, "  - %s\n", valueStyle.Render(string(src)))
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("plugins"))
	if len(cfg.Plugins) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.Plugins {
			if p.Name != "" {
				fmt.Fprintf(app.stdout, "  - %s (%s)\n", valueStyle.Render(p.Path), valueStyle.Render(p.Name))
			} else {
				fmt.Fprintf(app.stdout, "  - %s\n", valueStyle.Render(p.Path))
			}
		}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}

	if fileExistsCheck(cfgPath) {
		fmt.Fprintf(app.stdout, "Configuration already exists at %s\n", cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
