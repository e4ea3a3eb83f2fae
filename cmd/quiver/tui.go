// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"quiver-cli/internal/tui"
)

// newTuiCommand creates the `quiver tui` command.
func newTuiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive picker",
		Long: `Open the interactive picker: type to filter, arrow keys to move,
enter to launch the selection, esc to leave.

This is also what a bare 'quiver' does when stdout is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd.Context(), app)
		},
	}
}

func runPicker(ctx context.Context, app *App) error {
	cfg := app.loadConfig(ctx)
	cat := app.newCatalog(cfg)

	// Only the start hooks run up front; the picker pulls entries in as
	// the user types, so it comes up instantly even on a huge $PATH.
	cat.StartSources()

	ent, ok, err := tui.Pick(cfg, cat)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return app.launchEntry(cfg, ent)
}
