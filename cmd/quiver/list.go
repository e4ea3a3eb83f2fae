// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/issue"
)

// listOptions carries the inputs of a listing run.
type listOptions struct {
	query    string
	showExec bool
}

// newListCommand creates the `quiver list` command.
func newListCommand(app *App) *cobra.Command {
	var showExec bool

	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List catalog entries as a tree",
		Long: `List the launchable entries of every configured source.

With a query only matching entries are shown, following the same rules
as the picker: a matching group keeps its children, a matching child of
a non-matching group is listed on its own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), app, listOptions{
				query:    strings.Join(args, " "),
				showExec: showExec,
			})
		},
	}
	listCmd.Flags().BoolVar(&showExec, "exec", false, "show the command column")
	return listCmd
}

func runList(ctx context.Context, app *App, opts listOptions) error {
	cfg := app.loadConfig(ctx)
	cat := app.newCatalog(cfg)
	cat.Start()

	if len(cat.AllEntries()) == 0 {
		app.renderIssue(issue.NoEntriesFoundId)
		return &ExitError{Code: 1, Err: errors.New("no launchable entries discovered")}
	}

	results := cat.SearchLoaded(opts.query)
	if len(results) == 0 {
		app.renderIssue(issue.NoMatchesFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("nothing matches %q", opts.query)}
	}

	fmt.Fprint(app.stdout, renderForest(results, opts.showExec))
	return nil
}

// renderForest prints the forest one row per node, children hanging under
// their parent with a pipe marker, optionally followed by the command
// column.
func renderForest(results []catalog.Entry, showExec bool) string {
	var b strings.Builder
	for path, ent := range catalog.Walk(results, catalog.MaxPathDepth) {
		b.WriteString(entryLine(path.Level(), ent, showExec))
		b.WriteByte('\n')
	}
	return b.String()
}

func entryLine(level int, ent *catalog.Entry, showExec bool) string {
	line := treePrefix(level) + ent.Name()
	if showExec && len(ent.Command) > 0 {
		line += "  " + VerboseStyle.Render(strings.Join(ent.Command, " "))
	}
	return line
}

func treePrefix(level int) string {
	switch level {
	case 1:
		return "  "
	case 2:
		return "  |- "
	default:
		return strings.Repeat("  ", level-1) + "  |- "
	}
}
