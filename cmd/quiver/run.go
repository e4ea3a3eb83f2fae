// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/issue"
)

// newRunCommand creates the `quiver run` command.
func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run <query>",
		Short: "Launch the entry matching a query",
		Long: `Launch the entry matching a query without opening the picker.

The query is matched case-insensitively against entry names and search
terms. A single match launches immediately; several matches open a
selection prompt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), app, strings.Join(args, " "))
		},
	}
}

func runQuery(ctx context.Context, app *App, query string) error {
	cfg := app.loadConfig(ctx)
	cat := app.newCatalog(cfg)
	cat.Start()

	if len(cat.AllEntries()) == 0 {
		app.renderIssue(issue.NoEntriesFoundId)
		return &ExitError{Code: 1, Err: errors.New("no launchable entries discovered")}
	}

	matches := collectLaunchable(cat.SearchLoaded(query))
	switch len(matches) {
	case 0:
		app.renderIssue(issue.NoMatchesFoundId)
		return &ExitError{Code: 1, Err: fmt.Errorf("nothing matches %q", query)}
	case 1:
		return app.launchEntry(cfg, matches[0].entry)
	}

	picked, ok, err := chooseMatch(query, matches)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return app.launchEntry(cfg, picked)
}

// launchableMatch pairs a launchable entry with the label shown in the
// disambiguation prompt.
type launchableMatch struct {
	label string
	entry catalog.Entry
}

// collectLaunchable flattens a result forest into the entries that can
// actually be launched, labelled with their ancestry so nested entries
// stay apart in a flat prompt. Group nodes without a command are label
// context only.
func collectLaunchable(results []catalog.Entry) []launchableMatch {
	labels := make(map[catalog.EntryPath]string)
	var matches []launchableMatch
	for path, ent := range catalog.Walk(results, catalog.MaxPathDepth) {
		label := ent.Name()
		if parent, ok := labels[path.Parent()]; ok {
			label = parent + " / " + label
		}
		labels[path] = label

		if len(ent.Command) == 0 {
			continue
		}
		matches = append(matches, launchableMatch{label: label, entry: ent.Clone()})
	}
	return matches
}

// chooseMatch asks the user to pick one of several matches. ok is false
// when the prompt is dismissed without choosing.
func chooseMatch(query string, matches []launchableMatch) (ent catalog.Entry, ok bool, err error) {
	opts := make([]huh.Option[int], len(matches))
	for i, m := range matches {
		opts[i] = huh.NewOption(m.label, i)
	}

	var picked int
	sel := huh.NewSelect[int]().
		Title(fmt.Sprintf("%d entries match %q", len(matches), query)).
		Options(opts...).
		Value(&picked)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return catalog.Entry{}, false, nil
		}
		return catalog.Entry{}, false, err
	}
	return matches[picked].entry, true, nil
}
