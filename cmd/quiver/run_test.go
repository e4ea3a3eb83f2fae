// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"quiver-cli/internal/catalog"
)

func TestCollectLaunchable(t *testing.T) {
	t.Parallel()

	forest := []catalog.Entry{
		{DisplayName: "Doom", Command: []string{"doom"}},
		{DisplayName: "Games", Children: []catalog.Entry{
			{DisplayName: "Chess", Command: []string{"gnome-chess"}},
			{DisplayName: "Retro", Children: []catalog.Entry{
				{DisplayName: "Pong", Command: []string{"pong"}},
			}},
		}},
	}

	matches := collectLaunchable(forest)

	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = m.label
	}
	want := []string{
		"Doom",
		"Games / Chess",
		"Games / Retro / Pong",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("unexpected labels (-want +got):\n%s", diff)
	}

	// Group nodes provide label context but are not launchable themselves.
	for _, m := range matches {
		if len(m.entry.Command) == 0 {
			t.Errorf("%q has no command and should not be launchable", m.label)
		}
	}
}

func TestCollectLaunchable_Empty(t *testing.T) {
	t.Parallel()

	if got := collectLaunchable(nil); len(got) != 0 {
		t.Errorf("expected no matches for an empty forest, got %d", len(got))
	}
}
