// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"path/filepath"
	"slices"
)

const (
	// FlagTerminal marks an entry that must be wrapped in a terminal emulator
	// when launched.
	FlagTerminal RunFlags = 1 << iota
	// FlagDetach marks an entry that should detach from the launcher process
	// before exec instead of replacing it.
	FlagDetach
)

type (
	// RunFlags is a bit-set of launch-time hints attached to an Entry. The
	// catalog never interprets them; they travel with the entry to the launch
	// collaborator.
	RunFlags uint16

	// Entry is one launchable item in the catalog forest. Children hold
	// related-but-distinguishable commands discovered under the same
	// canonical name (desktop-entry actions, plugin sub-commands); they are
	// owned exclusively by their parent.
	Entry struct {
		// DisplayName is the human-readable label. Empty means the name is
		// derived from the command instead.
		DisplayName string
		// SearchTerms are extra substrings matched during search, such as the
		// raw binary name of a renamed application.
		SearchTerms []string
		// Command is the launch argv. The full sequence is the dedup key;
		// Command[0] is the launch target.
		Command []string
		// Flags carries launch hints for the run collaborator.
		Flags RunFlags
		// Children are nested entries owned by this one.
		Children []Entry
	}
)

// Terminal reports whether the entry must run inside a terminal emulator.
func (f RunFlags) Terminal() bool { return f&FlagTerminal != 0 }

// Detach reports whether the launcher should detach before exec.
func (f RunFlags) Detach() bool { return f&FlagDetach != 0 }

// Name returns the label shown to the user: the display name when present,
// otherwise the basename of the launch command.
func (e *Entry) Name() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.ExecName()
}

// ExecName returns the basename of the launch target, or "" for an entry
// without a command.
func (e *Entry) ExecName() string {
	if len(e.Command) == 0 || e.Command[0] == "" {
		return ""
	}
	return filepath.Base(e.Command[0])
}

// Clone returns a deep copy of the entry including its subtree. Snapshots
// handed to front-ends are clones, so later catalog mutation cannot reach
// them.
func (e *Entry) Clone() Entry {
	out := *e
	out.SearchTerms = slices.Clone(e.SearchTerms)
	out.Command = slices.Clone(e.Command)
	if e.Children != nil {
		out.Children = make([]Entry, len(e.Children))
		for i := range e.Children {
			out.Children[i] = e.Children[i].Clone()
		}
	}
	return out
}
