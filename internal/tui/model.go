// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

type (
	// row is one visible line of the picker: a node of the result forest,
	// flattened in depth-first order and addressed by its entry path.
	row struct {
		path  catalog.EntryPath
		name  string
		level int
	}

	// Model holds the picker state.
	Model struct {
		// Data
		cat     *catalog.Catalog
		cfg     *config.Config
		results []catalog.Entry
		rows    []row

		// UI state
		cursor int
		offset int
		width  int
		height int

		// Search state
		input textinput.Model

		// Outcome
		picked    *catalog.Entry
		cancelled bool
	}
)

// NewModel builds the picker over a catalog whose sources are already
// started, and runs the initial empty search so the first frame has
// content.
func NewModel(cfg *config.Config, cat *catalog.Catalog) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	m := &Model{cat: cat, cfg: cfg, input: ti}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Picked returns the entry the user chose, if any.
func (m *Model) Picked() (catalog.Entry, bool) {
	if m.picked == nil {
		return catalog.Entry{}, false
	}
	return *m.picked, true
}

// Pick runs the interactive picker and reports the chosen entry. ok is
// false when the user quit without choosing.
func Pick(cfg *config.Config, cat *catalog.Catalog) (ent catalog.Entry, ok bool, err error) {
	model := NewModel(cfg, cat)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return catalog.Entry{}, false, err
	}

	m := finalModel.(*Model)
	ent, ok = m.Picked()
	return ent, ok, nil
}
