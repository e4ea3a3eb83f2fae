// SPDX-License-Identifier: MPL-2.0

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quiver-cli/internal/catalog"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if ent, ok := m.selected(); ok {
				m.picked = &ent
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			m.scrollToCursor()
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.scrollToCursor()
			return m, nil
		}
	}

	// Everything else feeds the search field. A changed query re-runs
	// the search against the catalog, which keeps ingesting entries
	// until the match weight covers the configured list size or every
	// source is exhausted.
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.results = m.cat.Search(m.input.Value(), int(m.cfg.ListSize))
	m.rows = flatten(m.results)
	m.cursor = 0
	m.offset = 0
}

// flatten turns the result forest into the visible row list, one row per
// node, parents immediately followed by their children.
func flatten(results []catalog.Entry) []row {
	var rows []row
	for path, ent := range catalog.Walk(results, catalog.MaxPathDepth) {
		rows = append(rows, row{path: path, name: ent.Name(), level: path.Level()})
	}
	return rows
}

// selected resolves the cursor row back to the entry it denotes in the
// current results. Rows without a launch command, the group nodes plugins
// emit, are not selectable.
func (m *Model) selected() (catalog.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return catalog.Entry{}, false
	}
	ent, ok := catalog.Lookup(m.results, m.rows[m.cursor].path)
	if !ok || len(ent.Command) == 0 {
		return catalog.Entry{}, false
	}
	return ent.Clone(), true
}

// scrollToCursor moves the window so the cursor row stays visible.
func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
