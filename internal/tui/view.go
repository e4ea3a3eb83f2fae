// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// chromeRows is the screen estate around the result list: the search
// field, the blank line under it, and the help line with its margin.
const chromeRows = 4

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		line := rowPrefix(m.rows[i].level) + m.rows[i].name
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.rows) == 0 {
		b.WriteString(hintStyle.Render("  nothing matches"))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(hintStyle.Render("↑/↓: move • enter: launch • esc: quit"))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// rowPrefix indents a row for its depth. Top level entries sit flush
// after a two space gutter, nested ones hang under their parent with a
// pipe marker.
func rowPrefix(level int) string {
	switch level {
	case 1:
		return "  "
	case 2:
		return "  |- "
	default:
		return strings.Repeat("  ", level-1) + "  |- "
	}
}

// visibleRows is how many result rows fit the current terminal height.
// Before the first resize message the configured list size stands in.
func (m *Model) visibleRows() int {
	if m.height == 0 {
		return int(m.cfg.ListSize)
	}
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}
