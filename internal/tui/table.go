package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/adrianmross/mpctl/pkg/multipass"
)

const minColumnWidth = 6

// newTableView builds the read-only CSV view of `list --format csv`.
func newTableView(t multipass.Table, width, height int) table.Model {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = max(minColumnWidth, lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	cols := make([]table.Column, len(t.Header))
	for i, h := range t.Header {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, table.Row(r))
	}

	tv := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithWidth(width),
		table.WithHeight(max(height, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(infoColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accentColor).
		Bold(false)
	tv.SetStyles(s)
	return tv
}
