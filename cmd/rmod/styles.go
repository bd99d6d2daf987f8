package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"rmod/pkg/types"
)

// Style definitions shared by the scan and lint output
var (
	accentColor  = lipgloss.Color("#50FA7B") // Green
	dangerColor  = lipgloss.Color("#FF5555") // Red
	bgLightColor = lipgloss.Color("#44475A") // Current Line

	okStyle = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD")).
			Background(bgLightColor).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// renderIndexTable formats built index entries for terminal display.
func renderIndexTable(entries []types.IndexEntry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(bgLightColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return rowStyle
		})

	t.Headers("NAME", "VERSION", "VERIFIED", "SLOTS", "CAPS", "FILE")

	for _, entry := range entries {
		verified := okStyle.Render("yes")
		if !entry.Verified {
			verified = errStyle.Render("no")
		}
		t.Row(
			entry.Name,
			entry.Version,
			verified,
			joinOrDash(entry.Slots),
			joinOrDash(entry.RequiresCaps),
			entry.File,
		)
	}
	return t.Render()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
