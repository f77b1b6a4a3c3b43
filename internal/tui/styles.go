// Package tui: Lipgloss styles for the settings screen.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the styles the root model renders with directly. Components
// carry their own.
type Styles struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color

	Filter lipgloss.Style
}

func newStyles() Styles {
	primary := lipgloss.Color("#7B8CDE")
	muted := lipgloss.Color("#4A5568")
	text := lipgloss.Color("#E2E8F0")

	return Styles{
		Primary: primary, Muted: muted, Text: text,

		Filter: lipgloss.NewStyle().
			Foreground(text).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
			BorderForeground(muted).
			Padding(0, 1),
	}
}
