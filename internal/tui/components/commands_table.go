package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one line of the command table.
type Row struct {
	ID     string
	Name   string
	Parts  []string // display parts of the resolved binding; empty when unbound
	Custom bool
}

// TableState carries what the table needs besides its rows.
type TableState struct {
	Selected  int
	Capturing string // command being recorded, if any
	Width     int
	Height    int
}

// RenderCommandTable renders the command list with shortcut badges.
func RenderCommandTable(rows []Row, st TableState) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4A5568")).Bold(true).Padding(0, 1)
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")).Padding(0, 1)
	selStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("#171A2B")).
		Foreground(lipgloss.Color("#56E0C8")).Bold(true).Padding(0, 1)

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7B8CDE")).Bold(true).
		Padding(0, 1).
		Render("KEYBOARD SHORTCUTS")

	nameW := 28
	hdr := headerStyle.Render(fmt.Sprintf("  %-*s %s", nameW, "COMMAND", "SHORTCUT"))

	var b strings.Builder
	for _, r := range visible(rows, st.Selected, st.Height-4) {
		shortcut := badges(r.Parts)
		switch {
		case r.ID == st.Capturing:
			shortcut = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECC94B")).Bold(true).
				Render("press a shortcut… (esc to cancel)")
		case r.Custom:
			shortcut += lipgloss.NewStyle().Foreground(lipgloss.Color("#56E0C8")).Render("  ● custom")
		}
		line := fmt.Sprintf("%-*s %s", nameW, truncate(r.Name, nameW), shortcut)
		if r.index == st.Selected {
			b.WriteString(selStyle.Render("▶ " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	body := b.String()
	if len(rows) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A5568")).
			Padding(2, 2).
			Render("No commands match. Edit commands.yaml or clear the filter.")
	}

	return lipgloss.NewStyle().Width(st.Width).Height(st.Height).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, hdr, body))
}

type indexedRow struct {
	Row
	index int
}

// visible returns the window of rows that keeps selected on screen.
func visible(rows []Row, selected, height int) []indexedRow {
	if height < 1 {
		height = 1
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]indexedRow, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, indexedRow{Row: rows[i], index: i})
	}
	return out
}

func badges(parts []string) string {
	if len(parts) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#4A5568")).Render("unassigned")
	}
	capStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E2E8F0")).
		Background(lipgloss.Color("#2D3748")).
		Padding(0, 1)
	caps := make([]string, len(parts))
	for i, p := range parts {
		caps[i] = capStyle.Render(p)
	}
	return strings.Join(caps, " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
