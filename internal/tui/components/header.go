// Package components: sub-components of the shortcut settings screen.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─────────────────────────────────────────────────────────────────────────────
// Header component
// ─────────────────────────────────────────────────────────────────────────────

// Header renders the top status bar.
type Header struct {
	source   string
	commands int
	custom   int
	isMac    bool
}

// NewHeader creates a Header for the given registry source.
func NewHeader(source string) Header {
	return Header{source: source}
}

func (h *Header) SetCounts(commands, custom int) { h.commands, h.custom = commands, custom }
func (h *Header) SetPlatform(isMac bool)         { h.isMac = isMac }

// View renders the header bar. Accepts total terminal width.
func (h *Header) View(width int) string {
	platform := "other"
	if h.isMac {
		platform = "mac"
	}
	left := fmt.Sprintf(" ⌨ HOTKEYS  %s ", h.source)
	right := fmt.Sprintf(" %s · %d commands · %d custom ", platform, h.commands, h.custom)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#7B8CDE")).
		Foreground(lipgloss.Color("#0D0F18")).
		Bold(true).
		Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
}

// ─────────────────────────────────────────────────────────────────────────────
// Footer component
// ─────────────────────────────────────────────────────────────────────────────

// Footer renders the bottom status line above the key hints.
type Footer struct {
	status string
	err    error
}

// NewFooter creates a Footer.
func NewFooter() Footer { return Footer{} }

// SetStatus shows an informational message and clears any error.
func (f *Footer) SetStatus(s string) { f.status, f.err = s, nil }

// SetError sets an error message to display.
func (f *Footer) SetError(err error) { f.err = err }

// Status returns the current informational message.
func (f *Footer) Status() string { return f.status }

// Err returns the error on display, if any.
func (f *Footer) Err() error { return f.err }

// View renders the footer with the help line underneath.
func (f *Footer) View(width int, help string) string {
	line := lipgloss.NewStyle().Foreground(lipgloss.Color("#56E0C8")).Render(f.status)
	if f.err != nil {
		line = lipgloss.NewStyle().Foreground(lipgloss.Color("#F56565")).Render("✗ " + errorText(f.err))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#171A2B")).
		Width(width).Padding(0, 1).
		Render(line + "\n" + help)
}

// errorText prefers a short cause over the full coded error string.
func errorText(err error) string {
	type messager interface{ Message() string }
	if m, ok := err.(messager); ok {
		return m.Message()
	}
	return err.Error()
}
