// Package pprint provides rich terminal output formatting for the hotkeys CLI:
// tables, keycap badges, coloured panels and status lines.
package pprint

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout
	errW  io.Writer = os.Stderr
)

// SetOutput redirects normal and error output, returning a func that
// restores the previous writers. Tests use it to capture output.
func SetOutput(stdout, stderr io.Writer) (restore func()) {
	outMu.Lock()
	defer outMu.Unlock()
	prevOut, prevErr := out, errW
	out, errW = stdout, stderr
	return func() {
		outMu.Lock()
		defer outMu.Unlock()
		out, errW = prevOut, prevErr
	}
}

func stdout() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return out
}

func stderr() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return errW
}

// ─────────────────────────────────────────────────────────────────────────────
// Colour palette
// ─────────────────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.Color("#7B8CDE") // blue-purple
	ColorAccent  = lipgloss.Color("#56E0C8") // Teal
	ColorSuccess = lipgloss.Color("#48BB78") // Green
	ColorWarning = lipgloss.Color("#F6AD55") // Amber
	ColorError   = lipgloss.Color("#FC8181") // Red
	ColorMuted   = lipgloss.Color("#4A5568") // Grey
	ColorText    = lipgloss.Color("#E2E8F0") // Off-white
)

// ─────────────────────────────────────────────────────────────────────────────
// Styles
// ─────────────────────────────────────────────────────────────────────────────

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Width(14)

	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	StyleKeycap = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(lipgloss.Color("#2D3748")).
			Padding(0, 1)
)

// ─────────────────────────────────────────────────────────────────────────────
// Simple output helpers
// ─────────────────────────────────────────────────────────────────────────────

// Success prints a green ✓ success line.
func Success(format string, args ...any) {
	fmt.Fprintln(stdout(), StyleSuccess.Render("✓ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Warn prints an amber ⚠ warning line.
func Warn(format string, args ...any) {
	fmt.Fprintln(stdout(), StyleWarning.Render("⚠ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Error prints a red ✗ error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(stderr(), StyleError.Render("✗ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed info line.
func Info(format string, args ...any) {
	fmt.Fprintln(stdout(), StyleMuted.Render("  "+fmt.Sprintf(format, args...)))
}

// Header prints a section header.
func Header(title string) {
	bar := strings.Repeat("─", 60)
	w := stdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, StylePrimary.Render(bar))
	fmt.Fprintln(w, StylePrimary.Render(" ◉ "+strings.ToUpper(title)))
	fmt.Fprintln(w, StylePrimary.Render(bar))
}

// KV prints a labelled key-value pair.
func KV(key, value string) {
	fmt.Fprintln(stdout(), StyleLabel.Render(key)+StyleText.Render(value))
}

// Rule prints a full-width horizontal rule.
func Rule(w int) {
	fmt.Fprintln(stdout(), StyleMuted.Render(strings.Repeat("─", w)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Panel
// ─────────────────────────────────────────────────────────────────────────────

// Panel renders a rounded-border box with optional title.
func Panel(title, body string) {
	content := body
	if title != "" {
		content = StyleAccent.Render(" "+title+" ") + "\n" + body
	}
	fmt.Fprintln(stdout(), StylePanel.Render(content))
}

// ─────────────────────────────────────────────────────────────────────────────
// Keycaps
// ─────────────────────────────────────────────────────────────────────────────

// Keycaps renders each display part of a shortcut as a small key badge.
// An empty parts slice renders as a muted hyphen.
func Keycaps(parts []string) string {
	if len(parts) == 0 {
		return StyleMuted.Render("-")
	}
	caps := make([]string, len(parts))
	for i, p := range parts {
		caps[i] = StyleKeycap.Render(p)
	}
	return strings.Join(caps, " ")
}

// ─────────────────────────────────────────────────────────────────────────────
// Table
// ─────────────────────────────────────────────────────────────────────────────

// Table renders a simple terminal table with coloured headers.
type Table struct {
	headers []string
	rows    [][]string
	out     io.Writer
}

// NewTable creates a new Table writing to the current output.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, out: stdout()}
}

// AddRow appends a data row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the table.
func (t *Table) Render() {
	// Cells may hold styled text or glyphs like ⌘, so measure display width.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	// Header
	fmt.Fprintln(t.out)
	header := ""
	for i, h := range t.headers {
		header += pad(h, widths[i]+2)
	}
	fmt.Fprintln(t.out, StylePrimary.Render(header))

	sep := ""
	for _, w := range widths {
		sep += strings.Repeat("─", w+2)
	}
	fmt.Fprintln(t.out, StyleMuted.Render(sep))

	// Rows
	for _, row := range t.rows {
		line := ""
		for i, cell := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			line += pad(cell, w+2)
		}
		fmt.Fprintln(t.out, line)
	}
	fmt.Fprintln(t.out)
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
