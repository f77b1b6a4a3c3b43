// Package tui defines the Bubble Tea model for the interactive shortcut
// settings screen.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/capture"
	"github.com/f9-o/hotkeys/internal/hotkeys"
	"github.com/f9-o/hotkeys/internal/matcher"
	"github.com/f9-o/hotkeys/internal/tui/components"
)

// Config carries dependencies into the TUI app.
type Config struct {
	Manager *hotkeys.Manager
	Log     *slog.Logger
	// Source names where the commands came from, shown in the header.
	Source string
	// OnDispatch, when set, is called for every command a shortcut fires.
	OnDispatch v1.DispatchFunc
}

// Focus targets delivered with key events. The filter box is a text field,
// so shortcuts typed into it are never dispatched.
var (
	listTarget   = &v1.Node{Tag: "div", Attributes: map[string]string{"role": "listbox"}}
	filterTarget = &v1.Node{Tag: "input", Attributes: map[string]string{"type": "search"}}
)

// CommandsMsg delivers a fresh command list, e.g. from the registry watcher.
type CommandsMsg []v1.Command

// Model is the root Bubble Tea model (Elm architecture).
type Model struct {
	cfg Config
	ctx context.Context

	mgr     *hotkeys.Manager
	bus     *matcher.Bus
	matcher *matcher.Matcher
	session *capture.Session

	// Dimensions
	width  int
	height int

	rows     []components.Row
	selected int

	filter    textinput.Model
	filtering bool

	keys keyMap
	help help.Model

	header components.Header
	footer components.Footer

	// Last command fired through a shortcut
	fired string

	styles Styles
}

// New constructs a new TUI Model.
func New(cfg Config) *Model {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "filter commands"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := &Model{
		cfg:    cfg,
		ctx:    context.Background(),
		mgr:    cfg.Manager,
		bus:    matcher.NewBus(),
		filter: ti,
		keys:   defaultKeymap(),
		help:   help.New(),
		header: components.NewHeader(cfg.Source),
		footer: components.NewFooter(),
		styles: newStyles(),
	}
	m.matcher = matcher.New(m.bus, m.mgr, m.dispatch, cfg.Log)
	m.session = capture.NewSession(m.mgr, m.matcher, cfg.Log)
	m.matcher.Enable()
	m.refresh()
	return m
}

func (m *Model) dispatch(id string) {
	m.fired = id
	m.footer.SetStatus("▶ " + m.mgr.DisplayName(id))
	if m.cfg.OnDispatch != nil {
		m.cfg.OnDispatch(id)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Init
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Init() tea.Cmd {
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case CommandsMsg:
		m.mgr.SetCommands(m.ctx, msg)
		if id := m.session.Target(); id != "" {
			if _, ok := m.mgr.Command(id); !ok {
				m.session.Stop()
			}
		}
		m.refresh()
		m.footer.SetStatus(fmt.Sprintf("registry reloaded: %d commands", len(msg)))

	case tea.KeyMsg:
		// Alt+Ctrl+C is an ordinary shortcut; only plain Ctrl+C quits.
		if msg.Type == tea.KeyCtrlC && !msg.Alt {
			return m, tea.Quit
		}
		if m.session.Capturing() {
			m.handleCapture(msg)
			return m, nil
		}
		if m.filtering {
			return m, m.handleFilter(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

// handleCapture feeds one key into the active capture session.
func (m *Model) handleCapture(msg tea.KeyMsg) {
	ev, ok := KeyEventFromMsg(msg)
	if !ok {
		m.footer.SetError(fmt.Errorf("%q cannot be recorded from a terminal", msg.String()))
		return
	}
	id := m.session.Target()
	outcome, err := m.session.HandleKey(m.ctx, ev)
	switch outcome {
	case capture.OutcomeRejected:
		m.footer.SetError(err)
	case capture.OutcomeCancelled:
		m.footer.SetStatus("recording cancelled")
	case capture.OutcomeCommitted:
		b, _ := m.mgr.Binding(id)
		m.footer.SetStatus(fmt.Sprintf("%s → %s", m.mgr.DisplayName(id), binding.Format(b, m.mgr.IsMac())))
		m.refresh()
	}
}

// handleFilter routes keys to the filter box. Keys still reach the matcher
// bus, where the text-field target keeps them from dispatching.
func (m *Model) handleFilter(msg tea.KeyMsg) tea.Cmd {
	if ev, ok := KeyEventFromMsg(msg); ok {
		ev.Target = filterTarget
		m.bus.Emit(ev)
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		fallthrough
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return cmd
}

// handleKey processes keyboard input on the command list.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if ev, ok := KeyEventFromMsg(msg); ok {
		ev.Target = listTarget
		if m.bus.Emit(ev) {
			return nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Edit):
		if row, ok := m.current(); ok {
			if err := m.session.Start(row.ID); err != nil {
				m.footer.SetError(err)
				break
			}
			m.footer.SetStatus("recording shortcut for " + row.Name)
		}

	case key.Matches(msg, m.keys.Reset):
		if row, ok := m.current(); ok {
			if m.mgr.ResetOne(m.ctx, row.ID) {
				m.footer.SetStatus(row.Name + " restored to default")
			} else {
				m.footer.SetStatus(row.Name + " already uses its default")
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.ResetAll):
		if m.mgr.ResetAll(m.ctx) {
			m.footer.SetStatus("all shortcuts restored to defaults")
		} else {
			m.footer.SetStatus("nothing to reset")
		}
		m.refresh()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()

	case key.Matches(msg, m.keys.Platform):
		m.mgr.SetPlatform(!m.mgr.IsMac())
		m.refresh()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) current() (components.Row, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return components.Row{}, false
	}
	return m.rows[m.selected], true
}

// refresh rebuilds the visible rows from the manager and the filter text.
func (m *Model) refresh() {
	isMac := m.mgr.IsMac()
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(m.filter.Value()))

	cmds := m.mgr.Commands()
	rows := make([]components.Row, 0, len(cmds))
	custom := 0
	for _, c := range cmds {
		isCustom := m.mgr.IsCustom(c.ID)
		if isCustom {
			custom++
		}
		if needle != "" && !matchesFilter(fold, c, needle) {
			continue
		}
		row := components.Row{ID: c.ID, Name: c.DisplayName, Custom: isCustom}
		if b, ok := m.mgr.Binding(c.ID); ok {
			row.Parts = binding.DisplayParts(b, isMac)
		}
		rows = append(rows, row)
	}
	m.rows = rows
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.header.SetCounts(len(cmds), custom)
	m.header.SetPlatform(isMac)
}

func matchesFilter(fold cases.Caser, c v1.Command, needle string) bool {
	if strings.Contains(fold.String(c.DisplayName), needle) || strings.Contains(fold.String(c.ID), needle) {
		return true
	}
	for _, s := range c.Synonyms {
		if strings.Contains(fold.String(s), needle) {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// View
// ─────────────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.header.View(m.width)
	filterLine := m.styles.Filter.Width(m.width).Render(m.filter.View())
	footer := m.footer.View(m.width, m.help.View(m.keys))

	tableHeight := m.height - lipgloss.Height(header) - lipgloss.Height(filterLine) - lipgloss.Height(footer)
	table := components.RenderCommandTable(m.rows, components.TableState{
		Selected:  m.selected,
		Capturing: m.session.Target(),
		Width:     m.width,
		Height:    tableHeight,
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, filterLine, table, footer)
}
