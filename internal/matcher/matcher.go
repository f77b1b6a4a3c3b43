// Package matcher turns live keydown events into command dispatches.
//
// A Matcher subscribes to a Bus in the capture phase while it is enabled and
// not paused, and unsubscribes otherwise. Events aimed at an editable surface
// are never treated as shortcuts.
package matcher

import (
	"log/slog"
	"strings"
	"sync"

	v1 "github.com/f9-o/hotkeys/api/v1"
)

// Lookup finds the command bound to a keystroke. *hotkeys.Manager satisfies it.
type Lookup interface {
	Lookup(ev *v1.KeyEvent) (string, bool)
}

// Matcher dispatches commands for matching key events.
type Matcher struct {
	mu       sync.Mutex
	bus      *Bus
	lookup   Lookup
	dispatch v1.DispatchFunc
	log      *slog.Logger

	enabled bool
	paused  bool
	unsub   func()
}

// New returns a disabled Matcher.
func New(bus *Bus, lookup Lookup, dispatch v1.DispatchFunc, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{bus: bus, lookup: lookup, dispatch: dispatch, log: log}
}

// Enable attaches the listener unless the matcher is paused.
func (m *Matcher) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
	m.syncLocked()
}

// Disable detaches the listener.
func (m *Matcher) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
	m.syncLocked()
}

// Pause suspends dispatch, e.g. while a capture session is active.
func (m *Matcher) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
	m.syncLocked()
}

// Resume undoes Pause.
func (m *Matcher) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
	m.syncLocked()
}

// Active reports whether the listener is attached.
func (m *Matcher) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsub != nil
}

func (m *Matcher) syncLocked() {
	want := m.enabled && !m.paused
	switch {
	case want && m.unsub == nil:
		m.unsub = m.bus.Subscribe(true, func(ev *v1.KeyEvent) { m.Handle(ev) })
	case !want && m.unsub != nil:
		m.unsub()
		m.unsub = nil
	}
}

// Handle processes one keydown and reports whether it dispatched a command.
func (m *Matcher) Handle(ev *v1.KeyEvent) bool {
	if ev == nil || ev.Repeat {
		return false
	}
	m.mu.Lock()
	paused := m.paused
	m.mu.Unlock()
	if paused {
		return false
	}
	if IsEditable(ev.Target) {
		return false
	}

	id, ok := m.lookup.Lookup(ev)
	if !ok {
		return false
	}
	ev.PreventDefault()
	ev.StopPropagation()
	m.log.Debug("shortcut dispatched", "command", id, "code", ev.Code)
	if m.dispatch != nil {
		m.dispatch(id)
	}
	return true
}

var nonTextInputs = map[string]bool{
	"button": true, "checkbox": true, "radio": true, "submit": true, "reset": true,
	"image": true, "file": true, "color": true, "range": true, "hidden": true,
}

// IsEditable reports whether el or any ancestor accepts typed text.
func IsEditable(el v1.Element) bool {
	for ; el != nil; el = el.Parent() {
		if editable(el) {
			return true
		}
	}
	return false
}

func editable(el v1.Element) bool {
	switch strings.ToLower(el.TagName()) {
	case "textarea":
		return true
	case "input":
		t, _ := el.Attr("type")
		return !nonTextInputs[strings.ToLower(strings.TrimSpace(t))]
	}
	if v, ok := el.Attr("contenteditable"); ok && !strings.EqualFold(strings.TrimSpace(v), "false") {
		return true
	}
	if role, ok := el.Attr("role"); ok && strings.EqualFold(strings.TrimSpace(role), "textbox") {
		return true
	}
	return false
}
