package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f9-o/hotkeys/internal/binding"
)

func TestKeyEventFromMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string // canonical binding key
	}{
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+KeyS"},
		{"ctrl alt letter", tea.KeyMsg{Type: tea.KeyCtrlS, Alt: true}, "alt+ctrl+KeyS"},
		{"plain rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, "KeyM"},
		{"upper rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'M'}}, "shift+KeyM"},
		{"alt digit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}, Alt: true}, "alt+Digit7"},
		{"shifted punctuation", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}}, "shift+Digit1"},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "F5"},
		{"ctrl arrow", tea.KeyMsg{Type: tea.KeyCtrlUp}, "ctrl+ArrowUp"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+Tab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := KeyEventFromMsg(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, binding.Key(binding.FromEvent(ev)))
		})
	}
}

func TestKeyEventFromMsgRejects(t *testing.T) {
	for name, msg := range map[string]tea.KeyMsg{
		"paste":      {Type: tea.KeyRunes, Runes: []rune("ctrl"), Paste: true},
		"multi rune": {Type: tea.KeyRunes, Runes: []rune("ab")},
		"unknown":    {Type: tea.KeyRunes, Runes: []rune{'é'}},
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := KeyEventFromMsg(msg)
			assert.False(t, ok)
		})
	}
}

func TestKeyEventFromMsgDoesNotShareState(t *testing.T) {
	a, _ := KeyEventFromMsg(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	a.PreventDefault()
	b, _ := KeyEventFromMsg(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, b.Alt)
	assert.False(t, b.DefaultPrevented())
}
