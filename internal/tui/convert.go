package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
)

// Terminals cannot report the Meta (Cmd/Win) key, and Ctrl only reaches
// the program for letters and a few control characters, so the conversion
// below covers what a terminal can actually deliver.

var namedKeys = map[tea.KeyType]v1.KeyEvent{
	tea.KeyEsc:        {Code: "Escape"},
	tea.KeyEnter:      {Code: "Enter"},
	tea.KeyTab:        {Code: "Tab"},
	tea.KeyShiftTab:   {Code: "Tab", Shift: true},
	tea.KeyBackspace:  {Code: "Backspace"},
	tea.KeyDelete:     {Code: "Delete"},
	tea.KeyInsert:     {Code: "Insert"},
	tea.KeySpace:      {Code: "Space"},
	tea.KeyHome:       {Code: "Home"},
	tea.KeyEnd:        {Code: "End"},
	tea.KeyPgUp:       {Code: "PageUp"},
	tea.KeyPgDown:     {Code: "PageDown"},
	tea.KeyCtrlPgUp:   {Code: "PageUp", Ctrl: true},
	tea.KeyCtrlPgDown: {Code: "PageDown", Ctrl: true},

	tea.KeyUp:    {Code: "ArrowUp"},
	tea.KeyDown:  {Code: "ArrowDown"},
	tea.KeyLeft:  {Code: "ArrowLeft"},
	tea.KeyRight: {Code: "ArrowRight"},

	tea.KeyShiftUp:    {Code: "ArrowUp", Shift: true},
	tea.KeyShiftDown:  {Code: "ArrowDown", Shift: true},
	tea.KeyShiftLeft:  {Code: "ArrowLeft", Shift: true},
	tea.KeyShiftRight: {Code: "ArrowRight", Shift: true},

	tea.KeyCtrlUp:    {Code: "ArrowUp", Ctrl: true},
	tea.KeyCtrlDown:  {Code: "ArrowDown", Ctrl: true},
	tea.KeyCtrlLeft:  {Code: "ArrowLeft", Ctrl: true},
	tea.KeyCtrlRight: {Code: "ArrowRight", Ctrl: true},

	tea.KeyCtrlShiftUp:    {Code: "ArrowUp", Ctrl: true, Shift: true},
	tea.KeyCtrlShiftDown:  {Code: "ArrowDown", Ctrl: true, Shift: true},
	tea.KeyCtrlShiftLeft:  {Code: "ArrowLeft", Ctrl: true, Shift: true},
	tea.KeyCtrlShiftRight: {Code: "ArrowRight", Ctrl: true, Shift: true},

	tea.KeyF1: {Code: "F1"}, tea.KeyF2: {Code: "F2"}, tea.KeyF3: {Code: "F3"},
	tea.KeyF4: {Code: "F4"}, tea.KeyF5: {Code: "F5"}, tea.KeyF6: {Code: "F6"},
	tea.KeyF7: {Code: "F7"}, tea.KeyF8: {Code: "F8"}, tea.KeyF9: {Code: "F9"},
	tea.KeyF10: {Code: "F10"}, tea.KeyF11: {Code: "F11"}, tea.KeyF12: {Code: "F12"},
	tea.KeyF13: {Code: "F13"}, tea.KeyF14: {Code: "F14"}, tea.KeyF15: {Code: "F15"},
	tea.KeyF16: {Code: "F16"}, tea.KeyF17: {Code: "F17"}, tea.KeyF18: {Code: "F18"},
	tea.KeyF19: {Code: "F19"}, tea.KeyF20: {Code: "F20"},
}

// Ctrl+I and Ctrl+M are indistinguishable from Tab and Enter on a terminal,
// so they are absent here and arrive through namedKeys instead.
var ctrlLetters = map[tea.KeyType]rune{
	tea.KeyCtrlA: 'A', tea.KeyCtrlB: 'B', tea.KeyCtrlC: 'C', tea.KeyCtrlD: 'D',
	tea.KeyCtrlE: 'E', tea.KeyCtrlF: 'F', tea.KeyCtrlG: 'G', tea.KeyCtrlH: 'H',
	tea.KeyCtrlJ: 'J', tea.KeyCtrlK: 'K', tea.KeyCtrlL: 'L', tea.KeyCtrlN: 'N',
	tea.KeyCtrlO: 'O', tea.KeyCtrlP: 'P', tea.KeyCtrlQ: 'Q', tea.KeyCtrlR: 'R',
	tea.KeyCtrlS: 'S', tea.KeyCtrlT: 'T', tea.KeyCtrlU: 'U', tea.KeyCtrlV: 'V',
	tea.KeyCtrlW: 'W', tea.KeyCtrlX: 'X', tea.KeyCtrlY: 'Y', tea.KeyCtrlZ: 'Z',
}

// shiftedRunes maps characters typed with Shift on a US layout back to the
// physical key that produced them.
var shiftedRunes = map[rune]string{
	'!': "Digit1", '@': "Digit2", '#': "Digit3", '$': "Digit4", '%': "Digit5",
	'^': "Digit6", '&': "Digit7", '*': "Digit8", '(': "Digit9", ')': "Digit0",
	'_': "Minus", '+': "Equal", '{': "BracketLeft", '}': "BracketRight",
	'|': "Backslash", ':': "Semicolon", '"': "Quote", '<': "Comma",
	'>': "Period", '?': "Slash", '~': "Backquote",
}

// KeyEventFromMsg converts a terminal key press into a physical-key event.
// It reports false for input that has no single physical key, such as a
// paste or a multi-rune burst.
func KeyEventFromMsg(msg tea.KeyMsg) (*v1.KeyEvent, bool) {
	if msg.Paste {
		return nil, false
	}

	if ev, ok := namedKeys[msg.Type]; ok {
		ev.Alt = msg.Alt
		return &ev, true
	}
	if r, ok := ctrlLetters[msg.Type]; ok {
		return &v1.KeyEvent{Code: "Key" + string(r), Ctrl: true, Alt: msg.Alt}, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return nil, false
	}

	r := msg.Runes[0]
	if code, ok := shiftedRunes[r]; ok {
		return &v1.KeyEvent{Code: code, Shift: true, Alt: msg.Alt}, true
	}
	if r == ' ' {
		return &v1.KeyEvent{Code: "Space", Alt: msg.Alt}, true
	}
	code, ok := binding.CodeForRune(r)
	if !ok {
		return nil, false
	}
	return &v1.KeyEvent{
		Code:  code,
		Alt:   msg.Alt,
		Shift: unicode.IsUpper(r),
	}, true
}
