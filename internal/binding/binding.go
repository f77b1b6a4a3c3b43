// Package binding implements the value semantics of a keyboard shortcut:
// equality, normalization, canonical serialization, event matching and
// display formatting. Every function here is pure.
package binding

import (
	"strings"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// Equal reports whether a and b name the same key with the same modifiers.
func Equal(a, b v1.Binding) bool {
	return a.Code == b.Code &&
		a.Alt == b.Alt &&
		a.Ctrl == b.Ctrl &&
		a.Meta == b.Meta &&
		a.Shift == b.Shift
}

// Normalize turns a loose binding into a strict one. Absent flags become false.
func Normalize(raw v1.RawBinding) v1.Binding {
	var b v1.Binding
	if raw.Code != nil {
		b.Code = *raw.Code
	}
	b.Alt = raw.Alt != nil && *raw.Alt
	b.Ctrl = raw.Ctrl != nil && *raw.Ctrl
	b.Meta = raw.Meta != nil && *raw.Meta
	b.Shift = raw.Shift != nil && *raw.Shift
	return b
}

// Key returns the canonical string form of b, used as a set key.
// Modifiers appear in the fixed order alt, ctrl, meta, shift.
func Key(b v1.Binding) string {
	var sb strings.Builder
	if b.Alt {
		sb.WriteString("alt+")
	}
	if b.Ctrl {
		sb.WriteString("ctrl+")
	}
	if b.Meta {
		sb.WriteString("meta+")
	}
	if b.Shift {
		sb.WriteString("shift+")
	}
	sb.WriteString(b.Code)
	return sb.String()
}

// Matches reports whether ev is exactly the keystroke described by b.
func Matches(b v1.Binding, ev *v1.KeyEvent) bool {
	if ev == nil {
		return false
	}
	return ev.Code == b.Code &&
		ev.Alt == b.Alt &&
		ev.Ctrl == b.Ctrl &&
		ev.Meta == b.Meta &&
		ev.Shift == b.Shift
}

// FromEvent copies the code and modifier state of ev into a Binding.
func FromEvent(ev *v1.KeyEvent) v1.Binding {
	return v1.Binding{
		Code:  ev.Code,
		Alt:   ev.Alt,
		Ctrl:  ev.Ctrl,
		Meta:  ev.Meta,
		Shift: ev.Shift,
	}
}

// HasCommandModifier reports whether b holds alt, ctrl or meta.
// Shift alone does not qualify: it would collide with ordinary typing.
func HasCommandModifier(b v1.Binding) bool {
	return b.Alt || b.Ctrl || b.Meta
}

// Valid reports whether b can be used as a global shortcut.
func Valid(b v1.Binding) bool {
	return b.Code != "" && !IsModifierCode(b.Code) && HasCommandModifier(b)
}

// Validate explains why b cannot be a global shortcut, or returns nil.
func Validate(b v1.Binding) error {
	if b.Code == "" || IsModifierCode(b.Code) {
		return errs.Newf(errs.ErrNoRealKey, "binding.validate", "press a real key together with the modifiers").
			WithAdvice("modifier keys alone cannot be a shortcut")
	}
	if !HasCommandModifier(b) {
		return errs.Newf(errs.ErrNoModifier, "binding.validate", "hold Alt, Ctrl or Meta as well").
			WithAdvice("Shift alone is not enough; it would clash with typing")
	}
	return nil
}

// DisplayParts returns the human-readable tokens for b: modifier symbols in
// platform order followed by the key label.
func DisplayParts(b v1.Binding, isMac bool) []string {
	parts := make([]string, 0, 5)
	if isMac {
		if b.Ctrl {
			parts = append(parts, "⌃")
		}
		if b.Alt {
			parts = append(parts, "⌥")
		}
		if b.Shift {
			parts = append(parts, "⇧")
		}
		if b.Meta {
			parts = append(parts, "⌘")
		}
	} else {
		if b.Ctrl {
			parts = append(parts, "Ctrl")
		}
		if b.Alt {
			parts = append(parts, "Alt")
		}
		if b.Shift {
			parts = append(parts, "Shift")
		}
		if b.Meta {
			parts = append(parts, "Meta")
		}
	}
	return append(parts, KeyLabel(b.Code, isMac))
}

// Format joins DisplayParts into a single string.
func Format(b v1.Binding, isMac bool) string {
	if isMac {
		return strings.Join(DisplayParts(b, true), "")
	}
	return strings.Join(DisplayParts(b, false), "+")
}
