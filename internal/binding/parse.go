package binding

import (
	"strings"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// Parse reads a shortcut written by a human or by Key.
// Accepted forms include "alt+ctrl+KeyS", "Ctrl+Alt+S", "cmd+shift+f5" and "⌘1".
// The last token is the key; everything before it must be a modifier.
func Parse(s string) (v1.Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return v1.Binding{}, errs.Newf(errs.ErrParse, "binding.parse", "empty shortcut")
	}

	tokens := splitTokens(s)
	var b v1.Binding
	for i, tok := range tokens {
		last := i == len(tokens)-1
		if !last || len(tokens) == 1 {
			if applyModifier(&b, tok) {
				if last {
					return v1.Binding{}, errs.Newf(errs.ErrParse, "binding.parse", "%q has no key", s)
				}
				continue
			}
			if !last {
				return v1.Binding{}, errs.Newf(errs.ErrParse, "binding.parse", "unknown modifier %q in %q", tok, s)
			}
		}
		code, ok := canonicalCode(tok)
		if !ok {
			return v1.Binding{}, errs.Newf(errs.ErrParse, "binding.parse", "unknown key %q in %q", tok, s)
		}
		b.Code = code
	}
	return b, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string) v1.Binding {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// splitTokens splits on '+' while letting a trailing '+' or '-' style key
// through, and peels leading mac modifier glyphs ("⌘⇧K").
func splitTokens(s string) []string {
	var out []string
	for {
		r := []rune(s)
		if len(r) > 1 && isGlyph(r[0]) {
			out = append(out, string(r[0]))
			s = strings.TrimPrefix(string(r[1:]), "+")
			continue
		}
		break
	}
	if strings.HasSuffix(s, "++") {
		head := strings.TrimSuffix(s, "++")
		if head != "" {
			out = append(out, strings.Split(head, "+")...)
		}
		return append(out, "+")
	}
	return append(out, strings.Split(s, "+")...)
}

func isGlyph(r rune) bool {
	switch r {
	case '⌘', '⌥', '⌃', '⇧':
		return true
	}
	return false
}

func applyModifier(b *v1.Binding, tok string) bool {
	switch strings.ToLower(tok) {
	case "alt", "option", "opt", "⌥":
		b.Alt = true
	case "ctrl", "control", "⌃":
		b.Ctrl = true
	case "meta", "cmd", "command", "super", "win", "⌘":
		b.Meta = true
	case "shift", "⇧":
		b.Shift = true
	default:
		return false
	}
	return true
}
