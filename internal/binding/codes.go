package binding

import (
	"strconv"
	"strings"
)

// punctuation maps a typed character to its physical key code on a US layout.
var punctuation = map[rune]string{
	'-':  "Minus",
	'=':  "Equal",
	'[':  "BracketLeft",
	']':  "BracketRight",
	'\\': "Backslash",
	';':  "Semicolon",
	'\'': "Quote",
	',':  "Comma",
	'.':  "Period",
	'/':  "Slash",
	'`':  "Backquote",
}

// PunctuationCodes is the ordered tail of the allocator fallback pool.
var PunctuationCodes = []string{
	"Minus", "Equal", "BracketLeft", "BracketRight", "Backslash",
	"Semicolon", "Quote", "Comma", "Period", "Slash", "Backquote",
}

var punctuationLabels = map[string]string{
	"Minus":        "-",
	"Equal":        "=",
	"BracketLeft":  "[",
	"BracketRight": "]",
	"Backslash":    "\\",
	"Semicolon":    ";",
	"Quote":        "'",
	"Comma":        ",",
	"Period":       ".",
	"Slash":        "/",
	"Backquote":    "`",
}

// named keys that are neither letters, digits, function keys nor punctuation.
var namedLabels = map[string][2]string{ // code -> {other, mac}
	"Escape":     {"Esc", "⎋"},
	"Enter":      {"Enter", "↩"},
	"Tab":        {"Tab", "⇥"},
	"Space":      {"Space", "Space"},
	"Backspace":  {"Backspace", "⌫"},
	"Delete":     {"Del", "⌦"},
	"Insert":     {"Ins", "Ins"},
	"Home":       {"Home", "↖"},
	"End":        {"End", "↘"},
	"PageUp":     {"PgUp", "⇞"},
	"PageDown":   {"PgDn", "⇟"},
	"ArrowUp":    {"↑", "↑"},
	"ArrowDown":  {"↓", "↓"},
	"ArrowLeft":  {"←", "←"},
	"ArrowRight": {"→", "→"},
}

var keyAliases = map[string]string{
	"esc":       "Escape",
	"escape":    "Escape",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"space":     "Space",
	"backspace": "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pageup":    "PageUp",
	"pgdown":    "PageDown",
	"pgdn":      "PageDown",
	"pagedown":  "PageDown",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
}

var modifierCodes = map[string]bool{
	"Shift": true, "ShiftLeft": true, "ShiftRight": true,
	"Control": true, "ControlLeft": true, "ControlRight": true,
	"Alt": true, "AltLeft": true, "AltRight": true, "AltGraph": true,
	"Meta": true, "MetaLeft": true, "MetaRight": true,
	"OS": true, "OSLeft": true, "OSRight": true,
	"CapsLock": true, "Fn": true, "FnLock": true,
}

// IsModifierCode reports whether code is a bare modifier key.
func IsModifierCode(code string) bool {
	return modifierCodes[code]
}

// CodeForRune maps a character to a physical key code.
// Letters become KeyX, digits DigitN, punctuation its fixed code.
func CodeForRune(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-'a'+'A'), true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	}
	code, ok := punctuation[r]
	return code, ok
}

// KeyLabel returns the short human label for code.
func KeyLabel(code string, isMac bool) string {
	switch {
	case strings.HasPrefix(code, "Key") && len(code) == 4:
		return code[3:]
	case strings.HasPrefix(code, "Digit") && len(code) == 6:
		return code[5:]
	}
	if l, ok := punctuationLabels[code]; ok {
		return l
	}
	if l, ok := namedLabels[code]; ok {
		if isMac {
			return l[1]
		}
		return l[0]
	}
	return code
}

// functionKey parses "F5" / "f5" into its canonical code.
func functionKey(s string) (string, bool) {
	if len(s) < 2 || (s[0] != 'F' && s[0] != 'f') {
		return "", false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > 99 {
		return "", false
	}
	return "F" + strconv.Itoa(n), true
}

// canonicalCode resolves a key token from user text into a code.
func canonicalCode(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}
	runes := []rune(tok)
	if len(runes) == 1 {
		return CodeForRune(runes[0])
	}
	if code, ok := functionKey(tok); ok {
		return code, true
	}
	lower := strings.ToLower(tok)
	if code, ok := keyAliases[lower]; ok {
		return code, true
	}
	// Exact code names ("KeyA", "digit1", "BracketLeft").
	switch {
	case strings.HasPrefix(lower, "key") && len(lower) == 4:
		if c, ok := CodeForRune(rune(lower[3])); ok && strings.HasPrefix(c, "Key") {
			return c, true
		}
	case strings.HasPrefix(lower, "digit") && len(lower) == 6:
		if c, ok := CodeForRune(rune(lower[5])); ok && strings.HasPrefix(c, "Digit") {
			return c, true
		}
	}
	for _, c := range PunctuationCodes {
		if strings.EqualFold(c, tok) {
			return c, true
		}
	}
	for c := range namedLabels {
		if strings.EqualFold(c, tok) {
			return c, true
		}
	}
	return "", false
}
