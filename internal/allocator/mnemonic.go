package allocator

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/f9-o/hotkeys/internal/binding"
)

// fallbackPool is the fixed, ordered candidate tail tried after mnemonics.
var fallbackPool = buildFallbackPool()

func buildFallbackPool() []string {
	pool := make([]string, 0, 26+10+24+len(binding.PunctuationCodes))
	for r := 'A'; r <= 'Z'; r++ {
		pool = append(pool, "Key"+string(r))
	}
	for d := 0; d <= 9; d++ {
		pool = append(pool, "Digit"+strconv.Itoa(d))
	}
	for f := 1; f <= 24; f++ {
		pool = append(pool, "F"+strconv.Itoa(f))
	}
	return append(pool, binding.PunctuationCodes...)
}

// FallbackPool returns a copy of the fixed candidate tail.
func FallbackPool() []string {
	return append([]string(nil), fallbackPool...)
}

// stripMarks removes combining marks so "Éditer" yields 'E'.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// splitWords splits free text into words on whitespace (plus any extra
// separators) and on case boundaries:
// "openRecentFile" -> open, Recent, File; "HTTPServer" -> HTTP, Server;
// "tab_2" with '_' as separator -> tab, 2.
func splitWords(s string, separators string) []string {
	var words []string
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	}) {
		words = append(words, splitCase(field)...)
	}
	return words
}

func splitCase(s string) []string {
	rs := []rune(s)
	if len(rs) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		boundary := false
		switch {
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			boundary = true
		case unicode.IsLetter(prev) != unicode.IsLetter(cur) && (unicode.IsDigit(prev) || unicode.IsDigit(cur)):
			boundary = true
		}
		if boundary {
			out = append(out, string(rs[start:i]))
			start = i
		}
	}
	return append(out, string(rs[start:]))
}

// idSeparators are the extra word breaks recognised in command IDs.
const idSeparators = "_-.:/"

// mnemonicCodes returns the key code of the first mappable character of each
// word in text, in order.
func mnemonicCodes(text, separators string) []string {
	var codes []string
	for _, w := range splitWords(stripMarks(text), separators) {
		for _, r := range w {
			if code, ok := binding.CodeForRune(r); ok {
				codes = append(codes, code)
				break
			}
		}
	}
	return codes
}
