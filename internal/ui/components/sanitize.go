package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SanitizeText removes escape sequences, control characters and bidi
// overrides from text that came off the network. Newlines and tabs survive.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r), unicode.Is(unicode.Bidi_Control, r):
			return -1
		}
		return r
	}, ansi.Strip(s))
}

var foldWhitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ")

// SanitizeOneLine is SanitizeText for single-line cells: newlines and tabs
// become spaces and the ends are trimmed.
func SanitizeOneLine(s string) string {
	return strings.TrimSpace(foldWhitespace.Replace(SanitizeText(s)))
}
