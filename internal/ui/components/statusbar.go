package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(colorKeyCap).
			Background(colorKeyBg).
			Bold(true).
			Padding(0, 1)
	hintSep = mutedStyle.Render("  ")
)

// Hint renders one key binding: the key cap, then what it does.
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + " " + mutedStyle.Render(desc)
}

// StatusBar lays hints out left to right under a rule, wrapping to a new
// line when the next hint would pass width. A width of zero never wraps.
func StatusBar(hints []string, width int) string {
	lines := wrapHints(hints, max(width-gridIndent, 0))
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, 0, len(lines)+1)
	if width > 0 {
		out = append(out, ruleStyle.Render(strings.Repeat(gridRule, width)))
	}
	for _, line := range lines {
		out = append(out, strings.Repeat(" ", gridIndent)+line)
	}
	return strings.Join(out, "\n")
}

func wrapHints(hints []string, width int) []string {
	var lines []string
	var line string
	for _, h := range hints {
		switch {
		case line == "":
			line = h
		case width > 0 && lipgloss.Width(line)+lipgloss.Width(hintSep)+lipgloss.Width(h) > width:
			lines = append(lines, line)
			line = h
		default:
			line += hintSep + h
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
