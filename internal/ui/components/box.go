package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minFrameWidth = 40
	maxFrameWidth = 96
	// border (2) plus horizontal padding (4)
	frameChrome = 6
)

// frameWidth is the outer width of a box on a terminal termWidth columns
// wide: three quarters of the screen, within [minFrameWidth, maxFrameWidth],
// and never wider than the terminal itself.
func frameWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	w := min(max(termWidth*3/4, minFrameWidth), maxFrameWidth)
	return min(w, termWidth)
}

// BoxContentWidth is the room left for content inside a box.
func BoxContentWidth(termWidth int) int {
	return max(frameWidth(termWidth)-frameChrome, 0)
}

// TitledBox frames content and writes title into the top border.
func TitledBox(title, content string, termWidth int) string {
	return framed(frameStyle, titleStyle, title, content, termWidth)
}

// ErrorBox frames message in the error colour.
func ErrorBox(title, message string, termWidth int) string {
	return framed(errorFrameStyle, errorTitleStyle, title, errorBodyStyle.Render(message), termWidth)
}

func framed(frame, heading lipgloss.Style, title, content string, termWidth int) string {
	if w := frameWidth(termWidth); w > 0 {
		frame = frame.Width(w)
	}
	boxed := frame.Render(content)
	title = SanitizeOneLine(title)
	if title == "" {
		return boxed
	}

	lines := strings.Split(boxed, "\n")
	outer := lipgloss.Width(lines[0])
	if outer < 6 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(frame.GetBorderTopForeground())
	label := ansi.Truncate(" "+title+" ", outer-4, "…")
	fill := outer - 3 - lipgloss.Width(label)
	lines[0] = edge.Render(border.TopLeft+border.Top) +
		heading.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)
	return strings.Join(lines, "\n")
}

// TableRow is one label/value line of a Table.
type TableRow struct {
	Label string
	Value string
	// ValueColor overrides the value colour when set.
	ValueColor string
}

// Table renders aligned label/value rows inside a titled box.
func Table(title string, rows []TableRow, termWidth int) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(SanitizeOneLine(r.Label)))
	}
	inner := BoxContentWidth(termWidth)
	if inner <= 0 {
		inner = labelWidth + 24
	}
	labelWidth = min(labelWidth, 20, max(inner/2, 4))
	valueWidth := max(inner-labelWidth-2, 4)

	lines := make([]string, len(rows))
	for i, r := range rows {
		vs := valueStyle
		if r.ValueColor != "" {
			vs = vs.Foreground(lipgloss.Color(r.ValueColor))
		}
		label := fitCell(SanitizeOneLine(r.Label), labelWidth, lipgloss.Left)
		lines[i] = labelStyle.Render(label) + "  " + vs.Render(clip(SanitizeOneLine(r.Value), valueWidth))
	}
	return TitledBox(title, strings.Join(lines, "\n"), termWidth)
}

// Indent shifts every line of s right by n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// clip shortens s to width display columns.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
