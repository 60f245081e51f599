package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn is one column of a TableGrid. Width counts display columns of
// cell content; the last column absorbs whatever the table width leaves.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

const gridIndent = 2

var (
	gridSep   = lipgloss.RoundedBorder().Left
	gridRule  = lipgloss.RoundedBorder().Top
	gridCross = lipgloss.RoundedBorder().Middle

	gridHeaderStyle = labelStyle
	gridActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorRowBg).
			Bold(true)
	gridActiveSepStyle = ruleStyle.Background(colorRowBg)
	gridCheckStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// TableGrid renders a header, a rule and rows, each exactly tableWidth
// columns wide.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int) string {
	return TableGridWithActiveRow(columns, rows, tableWidth, -1)
}

// TableGridWithActiveRow highlights rows[active]. A negative active
// highlights nothing.
func TableGridWithActiveRow(columns []TableColumn, rows [][]string, tableWidth, active int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return strings.Repeat(" ", tableWidth)
	}

	cols := fitColumns(columns, tableWidth)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, gridLine(cols, headers, tableWidth, gridHeaderStyle, ruleStyle, false))
	out = append(out, ruleLine(cols, tableWidth))
	for i, row := range rows {
		if i == active {
			out = append(out, gridLine(cols, row, tableWidth, gridActiveStyle, gridActiveSepStyle, true))
			continue
		}
		out = append(out, gridLine(cols, row, tableWidth, lipgloss.NewStyle(), ruleStyle, true))
	}
	return strings.Join(out, "\n")
}

func fitColumns(columns []TableColumn, tableWidth int) []TableColumn {
	cols := make([]TableColumn, len(columns))
	copy(cols, columns)

	used := len(cols) - 1 // separators
	for i := range cols {
		cols[i].Width = max(cols[i].Width, 1)
		used += cols[i].Width
	}
	room := max(tableWidth-gridIndent, len(cols))
	last := &cols[len(cols)-1]
	last.Width = max(last.Width+room-used, 1)
	return cols
}

func gridLine(cols []TableColumn, cells []string, tableWidth int, cellStyle, sepStyle lipgloss.Style, body bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridIndent))
	for i, col := range cols {
		if i > 0 {
			b.WriteString(sepStyle.Render(gridSep))
		}
		text := ""
		if i < len(cells) {
			text = SanitizeOneLine(cells[i])
		}
		cell := cellStyle.Inline(true).Render(fitCell(text, col.Width, col.Align))
		if body {
			cell = strings.ReplaceAll(cell, "[x]", gridCheckStyle.Render("[x]"))
		}
		b.WriteString(cell)
	}
	return padTo(b.String(), tableWidth)
}

func ruleLine(cols []TableColumn, tableWidth int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = strings.Repeat(gridRule, col.Width)
	}
	line := strings.Repeat(" ", gridIndent) + strings.Join(parts, gridCross)
	return ruleStyle.Render(padTo(line, tableWidth))
}

// fitCell clips or pads text to exactly width display columns.
func fitCell(text string, width int, align lipgloss.Position) string {
	text = clip(text, width)
	gap := width - lipgloss.Width(text)
	if gap <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", gap) + text
	case lipgloss.Center:
		return strings.Repeat(" ", gap/2) + text + strings.Repeat(" ", gap-gap/2)
	default:
		return text + strings.Repeat(" ", gap)
	}
}

func padTo(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
