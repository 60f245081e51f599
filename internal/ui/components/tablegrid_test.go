package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTableGridKeepsWidth(t *testing.T) {
	cols := []TableColumn{
		{Header: "", Width: 3},
		{Header: "Name", Width: 20},
		{Header: "Detail", Width: 20},
	}
	rows := [][]string{
		{"[x]", "Paracetamol 500mg", "tablet · Rp4.500"},
		{"[ ]", strings.Repeat("Very long name ", 6), "syrup"},
	}
	out := TableGridWithActiveRow(cols, rows, 50, 1)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 50, lipgloss.Width(line))
	}
	clean := SanitizeText(out)
	assert.Contains(t, clean, "Paracetamol 500mg")
	assert.Contains(t, clean, "Very long name Very…")
	assert.Contains(t, clean, "Name")
}

func TestTableGridLastColumnTakesRemainder(t *testing.T) {
	cols := fitColumns([]TableColumn{{Width: 8}, {Width: 10}}, 40)
	assert.Equal(t, 8, cols[0].Width)
	assert.Equal(t, 40-gridIndent-8-1, cols[1].Width)
}

func TestFitCellAlignment(t *testing.T) {
	assert.Equal(t, "ab   ", fitCell("ab", 5, lipgloss.Left))
	assert.Equal(t, "   ab", fitCell("ab", 5, lipgloss.Right))
	assert.Equal(t, " ab  ", fitCell("ab", 5, lipgloss.Center))
	assert.Equal(t, "abcd…", fitCell("abcdefgh", 5, lipgloss.Left))
}

func TestTableGridDegenerateInput(t *testing.T) {
	assert.Equal(t, "", TableGrid([]TableColumn{{Header: "a", Width: 1}}, nil, 0))
	assert.Equal(t, "    ", TableGrid(nil, nil, 4))
}
