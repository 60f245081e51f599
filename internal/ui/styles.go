package ui

import "github.com/charmbracelet/lipgloss"

// Console palette. Greens for the marketplace brand, amber for warnings.
const (
	ColorPrimary    = lipgloss.Color("#2f9e78")
	ColorBackground = lipgloss.Color("#14181a")
	ColorMuted      = lipgloss.Color("#8fa39b")
	ColorAccent     = lipgloss.Color("#c2935a")
	ColorSuccess    = lipgloss.Color("#3f866b")
	ColorError      = lipgloss.Color("#b4505c")
	ColorWarning    = lipgloss.Color("#c78854")
	ColorBorder     = lipgloss.Color("#26363a")
	ColorChip       = lipgloss.Color("#4f8aa8")
)

var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	ChipStyle   = lipgloss.NewStyle().Foreground(ColorChip)
)
