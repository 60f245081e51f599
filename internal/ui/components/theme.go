package components

import "github.com/charmbracelet/lipgloss"

// Palette shared by every component. It matches the console theme in
// package ui.
const (
	colorPrimary = lipgloss.Color("#2f9e78")
	colorText    = lipgloss.Color("#d9dedb")
	colorMuted   = lipgloss.Color("#8fa39b")
	colorLabel   = lipgloss.Color("#5f8f7f")
	colorBorder  = lipgloss.Color("#26363a")
	colorError   = lipgloss.Color("#b4505c")
	colorErrBody = lipgloss.Color("#d8b9bc")
	colorRowBg   = lipgloss.Color("#1c2a27")
	colorKeyCap  = lipgloss.Color("#14181a")
	colorKeyBg   = lipgloss.Color("#7fa597")
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	errorFrameStyle = frameStyle.BorderForeground(colorError)

	titleStyle      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	errorTitleStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	errorBodyStyle  = lipgloss.NewStyle().Foreground(colorErrBody)
	labelStyle      = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	valueStyle      = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	ruleStyle       = lipgloss.NewStyle().Foreground(colorBorder)
)
