package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ███████████  █████ █████ ██████   ██████   █████████   ███████████   ███████████
░░███░░░░░███░░███ ░░███ ░░██████ ██████   ███░░░░░███ ░░███░░░░░███ ░█░░░███░░░█
 ░███    ░███ ░░███ ███   ░███░█████░███  ░███    ░███  ░███    ░███ ░   ░███  ░
 ░██████████   ░░█████    ░███░░███ ░███  ░███████████  ░██████████      ░███
 ░███░░░░░███   ███░███   ░███ ░░░  ░███  ░███░░░░░███  ░███░░░░░███     ░███
 ░███    ░███  ███ ░░███  ░███      ░███  ░███    ░███  ░███    ░███     ░███
 █████   █████ █████ █████ █████     █████ █████   █████ █████   █████    █████
░░░░░   ░░░░░ ░░░░░ ░░░░░ ░░░░░     ░░░░░ ░░░░░   ░░░░░ ░░░░░   ░░░░░    ░░░░░`

const bannerSubtitle = "Pharmacy Marketplace • Catalog Search"

// RenderBanner returns the styled ASCII banner.
func RenderBanner() string {
	lines := splitLines(bannerArt)
	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	maxWidth := 0
	var rendered strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
		rendered.WriteString(baseStyle.Render(line))
		rendered.WriteString("\n")
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := max(maxWidth, subtitleWidth)

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
