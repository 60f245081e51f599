package components

import "github.com/charmbracelet/lipgloss"

var dialogStyle = frameStyle.Width(44)

// ConfirmDialog asks a yes/no question.
func ConfirmDialog(title, message string) string {
	body := titleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
		valueStyle.Render(message) + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, Hint("y", "Confirm"), "  ", Hint("n", "Cancel"))
	return dialogStyle.Render(body)
}
