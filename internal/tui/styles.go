package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todoview/internal/ui"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle  = ui.Title
	accentStyle = ui.Accent
	mutedStyle  = ui.Muted

	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
