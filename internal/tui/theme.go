package tui

import "github.com/charmbracelet/lipgloss"

// Styling stays readable on both light and dark backgrounds, so everything
// goes through lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ac("27", "62")).Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ac("240", "245"))
	labelStyle  = lipgloss.NewStyle().Foreground(ac("240", "245"))
	errStyle    = lipgloss.NewStyle().Foreground(ac("160", "196"))
	helpStyle   = lipgloss.NewStyle().Foreground(ac("241", "243"))
	dimStyle    = lipgloss.NewStyle().Foreground(ac("245", "240"))
)
