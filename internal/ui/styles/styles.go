package styles

import "github.com/charmbracelet/lipgloss"

// Color chart: https://github.com/muesli/termenv

var (
	Counter = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EEEEDD")).
		Bold(true)

	Current = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#808080"))

	Failed = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F87")).
		Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5FB458")).
		Bold(true)
)
