package chat

import (
	"charm.land/lipgloss/v2"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9ca24")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#0078d7")).
			Padding(0, 1).
			MarginLeft(4)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#e0e0e0")).
			Padding(0, 1)

	suggestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bababa")).
			MarginLeft(2)

	selectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#27ca3f")).
			Bold(true).
			MarginLeft(2)

	pathStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bababa")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)
)
