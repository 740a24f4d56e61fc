package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	filterLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	helpLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusNewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green"))

	statusUpdatedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("yellow"))

	statusImportedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("246"))

	statusIgnoredStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("red"))
)
