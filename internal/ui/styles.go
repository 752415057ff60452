package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used across the CLI output.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Bold(true).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")) // Gray

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)
