// Package styles defines shared lipgloss styles for the apply view.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#5F87AF") // Steel blue accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// TitleStyle for the header line
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SubtleStyle for hints and secondary text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
