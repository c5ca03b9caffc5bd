package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorError   = lipgloss.Color("#EF4444") // Red
	colorPrimary = lipgloss.Color("#00D4FF") // Cyan
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
