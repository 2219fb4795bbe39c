package tui

import "github.com/charmbracelet/lipgloss"

var (
	pendingColor = lipgloss.Color("205")
	infoColor    = lipgloss.Color("244")
	runningColor = lipgloss.Color("#10B981")
	stoppedColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	accentColor  = lipgloss.Color("#E07A5F")
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(accentColor)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	buttonStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Padding(0, 2)

	activeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(accentColor).
				Bold(true).
				Padding(0, 2)
)
