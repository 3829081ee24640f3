package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header    lipgloss.Style
	Mode      lipgloss.Style
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	UserText  lipgloss.Style
	Help      lipgloss.Style
	Loading   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1),
		Mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		UserLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true).
			MarginTop(1),
		BotLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1),
		UserText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")),
	}
}
