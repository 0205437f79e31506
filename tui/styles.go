package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	link     lipgloss.Style
	selected lipgloss.Style
	button   lipgloss.Style
	disabled lipgloss.Style
	dialog   lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1),
		section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		link:     lipgloss.NewStyle().PaddingLeft(2),
		selected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("212")),
		button:   lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("42")),
		disabled: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("241")),
		dialog:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1).MarginTop(1),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).MarginTop(1),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
