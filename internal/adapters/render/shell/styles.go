package shell

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	nav       lipgloss.Style
	navItem   lipgloss.Style
	body      lipgloss.Style
	detail    lipgloss.Style
	detailKey lipgloss.Style
	notice    lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		nav:       lipgloss.NewStyle().MarginTop(1),
		navItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		body:      lipgloss.NewStyle().MarginTop(1),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detailKey: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		notice:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
