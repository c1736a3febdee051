package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	preview   lipgloss.Style
	header    lipgloss.Style
	namespace lipgloss.Style
	claim     lipgloss.Style
	owner     lipgloss.Style
	detail    lipgloss.Style
	warning   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		preview:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		namespace: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		claim:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		owner:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
