package tui

import "github.com/charmbracelet/lipgloss"

const defaultAccent = "205"

var (
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// styles holds the styles that follow the selected theme.
type styles struct {
	accent    string
	activeTab lipgloss.Style
	header    lipgloss.Style
}

func newStyles(accent string) styles {
	if accent == "" {
		accent = defaultAccent
	}
	return styles{
		accent: accent,
		activeTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(accent)).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(accent)).
			Bold(true),
	}
}
