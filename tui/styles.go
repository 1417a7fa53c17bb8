package tui

import "github.com/charmbracelet/lipgloss"

var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00AF5F")).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	HeroTimerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D75F"))
	HeroLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	DurationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	FailedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D70000"))
	DetailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB"))
	AdvisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	TitleStyle    = lipgloss.NewStyle().Bold(true)

	ActiveBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AF5F"))
	SleepBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))

	FooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)
