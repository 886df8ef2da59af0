package report

import "github.com/charmbracelet/lipgloss"

var (
	ColorMuted  = lipgloss.Color("#7E8C80")
	ColorText   = lipgloss.Color("#D6E0D3")
	ColorAccent = lipgloss.Color("#8FA082")
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorYellow = lipgloss.Color("#f9e2af")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	TileStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2).
			MarginRight(1)

	TileLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TileValueStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginTop(1).
			Padding(0, 1)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	LateStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	OnTimeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
)
