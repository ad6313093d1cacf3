package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
)

var (
	colorHigh   = lipgloss.Color("#ef4444")
	colorMedium = lipgloss.Color("#f59e0b")
	colorLow    = lipgloss.Color("#22c55e")
	colorMuted  = lipgloss.Color("#94a3b8")
	colorAccent = lipgloss.Color("#8b5cf6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(22)

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

func levelColor(l neo.Level) lipgloss.Color {
	switch l {
	case neo.LevelHigh:
		return colorHigh
	case neo.LevelMedium:
		return colorMedium
	default:
		return colorLow
	}
}

// Badge renders a risk level as a coloured label.
func Badge(l neo.Level) string {
	return badgeStyle.Foreground(levelColor(l)).Render(string(l))
}
