package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
)

var (
	colorRed    = lipgloss.Color("#e5484d")
	colorBlack  = lipgloss.Color("#dddddd")
	colorMuted  = lipgloss.Color("#6c7086")
	colorBorder = lipgloss.Color("#45475a")
	colorError  = lipgloss.Color("#f38ba8")
	colorOK     = lipgloss.Color("#a6e3a1")

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	pieceStyle = lipgloss.NewStyle().Padding(0, 1)
	keyStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Width(4).
			Align(lipgloss.Center)

	statusStyle    = lipgloss.NewStyle().Foreground(colorOK)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	helpStyle      = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
	promptStyle    = lipgloss.NewStyle().Bold(true)
)

func teamStyle(t catalog.Team) lipgloss.Style {
	if t == catalog.TeamRed {
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorBlack).Bold(true)
}
