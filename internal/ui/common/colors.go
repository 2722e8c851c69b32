package common

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette
var (
	ColorBackground = lipgloss.Color("#1a1b26")
	ColorForeground = lipgloss.Color("#a9b1d6")
	ColorMuted      = lipgloss.Color("#565f89")
	ColorBorder     = lipgloss.Color("#292e42")

	ColorPrimary   = lipgloss.Color("#7aa2f7")
	ColorSecondary = lipgloss.Color("#bb9af7")
	ColorSuccess   = lipgloss.Color("#9ece6a")
	ColorWarning   = lipgloss.Color("#e0af68")
	ColorError     = lipgloss.Color("#f7768e")
	ColorInfo      = lipgloss.Color("#7dcfff")

	ColorSurface1 = lipgloss.Color("#1f2335")
	ColorSurface2 = lipgloss.Color("#24283b")
)

// PhaseColor returns the accent used for a motion phase name.
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "dragging":
		return ColorPrimary
	case "coasting":
		return ColorInfo
	case "bouncing":
		return ColorWarning
	case "snapping":
		return ColorSecondary
	default:
		return ColorMuted
	}
}
