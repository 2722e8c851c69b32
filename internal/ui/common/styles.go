package common

import "github.com/charmbracelet/lipgloss"

// Styles contains all the application styles
type Styles struct {
	Pane  lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Scroll view
	Row        lipgloss.Style
	RowAlt     lipgloss.Style
	Overscroll lipgloss.Style
	Track      lipgloss.Style
	Thumb      lipgloss.Style
	ThumbDim   lipgloss.Style

	// Status line
	Status      lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Help bar
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastWarning lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Body: lipgloss.NewStyle().
			Foreground(ColorForeground),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground),

		Row: lipgloss.NewStyle().
			Foreground(ColorForeground),

		RowAlt: lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorSurface1),

		Overscroll: lipgloss.NewStyle().
			Background(ColorSurface2),

		Track: lipgloss.NewStyle().
			Foreground(ColorBorder),

		Thumb: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		ThumbDim: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Status: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StatusKey: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StatusValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		HelpKey: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(ColorBorder),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Info: lipgloss.NewStyle().
			Foreground(ColorInfo),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorSuccess).
			Foreground(ColorBackground),

		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorError).
			Foreground(ColorBackground),

		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorInfo).
			Foreground(ColorBackground),

		ToastWarning: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorWarning).
			Foreground(ColorBackground),
	}
}

// HelpItem is one key hint in the help bar.
type HelpItem struct {
	Key  string
	Desc string
}

// RenderHelpBar renders a help bar with the given key-description pairs
func RenderHelpBar(s Styles, items []HelpItem, width int) string {
	var parts []string
	sep := s.HelpSeparator.Render(" │ ")
	for i, item := range items {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, s.HelpKey.Render(item.Key)+" "+s.HelpDesc.Render(item.Desc))
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return s.Help.Width(width).MaxHeight(1).Render(joined)
}
