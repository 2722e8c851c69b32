package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/messages"
)

// Toast represents a notification message
type Toast struct {
	Message  string
	Level    messages.ToastLevel
	Duration time.Duration
}

// ToastModel manages toast notifications
type ToastModel struct {
	current   *Toast
	showUntil time.Time
	styles    Styles
	clock     clock.Clock
}

// NewToastModel creates a new toast model
func NewToastModel(c clock.Clock) *ToastModel {
	if c == nil {
		c = clock.Monotonic{}
	}
	return &ToastModel{
		styles: DefaultStyles(),
		clock:  c,
	}
}

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

// Show displays a toast notification
func (m *ToastModel) Show(message string, level messages.ToastLevel, duration time.Duration) tea.Cmd {
	m.current = &Toast{
		Message:  message,
		Level:    level,
		Duration: duration,
	}
	m.showUntil = m.clock.Now().Add(duration)

	return SafeTick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// ShowMsg displays a toast for a messages.Toast using a duration per level.
func (m *ToastModel) ShowMsg(msg messages.Toast) tea.Cmd {
	d := 3 * time.Second
	switch msg.Level {
	case messages.ToastError:
		d = 5 * time.Second
	case messages.ToastWarning:
		d = 4 * time.Second
	}
	return m.Show(msg.Message, msg.Level, d)
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	switch msg.(type) {
	case ToastDismissed:
		if !m.clock.Now().Before(m.showUntil) {
			m.current = nil
		}
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}

	var style lipgloss.Style
	var icon string

	switch m.current.Level {
	case messages.ToastSuccess:
		style = m.styles.ToastSuccess
		icon = "✓ "
	case messages.ToastError:
		style = m.styles.ToastError
		icon = "✗ "
	case messages.ToastWarning:
		style = m.styles.ToastWarning
		icon = "! "
	default:
		style = m.styles.ToastInfo
		icon = "i "
	}

	return style.Render(icon + m.current.Message)
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.clock.Now().Before(m.showUntil)
}

// Dismiss immediately hides the toast
func (m *ToastModel) Dismiss() {
	m.current = nil
}
