package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/logging"
)

// Run starts the demo and blocks until the user quits.
func Run(cfg *config.Config, version string) error {
	a, err := New(cfg, version)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	throttle := &mouseThrottle{now: time.Now}
	p := tea.NewProgram(a, tea.WithFilter(throttle.filter))
	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		return err
	}
	return nil
}

const wheelThrottle = 15 * time.Millisecond

// mouseThrottle drops hover motion, repeated motion at the same cell and
// wheel bursts faster than wheelThrottle.
type mouseThrottle struct {
	lastX, lastY int
	lastWheel    time.Time
	now          func() time.Time
}

func (f *mouseThrottle) filter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		f.lastX, f.lastY = msg.X, msg.Y
	case tea.MouseMotionMsg:
		if msg.Button == tea.MouseNone {
			return nil
		}
		if msg.X == f.lastX && msg.Y == f.lastY {
			return nil
		}
		f.lastX, f.lastY = msg.X, msg.Y
	case tea.MouseWheelMsg:
		now := f.now()
		if now.Sub(f.lastWheel) < wheelThrottle {
			return nil
		}
		f.lastWheel = now
	}
	return msg
}
