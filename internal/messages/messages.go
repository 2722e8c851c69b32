package messages

import (
	"time"

	"github.com/andyrewlee/glide/internal/config"
)

// FrameTick fires a callback armed by a scroll view's frame timer.
type FrameTick struct {
	Owner string
	ID    uint64
}

// IndicatorTick advances the scrollbar fade animation.
type IndicatorTick struct {
	Owner string
	At    time.Time
}

// ScrollEnded is sent when a scroll view comes to rest or is interrupted.
type ScrollEnded struct {
	Owner   string
	Offset  float64
	Settled bool
}

// ConfigReloaded carries a config re-read after the file changed on disk.
type ConfigReloaded struct {
	Config *config.Config
	Err    error
}

// CopyStatus asks the app to copy the motion status line.
type CopyStatus struct {
	Text string
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Err == nil {
		if e.Context != "" {
			return e.Context
		}
		return "unknown error"
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
