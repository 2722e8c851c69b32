package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestMouseThrottle(t *testing.T) {
	now := time.Unix(0, 0)
	f := &mouseThrottle{now: func() time.Time { return now }}

	if f.filter(nil, tea.MouseMotionMsg{X: 1, Y: 1}) != nil {
		t.Fatal("expected hover motion to be dropped")
	}
	f.filter(nil, tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft})
	if f.filter(nil, tea.MouseMotionMsg{X: 3, Y: 4, Button: tea.MouseLeft}) != nil {
		t.Fatal("expected motion at the click cell to be dropped")
	}
	if f.filter(nil, tea.MouseMotionMsg{X: 3, Y: 5, Button: tea.MouseLeft}) == nil {
		t.Fatal("expected motion to a new cell to pass")
	}

	wheel := tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelDown}
	if f.filter(nil, wheel) == nil {
		t.Fatal("expected first wheel event to pass")
	}
	now = now.Add(5 * time.Millisecond)
	if f.filter(nil, wheel) != nil {
		t.Fatal("expected wheel burst to be throttled")
	}
	now = now.Add(20 * time.Millisecond)
	if f.filter(nil, wheel) == nil {
		t.Fatal("expected wheel event after the throttle window")
	}

	key := tea.KeyPressMsg{Code: 'j', Text: "j"}
	if f.filter(nil, key) == nil {
		t.Fatal("expected keys to pass")
	}
}
