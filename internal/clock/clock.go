// Package clock provides the monotonic time sources the motion engine reads.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// Monotonic reads the system clock; time.Now carries a monotonic reading.
type Monotonic struct{}

// Now returns the current time.
func (Monotonic) Now() time.Time {
	return time.Now()
}

// Manual is a controllable clock for tests and offline simulation.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t. Moving backwards is ignored.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.After(m.now) {
		m.now = t
	}
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
