package timedqueue

import (
	"sort"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
)

type manualEntry struct {
	due time.Time
	seq int
	fn  func()
}

// ManualTimer is a deterministic Timer over a manual clock. Callbacks run
// only when the clock is advanced through Advance or RunUntilIdle.
type ManualTimer struct {
	clock   *clock.Manual
	entries []manualEntry
	seq     int
}

// NewManualTimer creates a timer bound to c.
func NewManualTimer(c *clock.Manual) *ManualTimer {
	return &ManualTimer{clock: c}
}

// Clock returns the manual clock driving this timer.
func (m *ManualTimer) Clock() *clock.Manual {
	return m.clock
}

// AfterFunc arms fn to run once the clock reaches now+d.
func (m *ManualTimer) AfterFunc(d time.Duration, fn func()) {
	m.seq++
	m.entries = append(m.entries, manualEntry{
		due: m.clock.Now().Add(d),
		seq: m.seq,
		fn:  fn,
	})
}

// Armed returns the number of callbacks waiting to fire.
func (m *ManualTimer) Armed() int {
	return len(m.entries)
}

// Advance moves the clock forward by d, firing every callback that comes
// due on the way in due order. The clock is set to each due time before its
// callback runs.
func (m *ManualTimer) Advance(d time.Duration) int {
	target := m.clock.Now().Add(d)
	fired := 0
	for {
		next, ok := m.popDue(target)
		if !ok {
			break
		}
		m.clock.Set(next.due)
		next.fn()
		fired++
	}
	m.clock.Set(target)
	return fired
}

// Step fires the earliest armed callback, advancing the clock to its due
// time. It reports false when nothing is armed.
func (m *ManualTimer) Step() bool {
	if len(m.entries) == 0 {
		return false
	}
	m.sortEntries()
	next := m.entries[0]
	m.entries = m.entries[1:]
	m.clock.Set(next.due)
	next.fn()
	return true
}

// RunUntilIdle steps until nothing is armed or limit steps have run, and
// returns the number of steps taken.
func (m *ManualTimer) RunUntilIdle(limit int) int {
	steps := 0
	for steps < limit && m.Step() {
		steps++
	}
	return steps
}

func (m *ManualTimer) popDue(target time.Time) (manualEntry, bool) {
	if len(m.entries) == 0 {
		return manualEntry{}, false
	}
	m.sortEntries()
	if m.entries[0].due.After(target) {
		return manualEntry{}, false
	}
	next := m.entries[0]
	m.entries = m.entries[1:]
	return next, true
}

func (m *ManualTimer) sortEntries() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		if m.entries[i].due.Equal(m.entries[j].due) {
			return m.entries[i].seq < m.entries[j].seq
		}
		return m.entries[i].due.Before(m.entries[j].due)
	})
}
