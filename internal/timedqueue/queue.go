// Package timedqueue runs delayed actions on a fixed frame cadence.
//
// A Queue is cooperative and single threaded: every method, including the
// tick armed through the Timer, must be invoked from the same logical
// thread (a Loop, a Bubble Tea Update, or a ManualTimer in tests). Each tick
// fires every due action to completion and, while the queue is running,
// re-arms itself one frame later.
package timedqueue

import (
	"fmt"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/safego"
)

// Kind tags an action with the phase that scheduled it.
type Kind int

// All matches every kind in Clear.
const All Kind = 0

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Action is one scheduled unit of work.
type Action struct {
	Kind   Kind
	FireAt time.Time
	Arg1   float64
	Arg2   float64
}

// Handler is invoked once per fired action.
type Handler func(Action)

// Timer arms a one-shot callback after d. The callback must run on the
// queue's thread.
type Timer interface {
	AfterFunc(d time.Duration, fn func())
}

// Queue holds pending actions and a running flag.
type Queue struct {
	name    string
	clock   clock.Clock
	timer   Timer
	handler Handler
	frame   time.Duration

	pending []Action
	running bool
	armed   bool
}

// New creates a stopped queue. fps <= 0 selects DefaultFPS.
func New(name string, c clock.Clock, timer Timer, fps int, handler Handler) *Queue {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if c == nil {
		c = clock.Monotonic{}
	}
	return &Queue{
		name:    name,
		clock:   c,
		timer:   timer,
		handler: handler,
		frame:   FrameInterval(fps),
	}
}

// FrameInterval returns 1000/fps milliseconds.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Frame returns the re-arm interval.
func (q *Queue) Frame() time.Duration {
	return q.frame
}

// Running reports whether the queue fires and re-arms.
func (q *Queue) Running() bool {
	return q.running
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Pending returns a copy of the pending actions in insertion order.
func (q *Queue) Pending() []Action {
	out := make([]Action, len(q.pending))
	copy(out, q.pending)
	return out
}

// HasTimer reports whether ticks can be armed. Without a timer the owner
// must drive the queue with Drain.
func (q *Queue) HasTimer() bool {
	return q.timer != nil
}

// Drain runs ticks back to back, without waiting for the timer, until the
// queue stops, runs out of actions, or limit ticks have run. It returns the
// number of ticks.
func (q *Queue) Drain(limit int) int {
	ticks := 0
	for ticks < limit && q.running && len(q.pending) > 0 {
		q.tick()
		ticks++
	}
	return ticks
}

// Start marks the queue running and arms an immediate tick if none is armed.
func (q *Queue) Start() {
	if q.running {
		return
	}
	q.running = true
	q.arm(0)
}

// Stop halts firing. Pending actions stay queued until Clear.
func (q *Queue) Stop() {
	q.running = false
}

// Schedule appends an action due delay from now. A delay <= 0 fires on the
// next tick.
func (q *Queue) Schedule(kind Kind, delay time.Duration, arg1, arg2 float64) {
	q.pending = append(q.pending, Action{
		Kind:   kind,
		FireAt: q.clock.Now().Add(delay),
		Arg1:   arg1,
		Arg2:   arg2,
	})
}

// Clear removes pending actions of kind, or all of them for All.
func (q *Queue) Clear(kind Kind) {
	if kind == All {
		q.pending = q.pending[:0]
		return
	}
	kept := q.pending[:0]
	for _, a := range q.pending {
		if a.Kind != kind {
			kept = append(kept, a)
		}
	}
	q.pending = kept
}

func (q *Queue) arm(d time.Duration) {
	if q.armed || q.timer == nil {
		return
	}
	q.armed = true
	q.timer.AfterFunc(d, q.tick)
}

// tick fires due actions. Pending actions are scanned from the end and the
// collected batch is handled starting with the entry examined last.
func (q *Queue) tick() {
	q.armed = false
	if !q.running {
		return
	}
	defer perf.Time("queue.tick")()

	now := q.clock.Now()
	var due []Action
	for i := len(q.pending) - 1; i >= 0; i-- {
		if q.pending[i].FireAt.After(now) {
			continue
		}
		due = append(due, q.pending[i])
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
	}

	for i := len(due) - 1; i >= 0; i-- {
		a := due[i]
		safego.Run(fmt.Sprintf("%s action %d", q.name, a.Kind), func() {
			q.handler(a)
		})
	}

	if q.running {
		q.arm(q.frame)
	}
}
