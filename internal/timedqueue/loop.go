package timedqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andyrewlee/glide/internal/safego"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("timedqueue: loop stopped")

// Loop serializes posted functions onto one goroutine. It implements Timer
// so that queue ticks and host input share a single thread.
type Loop struct {
	jobs chan func()
	done chan struct{}

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

// NewLoop creates a loop with a buffered job channel.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		jobs:   make(chan func(), buffer),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Post enqueues fn to run on the loop goroutine. It reports false once the
// loop has stopped, including when it stops while Post waits for room.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped || fn == nil {
		return false
	}
	select {
	case l.jobs <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do posts fn and waits for it to finish or for ctx to end.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc posts fn to the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[t] = struct{}{}
}

// Run executes posted functions until ctx is done. Each function runs to
// completion; a panic is logged and the loop continues.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.jobs:
			safego.Run("timedqueue.loop", fn)
		}
	}
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		close(l.done)
	}
	l.stopped = true
	for t := range l.timers {
		t.Stop()
	}
	l.timers = nil
}
