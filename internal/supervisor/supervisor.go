// Package supervisor runs long-lived workers with restart and backoff.
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/safego"
)

// RestartPolicy controls when a worker should be restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
	onError     func(name string, err error)
}

// Option configures supervisor worker behavior.
type Option func(*options)

// WithRestartPolicy sets the restart policy.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits the number of restarts (0 = unlimited).
func WithMaxRestarts(n int) Option {
	return func(o *options) { o.maxRestarts = n }
}

// WithBackoff sets the initial and maximum delay between restarts. The
// delay doubles after each restart up to max.
func WithBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		o.backoff = initial
		o.maxBackoff = max
	}
}

// WithErrorHandler overrides the supervisor-wide error handler for one worker.
func WithErrorHandler(fn func(name string, err error)) Option {
	return func(o *options) { o.onError = fn }
}

// Supervisor owns a context shared by its workers.
type Supervisor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	onError func(name string, err error)
}

// New creates a supervisor bound to the parent context.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Context returns the supervisor context.
func (s *Supervisor) Context() context.Context { return s.ctx }

// SetErrorHandler registers a handler for worker errors.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s != nil {
		s.onError = handler
	}
}

// Stop cancels all workers and waits for them to exit.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn on its own goroutine until it returns without needing a
// restart or the supervisor stops. Panics count as errors.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
		onError:    s.onError,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.maxBackoff = max(cfg.maxBackoff, cfg.backoff)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.supervise(name, fn, cfg)
	}()
}

func (s *Supervisor) supervise(name string, fn func(context.Context) error, cfg options) {
	delay := cfg.backoff
	for restarts := 0; ; restarts++ {
		err := safego.Recover(name, func() error { return fn(s.ctx) })
		if s.ctx.Err() != nil {
			return
		}
		if err != nil && cfg.onError != nil {
			cfg.onError(name, err)
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		if cfg.maxRestarts > 0 && restarts >= cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if !s.sleep(delay) {
			return
		}
		delay = min(delay*2, cfg.maxBackoff)
	}
}

// sleep waits for d and reports false if the supervisor stopped first.
func (s *Supervisor) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}
