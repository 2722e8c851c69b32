package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyrewlee/glide/internal/safego"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func TestNilSupervisorIsSafe(t *testing.T) {
	var s *Supervisor
	s.Stop()
	s.Start("noop", func(context.Context) error { return nil })
	s.SetErrorHandler(nil)
}

func TestRestartNeverRunsOnce(t *testing.T) {
	s := New(context.Background())
	var runs atomic.Int32
	s.Start("once", func(context.Context) error {
		runs.Add(1)
		return errors.New("fail")
	}, WithRestartPolicy(RestartNever))

	waitFor(t, func() bool { return runs.Load() == 1 })
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	if runs.Load() != 1 {
		t.Fatalf("expected one run, got %d", runs.Load())
	}
}

func TestRestartOnErrorWithLimit(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var runs atomic.Int32
	var errs atomic.Int32
	s.Start("flaky", func(context.Context) error {
		runs.Add(1)
		return errors.New("fail")
	},
		WithBackoff(time.Millisecond, 2*time.Millisecond),
		WithMaxRestarts(3),
		WithErrorHandler(func(string, error) { errs.Add(1) }),
	)

	waitFor(t, func() bool { return runs.Load() == 4 })
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != 4 || errs.Load() != 4 {
		t.Fatalf("expected 4 runs and errors, got %d/%d", runs.Load(), errs.Load())
	}
}

func TestRestartOnErrorStopsOnSuccess(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var runs atomic.Int32
	s.Start("recovering", func(context.Context) error {
		if runs.Add(1) < 3 {
			return errors.New("not yet")
		}
		return nil
	}, WithBackoff(time.Millisecond, time.Millisecond))

	waitFor(t, func() bool { return runs.Load() == 3 })
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != 3 {
		t.Fatalf("expected worker to stop after success, got %d runs", runs.Load())
	}
}

func TestPanicIsReportedAsError(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	got := make(chan error, 1)
	s.SetErrorHandler(func(_ string, err error) { got <- err })
	s.Start("panicky", func(context.Context) error { panic("boom") }, WithRestartPolicy(RestartNever))

	select {
	case err := <-got:
		var pe *safego.PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PanicError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected panic to reach the error handler")
	}
}

func TestStopCancelsWorkers(t *testing.T) {
	s := New(context.Background())
	started := make(chan struct{})
	s.Start("blocking", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}, WithRestartPolicy(RestartAlways))
	<-started

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if s.Context().Err() == nil {
		t.Fatal("expected context to be cancelled")
	}
}

func TestStopInterruptsBackoff(t *testing.T) {
	s := New(context.Background())
	var runs atomic.Int32
	s.Start("slow-restart", func(context.Context) error {
		runs.Add(1)
		return errors.New("fail")
	}, WithBackoff(time.Hour, time.Hour))

	waitFor(t, func() bool { return runs.Load() == 1 })
	start := time.Now()
	s.Stop()
	if time.Since(start) > time.Second {
		t.Fatal("expected Stop to cut the backoff short")
	}
}
