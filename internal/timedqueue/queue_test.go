package timedqueue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
)

const (
	kindSettle Kind = iota + 1
	kindFix
)

type recorder struct {
	fired []Action
}

func (r *recorder) handle(a Action) {
	r.fired = append(r.fired, a)
}

func newTestQueue(t *testing.T, fps int, handler Handler) (*Queue, *ManualTimer) {
	t.Helper()
	mt := NewManualTimer(clock.NewManual(time.Unix(0, 0)))
	return New("test", mt.Clock(), mt, fps, handler), mt
}

func TestStoppedQueueNeverFires(t *testing.T) {
	rec := &recorder{}
	q, mt := newTestQueue(t, 60, rec.handle)

	q.Schedule(kindSettle, 0, 0, 0)
	mt.Advance(time.Second)
	if len(rec.fired) != 0 {
		t.Fatalf("expected no firing while stopped, got %d", len(rec.fired))
	}
	if mt.Armed() != 0 {
		t.Fatalf("stopped queue should not arm ticks, got %d", mt.Armed())
	}
	if q.Len() != 1 {
		t.Fatalf("expected pending action to remain, got %d", q.Len())
	}
}

func TestStartFiresDueActions(t *testing.T) {
	rec := &recorder{}
	q, mt := newTestQueue(t, 60, rec.handle)

	q.Start()
	q.Schedule(kindSettle, 0, 1, 2)
	q.Schedule(kindFix, 50*time.Millisecond, 3, 4)

	mt.Advance(0)
	if len(rec.fired) != 1 || rec.fired[0].Kind != kindSettle {
		t.Fatalf("expected only the immediate action, got %+v", rec.fired)
	}
	if rec.fired[0].Arg1 != 1 || rec.fired[0].Arg2 != 2 {
		t.Fatalf("payload not preserved: %+v", rec.fired[0])
	}

	mt.Advance(70 * time.Millisecond)
	if len(rec.fired) != 2 || rec.fired[1].Kind != kindFix {
		t.Fatalf("expected delayed action by the frame after 50ms, got %+v", rec.fired)
	}
	if q.Len() != 0 {
		t.Fatalf("fired actions should be removed, got %d pending", q.Len())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	q, mt := newTestQueue(t, 60, func(Action) {})
	q.Start()
	q.Start()
	if mt.Armed() != 1 {
		t.Fatalf("expected a single armed tick, got %d", mt.Armed())
	}
}

func TestRunningQueueRearmsEveryFrame(t *testing.T) {
	q, mt := newTestQueue(t, 50, func(Action) {})
	q.Start()

	ticks := mt.Advance(100 * time.Millisecond)
	// immediate tick plus one every 20ms
	if ticks != 6 {
		t.Fatalf("expected 6 ticks in 100ms at 50fps, got %d", ticks)
	}
	if mt.Armed() != 1 {
		t.Fatalf("expected exactly one armed tick, got %d", mt.Armed())
	}

	q.Stop()
	mt.Advance(time.Second)
	if mt.Armed() != 0 {
		t.Fatalf("stopped queue should not re-arm, got %d", mt.Armed())
	}
}

func TestStopKeepsPendingUntilRestart(t *testing.T) {
	rec := &recorder{}
	q, mt := newTestQueue(t, 60, rec.handle)
	q.Start()
	q.Schedule(kindSettle, 30*time.Millisecond, 0, 0)
	q.Stop()

	mt.Advance(time.Second)
	if len(rec.fired) != 0 {
		t.Fatalf("expected no firing after stop, got %d", len(rec.fired))
	}

	q.Start()
	mt.Advance(0)
	if len(rec.fired) != 1 {
		t.Fatalf("expected pending action to fire after restart, got %d", len(rec.fired))
	}
}

func TestClearByKind(t *testing.T) {
	q, _ := newTestQueue(t, 60, func(Action) {})
	q.Schedule(kindSettle, 0, 0, 0)
	q.Schedule(kindFix, 0, 0, 0)
	q.Schedule(kindSettle, 10*time.Millisecond, 0, 0)

	q.Clear(kindSettle)
	pending := q.Pending()
	if len(pending) != 1 || pending[0].Kind != kindFix {
		t.Fatalf("expected only fix action left, got %+v", pending)
	}

	q.Clear(All)
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
	q.Clear(All)
	q.Clear(kindFix)
}

func TestSameTickFiringOrder(t *testing.T) {
	rec := &recorder{}
	q, mt := newTestQueue(t, 60, rec.handle)
	q.Start()
	for i := 1; i <= 3; i++ {
		q.Schedule(kindSettle, 0, float64(i), 0)
	}
	mt.Advance(0)

	// Scanned 3,2,1; handled starting from the last one examined.
	want := []float64{1, 2, 3}
	if len(rec.fired) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(rec.fired))
	}
	for i, a := range rec.fired {
		if a.Arg1 != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, a.Arg1, want[i])
		}
	}
}

func TestPanickingHandlerDoesNotStallQueue(t *testing.T) {
	var calls int
	q, mt := newTestQueue(t, 60, func(a Action) {
		calls++
		if a.Arg1 == 1 {
			panic("handler failure")
		}
	})
	q.Start()
	q.Schedule(kindSettle, 0, 1, 0)
	q.Schedule(kindSettle, 0, 2, 0)
	mt.Advance(0)

	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
	if mt.Armed() != 1 {
		t.Fatalf("expected queue to keep re-arming after panic, got %d", mt.Armed())
	}

	q.Schedule(kindFix, 0, 3, 0)
	mt.Advance(q.Frame())
	if calls != 3 {
		t.Fatalf("expected later action to fire, got %d calls", calls)
	}
}

func TestHandlerCanRescheduleAndStop(t *testing.T) {
	var fired int
	var q *Queue
	mt := NewManualTimer(clock.NewManual(time.Unix(0, 0)))
	q = New("test", mt.Clock(), mt, 60, func(a Action) {
		fired++
		if fired < 5 {
			q.Schedule(kindSettle, q.Frame(), 0, 0)
			return
		}
		q.Stop()
		q.Clear(All)
	})
	q.Start()
	q.Schedule(kindSettle, 0, 0, 0)

	steps := mt.RunUntilIdle(100)
	if fired != 5 {
		t.Fatalf("expected 5 frames, got %d", fired)
	}
	if q.Running() {
		t.Fatal("expected queue to be stopped")
	}
	if steps >= 100 {
		t.Fatalf("expected queue to go idle, ran %d steps", steps)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / DefaultFPS},
		{-5, time.Second / DefaultFPS},
	}
	for _, tt := range tests {
		if got := FrameInterval(tt.fps); got != tt.want {
			t.Errorf("FrameInterval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestLoopRunsQueueTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop(0)
	go func() { _ = loop.Run(ctx) }()

	var fired atomic.Int32
	done := make(chan struct{})
	var q *Queue
	if err := loop.Do(ctx, func() {
		q = New("loop", clock.Monotonic{}, loop, 120, func(Action) {
			if fired.Add(1) == 1 {
				close(done)
			}
		})
		q.Start()
		q.Schedule(kindSettle, 5*time.Millisecond, 0, 0)
	}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for loop-driven action")
	}
	if err := loop.Do(ctx, func() { q.Stop() }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestLoopSurvivesPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop(4)
	go func() { _ = loop.Run(ctx) }()

	loop.Post(func() { panic("bad job") })
	ran := false
	if err := loop.Do(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !ran {
		t.Fatal("expected job after panic to run")
	}
}

func TestPostUnblocksWhenLoopStops(t *testing.T) {
	loop := NewLoop(1)
	if !loop.Post(func() {}) {
		t.Fatal("expected first post to fill the buffer")
	}

	result := make(chan bool, 1)
	go func() { result <- loop.Post(func() {}) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = loop.Run(ctx)

	select {
	case <-result:
	case <-time.After(2 * time.Second):
		t.Fatal("Post stayed blocked after the loop stopped")
	}
	if loop.Post(func() {}) {
		t.Fatal("expected Post to fail on a stopped loop")
	}
}

func TestDrainRunsWithoutTimer(t *testing.T) {
	var fired int
	q := New("drain", clock.NewManual(time.Unix(0, 0)), nil, 60, func(Action) { fired++ })
	if q.HasTimer() {
		t.Fatal("expected no timer")
	}
	q.Start()
	q.Schedule(kindSettle, 0, 0, 0)
	q.Schedule(kindFix, 0, 0, 0)

	if ticks := q.Drain(10); ticks != 1 || fired != 2 {
		t.Fatalf("expected one tick firing both actions, got ticks=%d fired=%d", ticks, fired)
	}
	q.Schedule(kindSettle, time.Second, 0, 0)
	if ticks := q.Drain(10); ticks != 10 || fired != 2 {
		t.Fatalf("expected a future action to stay pending, got ticks=%d fired=%d", ticks, fired)
	}
}
