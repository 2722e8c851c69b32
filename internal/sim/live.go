package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/motion"
	"github.com/andyrewlee/glide/internal/supervisor"
	"github.com/andyrewlee/glide/internal/timedqueue"
)

// RunLive plays g in wall-clock time on a timedqueue.Loop. onFrame is called
// from the loop goroutine as frames are produced. It returns once the
// motion settles or ctx ends.
func RunLive(ctx context.Context, opts motion.Options, surface Surface, g Gesture, onFrame func(Frame)) (*Trace, error) {
	if g.Samples <= 0 {
		return nil, fmt.Errorf("gesture needs at least one sample, got %d", g.Samples)
	}

	sup := supervisor.New(ctx)
	defer sup.Stop()
	ctx = sup.Context()

	loop := timedqueue.NewLoop(0)
	sup.Start("sim.loop", loop.Run, supervisor.WithRestartPolicy(supervisor.RestartNever))

	var (
		m        *motion.Motion
		trace    Trace
		start    time.Time
		released bool
		once     sync.Once
		done     = make(chan struct{})
	)
	opts.Clock = clock.Monotonic{}
	opts.Timer = loop
	opts.OnScroll = func(offset float64) {
		if start.IsZero() {
			return
		}
		f := Frame{Elapsed: time.Since(start), Offset: offset, Phase: m.Phase().String()}
		trace.Frames = append(trace.Frames, f)
		if onFrame != nil {
			onFrame(f)
		}
	}
	opts.OnScrollEnd = func(settled bool) {
		if !released {
			return
		}
		trace.Ended++
		trace.Settled = settled
		once.Do(func() { close(done) })
	}

	err := loop.Do(ctx, func() {
		m = motion.New(opts)
		m.SetContentLength(surface.Content)
		m.SetViewLength(surface.View)
		m.SetPos(surface.Offset)
		start = time.Now()
		m.OnDown(g.Start)
	})
	if err != nil {
		return nil, err
	}

	step := g.Duration / time.Duration(g.Samples)
	for i := 1; i <= g.Samples; i++ {
		if err := sleepCtx(ctx, step); err != nil {
			return nil, err
		}
		pos := g.Start + g.Distance*float64(i)/float64(g.Samples)
		if err := loop.Do(ctx, func() { m.OnMove(pos) }); err != nil {
			return nil, err
		}
	}

	err = loop.Do(ctx, func() {
		released = true
		if g.Cancel {
			m.OnCancel()
		} else {
			m.OnUp(g.Start + g.Distance)
		}
		trace.Released = m.Pos()
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var out Trace
	err = loop.Do(ctx, func() {
		trace.Final = m.Pos()
		trace.Peak, trace.Low = trace.Final, trace.Final
		for _, f := range trace.Frames {
			trace.Peak = max(trace.Peak, f.Offset)
			trace.Low = min(trace.Low, f.Offset)
		}
		out = trace
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
