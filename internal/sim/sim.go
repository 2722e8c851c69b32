// Package sim replays synthetic gestures through the motion engine on a
// manual clock and records every frame.
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/motion"
	"github.com/andyrewlee/glide/internal/timedqueue"
)

// maxFrames bounds a run so that a bad tuning cannot spin forever.
const maxFrames = 100000

// Gesture is a straight-line drag along one axis.
type Gesture struct {
	Start    float64
	Distance float64
	Duration time.Duration
	Samples  int
	Cancel   bool
}

// Surface is the scrollable extent the gesture runs against.
type Surface struct {
	Content float64
	View    float64
	Offset  float64
}

// Frame is one observed offset.
type Frame struct {
	Elapsed time.Duration `json:"elapsed"`
	Offset  float64       `json:"offset"`
	Phase   string        `json:"phase"`
}

// Trace is the outcome of a run.
type Trace struct {
	Frames   []Frame `json:"frames"`
	Released float64 `json:"released"`
	Final    float64 `json:"final"`
	Peak     float64 `json:"peak"`
	Low      float64 `json:"low"`
	Settled  bool    `json:"settled"`
	Ended    int     `json:"ended"`
	Ticks    int     `json:"ticks"`
}

// Run feeds g into a fresh Motion configured by opts and steps the frame
// loop until it goes idle.
func Run(opts motion.Options, surface Surface, g Gesture) (*Trace, error) {
	if g.Samples <= 0 {
		return nil, fmt.Errorf("gesture needs at least one sample, got %d", g.Samples)
	}
	if g.Duration < 0 {
		return nil, fmt.Errorf("negative gesture duration %s", g.Duration)
	}

	start := time.Unix(0, 0)
	timer := timedqueue.NewManualTimer(clock.NewManual(start))
	trace := &Trace{}

	var m *motion.Motion
	record := func(offset float64) {
		trace.Frames = append(trace.Frames, Frame{
			Elapsed: timer.Clock().Now().Sub(start),
			Offset:  offset,
			Phase:   m.Phase().String(),
		})
	}
	opts.OnScroll = record
	opts.OnScrollEnd = func(settled bool) {
		trace.Ended++
		trace.Settled = settled
	}
	opts.Clock = timer.Clock()
	opts.Timer = timer

	m = motion.New(opts)
	m.SetContentLength(surface.Content)
	m.SetViewLength(surface.View)
	m.SetPos(surface.Offset)
	*trace = Trace{}

	m.OnDown(g.Start)
	step := g.Duration / time.Duration(g.Samples)
	for i := 1; i <= g.Samples; i++ {
		timer.Advance(step)
		m.OnMove(g.Start + g.Distance*float64(i)/float64(g.Samples))
	}
	if g.Cancel {
		m.OnCancel()
	} else {
		m.OnUp(g.Start + g.Distance)
	}
	trace.Released = m.Pos()

	trace.Ticks = timer.RunUntilIdle(maxFrames)
	if m.Running() {
		m.Stop()
		return trace, fmt.Errorf("simulation still running after %d frames", maxFrames)
	}

	trace.Final = m.Pos()
	trace.Peak, trace.Low = trace.Final, trace.Final
	for _, f := range trace.Frames {
		trace.Peak = max(trace.Peak, f.Offset)
		trace.Low = min(trace.Low, f.Offset)
	}
	return trace, nil
}

// WriteJSON writes one JSON object per frame followed by a summary line.
func (t *Trace) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, f := range t.Frames {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return enc.Encode(struct {
		Released float64 `json:"released"`
		Final    float64 `json:"final"`
		Peak     float64 `json:"peak"`
		Low      float64 `json:"low"`
		Settled  bool    `json:"settled"`
		Ended    int     `json:"ended"`
		Ticks    int     `json:"ticks"`
	}{t.Released, t.Final, t.Peak, t.Low, t.Settled, t.Ended, t.Ticks})
}

// Summary is a one-line description of the run.
func (t *Trace) Summary() string {
	return fmt.Sprintf("released=%.1f final=%.1f peak=%.1f low=%.1f frames=%d settled=%v",
		t.Released, t.Final, t.Peak, t.Low, len(t.Frames), t.Settled)
}
