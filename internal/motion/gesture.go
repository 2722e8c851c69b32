package motion

import (
	"math"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
)

type sample struct {
	pos float64
	at  time.Time
}

// sampleRing keeps the most recent move samples, dropping the oldest.
type sampleRing struct {
	buf  []sample
	head int
	size int
}

func newSampleRing(capacity int) sampleRing {
	return sampleRing{buf: make([]sample, capacity)}
}

func (r *sampleRing) reset() {
	r.head = 0
	r.size = 0
}

func (r *sampleRing) push(s sample) {
	idx := (r.head + r.size) % len(r.buf)
	if r.size == len(r.buf) {
		r.buf[r.head] = s
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.buf[idx] = s
	r.size++
}

func (r *sampleRing) len() int {
	return r.size
}

// at returns the i-th sample, oldest first.
func (r *sampleRing) at(i int) sample {
	return r.buf[(r.head+i)%len(r.buf)]
}

// release describes a finished gesture for flick classification.
type release struct {
	downPos  float64
	upPos    float64
	downAt   time.Time
	upAt     time.Time
	duration float64 // ms
}

// isFlick reports whether a release should coast. A gesture with fewer than
// three samples that travelled past FlickDistance is always a flick;
// otherwise a recent sample must differ from the release point by more than
// SampleSlop and the whole gesture must be shorter than the up window.
func isFlick(r release, samples *sampleRing, tuning Tuning, timing Timing) bool {
	if samples.len() < 3 && math.Abs(r.upPos-r.downPos) > tuning.FlickDistance {
		return true
	}

	moving := false
	for i := samples.len() - 1; i >= 0; i-- {
		s := samples.at(i)
		if r.upAt.Sub(s.at) > timing.MoveWindow {
			break
		}
		if math.Abs(s.pos-r.upPos) > tuning.SampleSlop {
			moving = true
			break
		}
	}
	return moving && r.duration < clock.Millis(timing.UpWindow)
}
