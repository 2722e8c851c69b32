// Package motion turns single-axis pointer samples into a scroll offset with
// inertial coasting, rubber-band resistance past the bounds, and spring-back.
//
// A Motion is not safe for concurrent use. Its methods and the ticks of its
// private queue must run on one thread, which the configured Timer provides.
package motion

import (
	"math"
	"time"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/timedqueue"
)

// Action kinds scheduled on the motion queue.
const (
	KindSettle    timedqueue.Kind = 1
	KindSettleFix timedqueue.Kind = 2
)

// ReferenceFPS is the frame rate the step sizes are tuned for.
const ReferenceFPS = 60

// Phase is the observable simulation state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCoasting
	PhaseBouncing
	PhaseSnapping
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseCoasting:
		return "coasting"
	case PhaseBouncing:
		return "bouncing"
	case PhaseSnapping:
		return "snapping"
	default:
		return "idle"
	}
}

// Options configures a Motion.
type Options struct {
	// OnScroll receives every offset change.
	OnScroll func(offset float64)
	// OnScrollEnd fires when motion stops. settled is false when a new
	// gesture interrupted a live coast.
	OnScrollEnd func(settled bool)
	// MoveThreshold suppresses moves until the pointer travels this far.
	MoveThreshold float64
	// DisableBounce pins the offset to the legal range at all times.
	DisableBounce bool
	// FPS is the frame rate of the simulation loop; 0 means 60.
	FPS      int
	Platform Platform
	Tuning   Tuning
	Clock    clock.Clock
	// Timer paces the frames. Without one, a release runs the whole
	// simulation synchronously inside OnUp.
	Timer timedqueue.Timer
}

// Motion is the scroll state machine for one scrollable surface.
type Motion struct {
	onScroll    func(float64)
	onScrollEnd func(bool)

	moveThreshold float64
	bounce        bool
	tuning        Tuning
	timing        Timing
	fpsNorm       float64

	clock clock.Clock
	queue *timedqueue.Queue

	contentLen float64
	viewLen    float64
	offset     float64
	prevOffset float64

	pointerDown bool
	passedSlop  bool
	downPos     float64 // reference for drag displacement
	startPos    float64 // position at pointer down
	lastPos     float64
	downAt      time.Time
	samples     sampleRing

	bounced     bool
	bounceLow   bool
	bounceLimit float64
	angle       float64
	angleStep   float64
	delta       float64
	coasting    bool
	phase       Phase
}

// New creates an idle Motion. A nil Clock selects the monotonic clock.
func New(opts Options) *Motion {
	fps := opts.FPS
	if fps <= 0 {
		fps = ReferenceFPS
	}
	c := opts.Clock
	if c == nil {
		c = clock.Monotonic{}
	}
	tuning := opts.Tuning.withDefaults()

	m := &Motion{
		onScroll:      opts.OnScroll,
		onScrollEnd:   opts.OnScrollEnd,
		moveThreshold: opts.MoveThreshold,
		bounce:        !opts.DisableBounce,
		tuning:        tuning,
		timing:        opts.Platform.Timing(),
		fpsNorm:       float64(ReferenceFPS) / float64(fps),
		clock:         c,
		samples:       newSampleRing(tuning.MaxSamples),
	}
	m.queue = timedqueue.New("motion", c, opts.Timer, fps, m.handle)
	return m
}

// SetContentLength sets the scrollable content extent. It does not re-clamp.
func (m *Motion) SetContentLength(n float64) { m.contentLen = n }

// SetViewLength sets the viewport extent. It does not re-clamp.
func (m *Motion) SetViewLength(n float64) { m.viewLen = n }

// ContentLength returns the content extent.
func (m *Motion) ContentLength() float64 { return m.contentLen }

// ViewLength returns the viewport extent.
func (m *Motion) ViewLength() float64 { return m.viewLen }

// MaxOffset is the largest legal offset. Content shorter than the viewport
// yields 0.
func (m *Motion) MaxOffset() float64 {
	return math.Max(0, m.contentLen-m.viewLen)
}

// Pos returns the current offset.
func (m *Motion) Pos() float64 { return m.offset }

// Phase returns the current simulation phase.
func (m *Motion) Phase() Phase { return m.phase }

// Dragging reports whether a gesture is active.
func (m *Motion) Dragging() bool { return m.pointerDown }

// Coasting reports whether a post-release simulation is live.
func (m *Motion) Coasting() bool { return m.coasting }

// Running reports whether the frame loop is running.
func (m *Motion) Running() bool { return m.queue.Running() }

// Bounce reports whether over-scroll is allowed.
func (m *Motion) Bounce() bool { return m.bounce }

// SetBounce toggles over-scroll. Disabling it does not re-clamp.
func (m *Motion) SetBounce(on bool) { m.bounce = on }

// Tuning returns the active constants.
func (m *Motion) Tuning() Tuning { return m.tuning }

// SetTuning replaces the constants. Zero fields keep their defaults. The
// sample history capacity applies from the next gesture.
func (m *Motion) SetTuning(t Tuning) {
	m.tuning = t.withDefaults()
	if !m.pointerDown && len(m.samples.buf) != m.tuning.MaxSamples {
		m.samples = newSampleRing(m.tuning.MaxSamples)
	}
}

// SetPlatform switches the flick timing windows.
func (m *Motion) SetPlatform(p Platform) { m.timing = p.Timing() }

// Refresh re-applies the current offset after a layout change.
func (m *Motion) Refresh() {
	m.SetPos(m.offset)
}

// SetPos moves to pos without animation and reports a settled scroll.
func (m *Motion) SetPos(pos float64) {
	m.offset = m.limitOffset(pos)
	m.emitScroll()
	m.emitEnd(true)
}

// OnDown starts a gesture at pointer position pos. It is ignored while a
// gesture is already active.
func (m *Motion) OnDown(pos float64) {
	if m.pointerDown {
		return
	}
	interrupted := m.coasting

	m.pointerDown = true
	m.passedSlop = m.moveThreshold <= 0
	m.bounced = false
	m.bounceLimit = 0
	if len(m.samples.buf) != m.tuning.MaxSamples {
		m.samples = newSampleRing(m.tuning.MaxSamples)
	} else {
		m.samples.reset()
	}
	m.angle = 0
	m.angleStep = 0
	m.delta = 0
	m.coasting = false
	m.phase = PhaseDragging

	m.prevOffset = m.offset
	m.downPos = pos
	m.startPos = pos
	m.lastPos = pos
	m.downAt = m.clock.Now()

	m.queue.Clear(timedqueue.All)
	m.queue.Start()

	m.emitScroll()
	if interrupted {
		m.emitEnd(false)
	}
}

// OnMove tracks the pointer at pos while a gesture is active.
func (m *Motion) OnMove(pos float64) {
	if !m.pointerDown {
		return
	}
	if !m.passedSlop {
		if math.Abs(pos-m.downPos) < m.moveThreshold {
			return
		}
		m.passedSlop = true
		m.downPos = pos
	}
	m.lastPos = pos

	next := m.rubberBand(m.prevOffset + (pos - m.downPos))
	m.samples.push(sample{pos: pos, at: m.clock.Now()})

	m.offset = m.limitOffset(next)
	m.emitScroll()
}

// OnUp ends the gesture at pos and hands off to the settle simulation.
func (m *Motion) OnUp(pos float64) {
	if !m.pointerDown {
		return
	}
	m.pointerDown = false

	upAt := m.clock.Now()
	r := release{
		downPos:  m.startPos,
		upPos:    pos,
		downAt:   m.downAt,
		upAt:     upAt,
		duration: clock.Millis(upAt.Sub(m.downAt)),
	}
	fast := isFlick(r, &m.samples, m.tuning, m.timing)

	dt := pos - m.startPos
	if m.outOfBounds(m.offset) {
		dt *= m.tuning.Elasticity
	}

	m.angle = 0
	if fast {
		frames := math.Min(m.tuning.MaxCoastFrames, m.tuning.CoastScale/math.Max(r.duration, 1))
		frames = math.Max(frames, 1)
		m.angleStep = (math.Pi / 2) / frames
		m.delta = dt * m.tuning.SpeedFactor
		logging.Debug("motion: fling delta=%.2f frames=%.0f duration=%.0fms", m.delta, frames, r.duration)
	} else {
		m.angleStep = math.Pi / 2
		m.delta = 0
	}

	m.coasting = true
	m.phase = PhaseCoasting
	m.queue.Start()
	m.queue.Schedule(KindSettle, 0, 0, 0)

	if !m.queue.HasTimer() {
		m.settleNow()
	}
}

// OnCancel treats a cancelled pointer as released at its last position.
func (m *Motion) OnCancel() {
	m.OnUp(m.lastPos)
}

// Stop halts the simulation and drops pending frames. The offset is kept.
func (m *Motion) Stop() {
	m.queue.Stop()
	m.queue.Clear(timedqueue.All)
	m.coasting = false
	if !m.pointerDown {
		m.phase = PhaseIdle
	}
}

// ClearMessages drops pending frames of kind; timedqueue.All also ends the
// coast.
func (m *Motion) ClearMessages(kind timedqueue.Kind) {
	m.queue.Clear(kind)
	if kind == timedqueue.All {
		m.coasting = false
	}
}

func (m *Motion) rubberBand(pos float64) float64 {
	maxOff := m.MaxOffset()
	switch {
	case pos < 0:
		return pos * m.tuning.Elasticity
	case pos > maxOff:
		return maxOff + (pos-maxOff)*m.tuning.Elasticity
	}
	return pos
}

// elasticLimit is the over-scroll allowed past either bound. It is zero
// when bounce is off or when no gesture or simulation is live.
func (m *Motion) elasticLimit() float64 {
	if !m.bounce || (!m.pointerDown && !m.coasting) {
		return 0
	}
	return m.tuning.BounceLimit
}

func (m *Motion) limitOffset(pos float64) float64 {
	e := m.elasticLimit()
	return math.Max(-e, math.Min(pos, m.MaxOffset()+e))
}

func (m *Motion) outOfBounds(pos float64) bool {
	return pos < 0 || pos > m.MaxOffset()
}

func (m *Motion) emitScroll() {
	if m.onScroll != nil {
		m.onScroll(m.offset)
	}
}

func (m *Motion) emitEnd(settled bool) {
	if m.onScrollEnd != nil {
		m.onScrollEnd(settled)
	}
}
