package motion

import (
	"math"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/perf"
	"github.com/andyrewlee/glide/internal/timedqueue"
)

func (m *Motion) handle(a timedqueue.Action) {
	switch a.Kind {
	case KindSettle:
		m.settle()
	case KindSettleFix:
		m.settleFix()
	}
}

// settle advances one coast or bounce frame.
func (m *Motion) settle() {
	perf.Count("motion.settle", 1)
	maxOff := m.MaxOffset()

	switch {
	case m.bounced:
		step := math.Max(math.Abs(m.delta*m.fpsNorm), 1)
		if m.bounceLow {
			m.offset = math.Max(m.bounceLimit, m.offset-step)
		} else {
			m.offset = math.Min(m.bounceLimit, m.offset+step)
		}
	case m.outOfBounds(m.offset) && m.bounce:
		m.bounced = true
		m.bounceLow = m.offset < 0
		over := math.Min(math.Abs(m.delta)*m.tuning.BounceMultiplier, m.tuning.BounceLimit)
		if m.bounceLow {
			m.bounceLimit = -over
		} else {
			m.bounceLimit = maxOff + over
		}
		m.phase = PhaseBouncing
		logging.Debug("motion: bounce limit=%.1f offset=%.1f", m.bounceLimit, m.offset)
	default:
		m.delta *= math.Cos(m.angle)
		m.offset += m.delta * m.fpsNorm
		m.angle = math.Min(math.Pi/2, m.angle+m.angleStep)
	}

	crossed := m.outOfBounds(m.offset)
	if !m.bounce && crossed {
		m.offset = math.Max(0, math.Min(m.offset, maxOff))
	}
	m.offset = m.limitOffset(m.offset)
	m.emitScroll()

	switch {
	case m.bounced && m.reachedBounceLimit():
		m.queue.Clear(KindSettle)
		m.queue.Schedule(KindSettleFix, 0, 0, 0)
		m.phase = PhaseSnapping
	case !m.bounce && crossed:
		m.finish()
	case m.bounced || m.angle < math.Pi/2:
		m.queue.Schedule(KindSettle, 0, 0, 0)
	case m.outOfBounds(m.offset):
		// coast ended past a bound; the next frame enters the bounce
		m.queue.Schedule(KindSettle, 0, 0, 0)
	default:
		m.finish()
	}
}

func (m *Motion) reachedBounceLimit() bool {
	if m.bounceLow {
		return m.offset <= m.bounceLimit
	}
	return m.offset >= m.bounceLimit
}

// settleFix decays the over-scroll exponentially back to the nearest bound.
func (m *Motion) settleFix() {
	perf.Count("motion.settle_fix", 1)
	maxOff := m.MaxOffset()
	decay := math.Pow(m.tuning.BounceSpeed, m.fpsNorm)

	switch {
	case m.offset <= 0:
		m.offset /= decay
		if m.offset > -m.tuning.SnapDistance {
			m.offset = 0
		}
	case m.offset > maxOff:
		excess := (m.offset - maxOff) / decay
		if excess < m.tuning.SnapDistance {
			m.offset = maxOff
		} else {
			m.offset = maxOff + excess
		}
	}

	m.offset = m.limitOffset(m.offset)
	m.emitScroll()

	if m.outOfBounds(m.offset) {
		m.queue.Schedule(KindSettleFix, 0, 0, 0)
		return
	}
	m.finish()
}

// maxSyncFrames bounds a timer-less settle.
const maxSyncFrames = 100000

// settleNow runs every remaining frame immediately. A run that does not end
// within maxSyncFrames is cut short at the nearest bound.
func (m *Motion) settleNow() {
	m.queue.Drain(maxSyncFrames)
	if !m.coasting {
		return
	}
	logging.Warn("motion: settle did not finish within %d frames", maxSyncFrames)
	m.offset = math.Max(0, math.Min(m.offset, m.MaxOffset()))
	m.emitScroll()
	m.finish()
}

func (m *Motion) finish() {
	m.queue.Stop()
	m.queue.Clear(timedqueue.All)
	m.coasting = false
	m.bounced = false
	m.phase = PhaseIdle
	logging.Debug("motion: settled at %.1f", m.offset)
	m.emitEnd(true)
}
