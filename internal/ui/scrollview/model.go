// Package scrollview is a Bubble Tea list viewport scrolled by the motion
// engine. Mouse drags are mapped from terminal rows to pixels.
package scrollview

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/motion"
	"github.com/andyrewlee/glide/internal/ui/common"
)

const traceLen = 48

// Model is the scroll view UI model.
type Model struct {
	id      string
	width   int
	height  int
	originX int
	originY int

	lines     []string
	cellPx    float64
	showTrace bool
	fps       int
	threshold float64

	clock  clock.Clock
	timer  *frameTimer
	motion *motion.Motion
	offset float64
	trace  []float64

	dragging  bool
	ends      []messages.ScrollEnded
	pending   *config.Config
	indicator indicator

	keys   KeyMap
	styles common.Styles
	zone   *zone.Manager
}

// New creates a scroll view identified by id. A nil clock selects the
// monotonic clock.
func New(id string, cfg *config.Config, c clock.Clock) *Model {
	if c == nil {
		c = clock.Monotonic{}
	}
	m := &Model{
		id:        id,
		clock:     c,
		timer:     newFrameTimer(id),
		indicator: newIndicator(),
		keys:      DefaultKeyMap(),
		styles:    common.DefaultStyles(),
	}
	m.build(cfg)
	return m
}

func (m *Model) build(cfg *config.Config) {
	opts := cfg.Motion.Options()
	opts.OnScroll = m.onScroll
	opts.OnScrollEnd = m.onScrollEnd
	opts.Clock = m.clock
	opts.Timer = m.timer

	m.fps = cfg.Motion.FPS
	m.threshold = cfg.Motion.MoveThreshold
	m.cellPx = float64(cfg.UI.CellPixels)
	m.showTrace = cfg.UI.ShowTrace
	m.motion = motion.New(opts)
	m.setExtents()
	m.motion.SetPos(m.offset)
}

// Init initializes the scroll view.
func (m *Model) Init() tea.Cmd { return nil }

// ID returns the zone id of the viewport.
func (m *Model) ID() string { return m.id }

// SetZone sets zone manager.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetOrigin sets the screen position of the top-left cell. It is used for
// hit testing until the zone manager has seen a frame.
func (m *Model) SetOrigin(x, y int) { m.originX, m.originY = x, y }

// SetSize sets dimensions.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.layout()
}

// SetLines replaces the content.
func (m *Model) SetLines(lines []string) {
	m.lines = lines
	m.layout()
}

// Pos returns the current offset in pixels.
func (m *Model) Pos() float64 { return m.offset }

// MaxOffset returns the largest resting offset in pixels.
func (m *Model) MaxOffset() float64 { return m.motion.MaxOffset() }

// Phase returns the engine phase.
func (m *Model) Phase() motion.Phase { return m.motion.Phase() }

// Bounce reports whether over-scroll is enabled.
func (m *Model) Bounce() bool { return m.motion.Bounce() }

// Keys returns the bindings.
func (m *Model) Keys() KeyMap { return m.keys }

// TopRow returns the index of the first visible line. It is negative while
// stretched past the top.
func (m *Model) TopRow() int {
	return floorDiv(m.offset, m.cellPx)
}

// Status describes the engine state on one line.
func (m *Model) Status() string {
	bounce := "on"
	if !m.motion.Bounce() {
		bounce = "off"
	}
	return fmt.Sprintf("offset=%.1fpx max=%.0fpx phase=%s bounce=%s fps=%d",
		m.offset, m.motion.MaxOffset(), m.motion.Phase(), bounce, m.fps)
}

// ApplyConfig applies a reloaded config. Tuning, bounce, platform and cell
// size apply at once; an fps change rebuilds the engine once it is idle.
func (m *Model) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Motion.FPS != m.fps || cfg.Motion.MoveThreshold != m.threshold {
		m.pending = cfg
		m.applyPending()
		return
	}
	platform, err := motion.ParsePlatform(cfg.Motion.Platform)
	if err != nil {
		logging.Warn("scrollview: %v", err)
	}
	m.motion.SetTuning(cfg.Motion.Tuning)
	m.motion.SetBounce(cfg.Motion.Bounce)
	m.motion.SetPlatform(platform)
	m.cellPx = float64(cfg.UI.CellPixels)
	m.showTrace = cfg.UI.ShowTrace
	m.layout()
}

func (m *Model) applyPending() {
	if m.pending == nil || m.busy() {
		return
	}
	cfg := m.pending
	m.pending = nil
	logging.Info("scrollview: rebuilding motion at %d fps", cfg.Motion.FPS)
	m.build(cfg)
}

func (m *Model) busy() bool {
	return m.dragging || m.motion.Running()
}

// layout pushes the pixel extents into the engine. The offset is only
// re-clamped while idle so a live simulation is not cut short.
func (m *Model) layout() {
	if m.motion == nil {
		return
	}
	m.setExtents()
	if !m.busy() {
		m.motion.Refresh()
	}
}

func (m *Model) setExtents() {
	m.motion.SetContentLength(float64(len(m.lines)) * m.cellPx)
	m.motion.SetViewLength(float64(m.height) * m.cellPx)
}

func (m *Model) onScroll(offset float64) {
	m.offset = offset
	m.indicator.show()
	if m.showTrace {
		m.trace = append(m.trace, offset)
		if len(m.trace) > traceLen {
			m.trace = m.trace[len(m.trace)-traceLen:]
		}
	}
}

func (m *Model) onScrollEnd(settled bool) {
	m.ends = append(m.ends, messages.ScrollEnded{Owner: m.id, Offset: m.offset, Settled: settled})
	if settled {
		m.indicator.fadeOut()
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		m.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg)
	case tea.MouseReleaseMsg:
		m.handleMouseRelease(msg)
	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case messages.FrameTick:
		if msg.Owner == m.id {
			m.timer.fire(msg.ID)
		}
	case messages.IndicatorTick:
		if msg.Owner == m.id {
			m.indicator.ticking = false
			m.indicator.step()
		}
	}
	return m, m.flush(cmd)
}

// flush collects the commands produced while handling one message.
func (m *Model) flush(extra tea.Cmd) tea.Cmd {
	m.applyPending()

	cmds := m.timer.drain()
	for _, end := range m.ends {
		cmds = append(cmds, func() tea.Msg { return end })
	}
	m.ends = m.ends[:0]

	if m.indicator.animating && !m.indicator.ticking {
		m.indicator.ticking = true
		owner := m.id
		cmds = append(cmds, common.SafeTick(time.Second/indicatorFPS, func(t time.Time) tea.Msg {
			return messages.IndicatorTick{Owner: owner, At: t}
		}))
	}
	cmds = append(cmds, extra)
	return common.SafeBatch(cmds...)
}

func (m *Model) contains(x, y int) bool {
	if r, ok := common.ZoneRegion(m.zone, m.id); ok {
		return r.Contains(x, y)
	}
	return common.HitRegion{X: m.originX, Y: m.originY, Width: m.width, Height: m.height}.Contains(x, y)
}

// pointer maps a screen row to an engine position. Rows grow downward while
// offsets grow as content moves up, hence the sign.
func (m *Model) pointer(y int) float64 {
	return -float64(y) * m.cellPx
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) {
	if msg.Button != tea.MouseLeft || !m.contains(msg.X, msg.Y) {
		return
	}
	m.dragging = true
	m.motion.OnDown(m.pointer(msg.Y))
}

func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) {
	if !m.dragging {
		return
	}
	m.motion.OnMove(m.pointer(msg.Y))
}

func (m *Model) handleMouseRelease(msg tea.MouseReleaseMsg) {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.motion.OnUp(m.pointer(msg.Y))
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	if m.dragging || !m.contains(msg.X, msg.Y) {
		return
	}
	rows := common.ScrollDeltaForHeight(m.height, 4)
	switch msg.Button {
	case tea.MouseWheelUp:
		m.jump(m.offset - float64(rows)*m.cellPx)
	case tea.MouseWheelDown:
		m.jump(m.offset + float64(rows)*m.cellPx)
	}
}

// jump stops any live simulation and moves without animation.
func (m *Model) jump(pos float64) {
	m.motion.Stop()
	m.motion.SetPos(pos)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.dragging {
		return nil
	}
	page := float64(max(1, m.height-1)) * m.cellPx

	switch {
	case key.Matches(msg, m.keys.Up):
		m.jump(m.offset - m.cellPx)
	case key.Matches(msg, m.keys.Down):
		m.jump(m.offset + m.cellPx)
	case key.Matches(msg, m.keys.PageUp):
		m.jump(m.offset - page)
	case key.Matches(msg, m.keys.PageDown):
		m.jump(m.offset + page)
	case key.Matches(msg, m.keys.Top):
		m.jump(0)
	case key.Matches(msg, m.keys.Bottom):
		m.jump(m.motion.MaxOffset())
	case key.Matches(msg, m.keys.Bounce):
		on := !m.motion.Bounce()
		m.motion.SetBounce(on)
		logging.Info("scrollview: bounce %v", on)
	case key.Matches(msg, m.keys.Copy):
		status := m.Status()
		return func() tea.Msg { return messages.CopyStatus{Text: status} }
	}
	return nil
}
