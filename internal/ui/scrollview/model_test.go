package scrollview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/glide/internal/clock"
	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/motion"
	"github.com/andyrewlee/glide/internal/timedqueue"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i)
	}
	return lines
}

func newTestModel(t *testing.T) (*Model, *clock.Manual, *config.Config) {
	t.Helper()
	c := clock.NewManual(time.Unix(1000, 0))
	cfg := config.DefaultConfigAt(config.PathsAt(t.TempDir()))
	m := New("list", cfg, c)
	m.SetSize(40, 10)
	m.SetLines(numberedLines(100))
	return m, c, cfg
}

// pump delivers frame ticks until the engine stops arming them and returns
// the largest offset seen.
func pump(t *testing.T, m *Model, c *clock.Manual) float64 {
	t.Helper()
	peak := m.Pos()
	for i := 0; i < 5000; i++ {
		ids := m.timer.pendingIDs()
		if len(ids) == 0 {
			return peak
		}
		c.Advance(timedqueue.FrameInterval(60))
		for _, id := range ids {
			m.Update(messages.FrameTick{Owner: m.ID(), ID: id})
		}
		peak = max(peak, m.Pos())
	}
	t.Fatal("frames still armed after 5000 steps")
	return peak
}

func press(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Code: r[0], Text: s}
}

func TestDragScrollsContent(t *testing.T) {
	m, c, _ := newTestModel(t)

	m.Update(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	m.Update(tea.MouseMotionMsg{X: 5, Y: 3, Button: tea.MouseLeft})
	if m.Pos() != 32 {
		t.Fatalf("expected offset 32 after two-row drag, got %.2f", m.Pos())
	}
	if m.Phase() != motion.PhaseDragging {
		t.Fatalf("expected dragging, got %s", m.Phase())
	}
	if m.TopRow() != 2 {
		t.Fatalf("expected top row 2, got %d", m.TopRow())
	}

	c.Advance(time.Second)
	m.Update(tea.MouseReleaseMsg{X: 5, Y: 3, Button: tea.MouseLeft})
	pump(t, m, c)

	if m.Pos() != 32 || m.Phase() != motion.PhaseIdle {
		t.Fatalf("expected rest at 32, got %.2f (%s)", m.Pos(), m.Phase())
	}
	if !strings.HasPrefix(strings.Split(m.View(), "\n")[0], "line 002") {
		t.Fatalf("expected first row to show line 002:\n%s", m.View())
	}
}

func TestClickOutsideIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.MouseClickMsg{X: 5, Y: 20, Button: tea.MouseLeft})
	m.Update(tea.MouseMotionMsg{X: 5, Y: 10, Button: tea.MouseLeft})
	if m.Pos() != 0 || m.dragging {
		t.Fatal("expected click outside the viewport to be ignored")
	}
	m.Update(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseRight})
	if m.dragging {
		t.Fatal("expected right click to be ignored")
	}
}

func TestFlingPastBottomSnapsBack(t *testing.T) {
	m, c, _ := newTestModel(t)
	m.Update(press("G"))
	if m.Pos() != m.MaxOffset() || m.MaxOffset() != 1440 {
		t.Fatalf("expected bottom at 1440, got %.2f of %.2f", m.Pos(), m.MaxOffset())
	}

	m.Update(tea.MouseClickMsg{X: 5, Y: 9, Button: tea.MouseLeft})
	for y := 8; y >= 2; y-- {
		c.Advance(10 * time.Millisecond)
		m.Update(tea.MouseMotionMsg{X: 5, Y: y, Button: tea.MouseLeft})
	}
	stretched := m.Pos()
	if stretched <= 1440 || stretched > 1540 {
		t.Fatalf("expected elastic stretch past bottom, got %.2f", stretched)
	}
	m.Update(tea.MouseReleaseMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	pump(t, m, c)

	if m.Pos() != 1440 {
		t.Fatalf("expected snap back to 1440, got %.2f", m.Pos())
	}
	if m.Phase() != motion.PhaseIdle {
		t.Fatalf("expected idle, got %s", m.Phase())
	}
}

func TestWheelNudges(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelDown})
	if m.Pos() != 32 {
		t.Fatalf("expected 32 after wheel down, got %.2f", m.Pos())
	}
	m.Update(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelUp})
	m.Update(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelUp})
	if m.Pos() != 0 {
		t.Fatalf("expected wheel up to clamp at 0, got %.2f", m.Pos())
	}
	m.Update(tea.MouseWheelMsg{X: 5, Y: 30, Button: tea.MouseWheelDown})
	if m.Pos() != 0 {
		t.Fatal("expected wheel outside viewport to be ignored")
	}
}

func TestKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(press("j"))
	if m.Pos() != 16 {
		t.Fatalf("expected one row down, got %.2f", m.Pos())
	}
	m.Update(press("k"))
	m.Update(press("k"))
	if m.Pos() != 0 {
		t.Fatalf("expected clamp at top, got %.2f", m.Pos())
	}

	m.Update(press("b"))
	if m.Bounce() {
		t.Fatal("expected b to disable bounce")
	}

	_, cmd := m.Update(press("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	msg, ok := cmd().(messages.CopyStatus)
	if !ok {
		t.Fatalf("expected CopyStatus, got %T", cmd())
	}
	if !strings.Contains(msg.Text, "bounce=off") {
		t.Fatalf("unexpected status %q", msg.Text)
	}
}

func TestOverscrollRowsAtTop(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.MouseClickMsg{X: 5, Y: 0, Button: tea.MouseLeft})
	m.Update(tea.MouseMotionMsg{X: 5, Y: 4, Button: tea.MouseLeft})
	if m.Pos() >= 0 {
		t.Fatalf("expected negative offset, got %.2f", m.Pos())
	}

	rows := strings.Split(m.View(), "\n")
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	if strings.Contains(rows[0], "line") {
		t.Fatalf("expected blank overscroll row, got %q", rows[0])
	}
	if !strings.Contains(rows[2], "line 000") {
		t.Fatalf("expected first line after overscroll, got %q", rows[2])
	}
}

func TestIndicatorFades(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(press("j"))
	if !m.indicator.visible() || !m.indicator.animating {
		t.Fatal("expected visible indicator fading after a scroll")
	}
	for i := 0; i < 1000 && m.indicator.animating; i++ {
		m.Update(messages.IndicatorTick{Owner: m.ID()})
	}
	if m.indicator.animating || m.indicator.visible() {
		t.Fatalf("expected indicator to rest hidden, pos=%.3f", m.indicator.pos)
	}
}

func TestApplyConfig(t *testing.T) {
	m, c, cfg := newTestModel(t)
	m.Update(press("j"))

	next := *cfg
	next.Motion.Bounce = false
	m.ApplyConfig(&next)
	if m.Bounce() {
		t.Fatal("expected bounce change to apply at once")
	}

	slow := next
	slow.Motion.FPS = 30
	m.ApplyConfig(&slow)
	if !strings.Contains(m.Status(), "fps=30") || m.Pos() != 16 {
		t.Fatalf("expected rebuilt engine at same offset, got %s", m.Status())
	}

	m.Update(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	slower := slow
	slower.Motion.FPS = 20
	m.ApplyConfig(&slower)
	if !strings.Contains(m.Status(), "fps=30") {
		t.Fatal("expected fps change to wait for the gesture to end")
	}
	c.Advance(time.Second)
	m.Update(tea.MouseReleaseMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	pump(t, m, c)
	if !strings.Contains(m.Status(), "fps=20") {
		t.Fatalf("expected deferred rebuild, got %s", m.Status())
	}
}

func TestForeignTicksIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	ids := m.timer.pendingIDs()
	if len(ids) != 1 {
		t.Fatalf("expected one armed frame, got %v", ids)
	}
	m.Update(messages.FrameTick{Owner: "other", ID: ids[0]})
	if len(m.timer.pendingIDs()) != 1 {
		t.Fatal("expected tick for another owner to be ignored")
	}
	if m.timer.fire(ids[0] + 100) {
		t.Fatal("expected unknown id to be ignored")
	}
}

func TestStatusLineWidth(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(press("j"))
	m.Update(press("j"))
	line := m.StatusLine(80)
	if !strings.Contains(line, "phase") || !strings.Contains(line, "32.0px") {
		t.Fatalf("unexpected status line %q", line)
	}
	if w := ansi.StringWidth(m.StatusLine(20)); w > 20 {
		t.Fatalf("expected truncation to 20 cells, got %d", w)
	}
}
