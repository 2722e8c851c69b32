package scrollview

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	indicatorFPS       = 60
	indicatorVisible   = 0.05
	indicatorRestDelta = 0.01
)

// indicator is the scrollbar opacity. It snaps to fully visible on scroll
// and springs back to zero after the motion settles.
type indicator struct {
	spring    harmonica.Spring
	pos       float64
	vel       float64
	target    float64
	animating bool
	ticking   bool
}

func newIndicator() indicator {
	return indicator{spring: harmonica.NewSpring(harmonica.FPS(indicatorFPS), 5.0, 1.0)}
}

func (i *indicator) show() {
	i.pos, i.vel, i.target = 1, 0, 1
	i.animating = false
}

func (i *indicator) fadeOut() {
	if i.pos <= 0 {
		return
	}
	i.target = 0
	i.animating = true
}

// step advances one animation frame and reports whether it is still moving.
func (i *indicator) step() bool {
	if !i.animating {
		return false
	}
	i.pos, i.vel = i.spring.Update(i.pos, i.vel, i.target)
	if math.Abs(i.pos-i.target) < indicatorRestDelta && math.Abs(i.vel) < indicatorRestDelta {
		i.pos, i.vel = i.target, 0
		i.animating = false
	}
	return i.animating
}

func (i *indicator) visible() bool { return i.pos > indicatorVisible }

func (i *indicator) bright() bool { return i.pos > 0.5 }
