package motion

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTuning reports constants that would keep the simulation from
// settling.
var ErrInvalidTuning = errors.New("invalid motion tuning")

// Tuning holds the empirically tuned constants of the simulation. Zero
// fields are replaced with defaults by New, so Validate rejects zero for
// every field.
type Tuning struct {
	// Elasticity is the fraction of over-scroll applied while dragging past
	// a bound.
	Elasticity float64
	// BounceSpeed is the per-frame decay base of the snap-back phase.
	BounceSpeed float64
	// SpeedFactor converts release displacement into the initial coast delta.
	SpeedFactor float64
	// BounceLimit caps the overshoot in pixels.
	BounceLimit float64
	// BounceMultiplier scales the coast delta into the overshoot target.
	BounceMultiplier float64
	// FlickDistance is the down-to-up distance that makes a short gesture a
	// flick on its own.
	FlickDistance float64
	// SampleSlop is how far a recent sample must be from the release point
	// to count as motion.
	SampleSlop float64
	// MaxSamples bounds the move-sample history.
	MaxSamples int
	// MaxCoastFrames caps the number of coast frames.
	MaxCoastFrames float64
	// CoastScale divided by the gesture duration in ms gives the coast frames.
	CoastScale float64
	// SnapDistance is the residual below which snap-back lands on the bound.
	SnapDistance float64
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		Elasticity:       0.43,
		BounceSpeed:      1.15,
		SpeedFactor:      0.135,
		BounceLimit:      100,
		BounceMultiplier: 7,
		FlickDistance:    70,
		SampleSlop:       20,
		MaxSamples:       50,
		MaxCoastFrames:   600,
		CoastScale:       30000,
		SnapDistance:     1,
	}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.Elasticity == 0 {
		t.Elasticity = d.Elasticity
	}
	if t.BounceSpeed == 0 {
		t.BounceSpeed = d.BounceSpeed
	}
	if t.SpeedFactor == 0 {
		t.SpeedFactor = d.SpeedFactor
	}
	if t.BounceLimit == 0 {
		t.BounceLimit = d.BounceLimit
	}
	if t.BounceMultiplier == 0 {
		t.BounceMultiplier = d.BounceMultiplier
	}
	if t.FlickDistance == 0 {
		t.FlickDistance = d.FlickDistance
	}
	if t.SampleSlop == 0 {
		t.SampleSlop = d.SampleSlop
	}
	if t.MaxSamples == 0 {
		t.MaxSamples = d.MaxSamples
	}
	if t.MaxCoastFrames == 0 {
		t.MaxCoastFrames = d.MaxCoastFrames
	}
	if t.CoastScale == 0 {
		t.CoastScale = d.CoastScale
	}
	if t.SnapDistance == 0 {
		t.SnapDistance = d.SnapDistance
	}
	return t
}

// Validate rejects constants for which the settle phases may not terminate.
func (t Tuning) Validate() error {
	var problems []string
	if t.Elasticity <= 0 || t.Elasticity > 1 {
		problems = append(problems, fmt.Sprintf("elasticity %.3f not in (0,1]", t.Elasticity))
	}
	if t.BounceSpeed <= 1 {
		problems = append(problems, fmt.Sprintf("bounce speed %.3f must be > 1", t.BounceSpeed))
	}
	if t.SpeedFactor <= 0 {
		problems = append(problems, fmt.Sprintf("speed factor %.3f must be > 0", t.SpeedFactor))
	}
	if t.BounceLimit <= 0 {
		problems = append(problems, fmt.Sprintf("bounce limit %.1f must be > 0 (disable bounce instead)", t.BounceLimit))
	}
	if t.BounceMultiplier <= 0 {
		problems = append(problems, fmt.Sprintf("bounce multiplier %.1f must be > 0 (disable bounce instead)", t.BounceMultiplier))
	}
	if t.MaxSamples < 1 {
		problems = append(problems, fmt.Sprintf("max samples %d must be >= 1", t.MaxSamples))
	}
	if t.MaxCoastFrames < 1 {
		problems = append(problems, fmt.Sprintf("max coast frames %.0f must be >= 1", t.MaxCoastFrames))
	}
	if t.SnapDistance <= 0 {
		problems = append(problems, fmt.Sprintf("snap distance %.3f must be > 0", t.SnapDistance))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTuning, strings.Join(problems, "; "))
	}
	return nil
}

// Platform selects gesture timing windows.
type Platform int

const (
	PlatformDefault Platform = iota
	PlatformIOS
)

func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	default:
		return "default"
	}
}

// ParsePlatform maps "ios" and "default" (or "") to a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "android", "desktop":
		return PlatformDefault, nil
	case "ios":
		return PlatformIOS, nil
	default:
		return PlatformDefault, fmt.Errorf("unknown platform %q", name)
	}
}

// Timing holds the windows used to classify a release as a flick.
type Timing struct {
	// MoveWindow is how far back recent samples are inspected.
	MoveWindow time.Duration
	// UpWindow is the longest down-to-up duration still counted as a flick.
	UpWindow time.Duration
}

// Timing returns the platform's flick windows.
func (p Platform) Timing() Timing {
	if p == PlatformIOS {
		return Timing{MoveWindow: 150 * time.Millisecond, UpWindow: 300 * time.Millisecond}
	}
	return Timing{MoveWindow: 300 * time.Millisecond, UpWindow: 700 * time.Millisecond}
}
