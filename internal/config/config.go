package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/motion"
)

// ErrInvalidTuning is returned by Validate for constants that cannot settle.
var ErrInvalidTuning = motion.ErrInvalidTuning

// MotionConfig holds the engine settings a host passes to motion.New
type MotionConfig struct {
	FPS           int
	Platform      string
	MoveThreshold float64
	Bounce        bool
	Tuning        motion.Tuning
}

// Config holds the application configuration
type Config struct {
	Paths    *Paths
	LogLevel string
	Motion   MotionConfig
	UI       UISettings
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return DefaultConfigAt(paths), nil
}

// DefaultConfigAt returns the default configuration rooted at paths
func DefaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths:    paths,
		LogLevel: "info",
		Motion: MotionConfig{
			FPS:      motion.ReferenceFPS,
			Platform: motion.PlatformDefault.String(),
			Bounce:   true,
			Tuning:   motion.DefaultTuning(),
		},
		UI: defaultUISettings(),
	}
}

// fileMotion mirrors the "motion" object; nil fields keep defaults.
type fileMotion struct {
	FPS              *int     `json:"fps"`
	Platform         *string  `json:"platform"`
	MoveThreshold    *float64 `json:"move_threshold"`
	Bounce           *bool    `json:"bounce"`
	Elasticity       *float64 `json:"elasticity"`
	BounceSpeed      *float64 `json:"bounce_speed"`
	SpeedFactor      *float64 `json:"speed_factor"`
	BounceLimit      *float64 `json:"bounce_limit"`
	BounceMultiplier *float64 `json:"bounce_multiplier"`
}

type fileConfig struct {
	LogLevel *string     `json:"log_level"`
	Motion   *fileMotion `json:"motion"`
	UI       *fileUI     `json:"ui"`
}

// Load loads config overrides from the default config path if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths)
}

// LoadFrom loads config overrides from paths.ConfigPath. A missing file
// yields the defaults.
func LoadFrom(paths *Paths) (*Config, error) {
	cfg := DefaultConfigAt(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Motion != nil {
		raw.Motion.apply(&cfg.Motion)
	}
	if raw.UI != nil {
		raw.UI.apply(&cfg.UI)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", paths.ConfigPath, err)
	}
	logging.Debug("Loaded config from %s", paths.ConfigPath)
	return cfg, nil
}

func (f *fileMotion) apply(m *MotionConfig) {
	if f.FPS != nil {
		m.FPS = *f.FPS
	}
	if f.Platform != nil {
		m.Platform = *f.Platform
	}
	if f.MoveThreshold != nil {
		m.MoveThreshold = *f.MoveThreshold
	}
	if f.Bounce != nil {
		m.Bounce = *f.Bounce
	}
	if f.Elasticity != nil {
		m.Tuning.Elasticity = *f.Elasticity
	}
	if f.BounceSpeed != nil {
		m.Tuning.BounceSpeed = *f.BounceSpeed
	}
	if f.SpeedFactor != nil {
		m.Tuning.SpeedFactor = *f.SpeedFactor
	}
	if f.BounceLimit != nil {
		m.Tuning.BounceLimit = *f.BounceLimit
	}
	if f.BounceMultiplier != nil {
		m.Tuning.BounceMultiplier = *f.BounceMultiplier
	}
}

// Validate checks the motion settings.
func (c *Config) Validate() error {
	if c.Motion.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be > 0", ErrInvalidTuning, c.Motion.FPS)
	}
	if c.Motion.MoveThreshold < 0 {
		return fmt.Errorf("%w: move threshold %.1f must be >= 0", ErrInvalidTuning, c.Motion.MoveThreshold)
	}
	if _, err := motion.ParsePlatform(c.Motion.Platform); err != nil {
		return err
	}
	if c.UI.CellPixels <= 0 {
		return fmt.Errorf("cell pixels %d must be > 0", c.UI.CellPixels)
	}
	return c.Motion.Tuning.Validate()
}

// Options builds motion options from the config. Callbacks, clock and timer
// are left for the host to fill in.
func (m MotionConfig) Options() motion.Options {
	platform, _ := motion.ParsePlatform(m.Platform)
	return motion.Options{
		MoveThreshold: m.MoveThreshold,
		DisableBounce: !m.Bounce,
		FPS:           m.FPS,
		Platform:      platform,
		Tuning:        m.Tuning,
	}
}
