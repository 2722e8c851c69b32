package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UISettings stores terminal demo preferences.
type UISettings struct {
	CellPixels int  // pixels represented by one terminal row
	ShowTrace  bool // show the live offset trace line
}

type fileUI struct {
	CellPixels *int  `json:"cell_pixels"`
	ShowTrace  *bool `json:"show_trace"`
}

func defaultUISettings() UISettings {
	return UISettings{
		CellPixels: 16,
		ShowTrace:  true,
	}
}

func (f *fileUI) apply(s *UISettings) {
	if f.CellPixels != nil {
		s.CellPixels = *f.CellPixels
	}
	if f.ShowTrace != nil {
		s.ShowTrace = *f.ShowTrace
	}
}

// Save persists the config, preserving keys this version does not know.
func (c *Config) Save() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	path := c.Paths.ConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	payload := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &payload)
	}

	values := c.Values()
	payload["log_level"] = values["log_level"]
	payload["motion"] = mergeObject(payload["motion"], values["motion"].(map[string]any))
	payload["ui"] = mergeObject(payload["ui"], values["ui"].(map[string]any))

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Values returns the effective settings keyed as in config.json.
func (c *Config) Values() map[string]any {
	return map[string]any{
		"log_level": c.LogLevel,
		"motion": map[string]any{
			"fps":               c.Motion.FPS,
			"platform":          c.Motion.Platform,
			"move_threshold":    c.Motion.MoveThreshold,
			"bounce":            c.Motion.Bounce,
			"elasticity":        c.Motion.Tuning.Elasticity,
			"bounce_speed":      c.Motion.Tuning.BounceSpeed,
			"speed_factor":      c.Motion.Tuning.SpeedFactor,
			"bounce_limit":      c.Motion.Tuning.BounceLimit,
			"bounce_multiplier": c.Motion.Tuning.BounceMultiplier,
		},
		"ui": map[string]any{
			"cell_pixels": c.UI.CellPixels,
			"show_trace":  c.UI.ShowTrace,
		},
	}
}

func mergeObject(existing any, values map[string]any) map[string]any {
	obj, ok := existing.(map[string]any)
	if !ok || obj == nil {
		obj = map[string]any{}
	}
	for k, v := range values {
		obj[k] = v
	}
	return obj
}
