package validation

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// maxSamples bounds the number of synthetic move events in one gesture.
const maxSamples = 10000

// ValidateSurface validates the extents of a simulated surface
func ValidateSurface(content, view, offset float64) error {
	if !finite(content) || content < 0 {
		return &ValidationError{Field: "content", Message: "content length must be a finite value >= 0"}
	}
	if !finite(view) || view <= 0 {
		return &ValidationError{Field: "view", Message: "view length must be a finite value > 0"}
	}
	if !finite(offset) {
		return &ValidationError{Field: "start", Message: "start offset must be finite"}
	}

	limit := math.Max(0, content-view)
	if offset < 0 || offset > limit {
		return &ValidationError{Field: "start", Message: fmt.Sprintf("start offset %.1f outside [0, %.1f]", offset, limit)}
	}

	return nil
}

// ValidateGesture validates a synthetic drag
func ValidateGesture(distance float64, duration time.Duration, samples int) error {
	if !finite(distance) {
		return &ValidationError{Field: "distance", Message: "distance must be finite"}
	}

	if duration < 0 {
		return &ValidationError{Field: "duration", Message: "duration cannot be negative"}
	}

	if samples < 1 {
		return &ValidationError{Field: "samples", Message: "at least one sample is required"}
	}
	if samples > maxSamples {
		return &ValidationError{Field: "samples", Message: fmt.Sprintf("too many samples (max %d)", maxSamples)}
	}

	return nil
}

// ValidatePlatform validates a timing profile name
func ValidatePlatform(name string) error {
	valid := map[string]bool{
		"":        true,
		"default": true,
		"android": true,
		"desktop": true,
		"ios":     true,
	}

	if !valid[strings.ToLower(strings.TrimSpace(name))] {
		return &ValidationError{Field: "platform", Message: fmt.Sprintf("unknown platform '%s'", name)}
	}

	return nil
}

// SanitizeInput removes control characters from input
func SanitizeInput(input string) string {
	input = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)

	return strings.TrimSpace(input)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
