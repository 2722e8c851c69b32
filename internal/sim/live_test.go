package sim

import (
	"context"
	"testing"
	"time"

	"github.com/andyrewlee/glide/internal/motion"
)

func TestRunLiveSettles(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames := 0
	trace, err := RunLive(ctx, motion.Options{}, Surface{Content: 1000, View: 500, Offset: 100},
		Gesture{Distance: 10, Duration: 20 * time.Millisecond, Samples: 2},
		func(Frame) { frames++ })
	if err != nil {
		t.Fatalf("RunLive: %v", err)
	}
	if !trace.Settled || trace.Ended != 1 {
		t.Fatalf("expected one settled end, got %+v", trace)
	}
	if trace.Final != 110 {
		t.Fatalf("expected rest at 110, got %.2f", trace.Final)
	}
	if frames != len(trace.Frames) || frames == 0 {
		t.Fatalf("callback saw %d frames, trace has %d", frames, len(trace.Frames))
	}
}

func TestRunLiveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := RunLive(ctx, motion.Options{}, Surface{Content: 1000, View: 500},
		Gesture{Distance: 10, Duration: 5 * time.Second, Samples: 5}, nil)
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRunLiveRejectsBadGesture(t *testing.T) {
	if _, err := RunLive(context.Background(), motion.Options{}, Surface{}, Gesture{}, nil); err == nil {
		t.Fatal("expected error for zero samples")
	}
}
