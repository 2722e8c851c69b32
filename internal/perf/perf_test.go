package perf

import (
	"sort"
	"testing"
	"time"
)

func TestP95(t *testing.T) {
	samples := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
	}
	if got := p95(samples); got != 5*time.Millisecond {
		t.Fatalf("expected p95=5ms, got %s", got)
	}
	if got := p95(nil); got != 0 {
		t.Fatalf("expected p95=0 for empty window, got %s", got)
	}
}

func TestSeriesWindowWraps(t *testing.T) {
	var s series
	for i := 0; i < sampleWindow+3; i++ {
		s.add(time.Duration(i) * time.Microsecond)
	}
	if !s.wrapped {
		t.Fatal("expected ring to wrap")
	}
	if len(s.window()) != sampleWindow {
		t.Fatalf("expected full window, got %d", len(s.window()))
	}
	if s.min != 0 || s.max != time.Duration(sampleWindow+2)*time.Microsecond {
		t.Fatalf("unexpected min/max %s/%s", s.min, s.max)
	}
}

func TestSnapshotSortsAndResets(t *testing.T) {
	t.Cleanup(EnableForTest())

	Record("queue.tick", 50*time.Millisecond)
	Record("motion.frame", 10*time.Millisecond)
	Record("queue.tick", 150*time.Millisecond)
	Count("motion.settle", 1)
	Count("motion.bounce", 2)

	stats, counters := Snapshot()
	if len(stats) != 2 || len(counters) != 2 {
		t.Fatalf("expected 2 stats and 2 counters, got %d/%d", len(stats), len(counters))
	}
	names := []string{stats[0].Name, stats[1].Name}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted stat names, got %v", names)
	}
	tick := stats[1]
	if tick.Name != "queue.tick" || tick.Count != 2 || tick.Avg != 100*time.Millisecond {
		t.Fatalf("unexpected tick stats %+v", tick)
	}
	if counters[0].Name != "motion.bounce" || counters[0].Value != 2 {
		t.Fatalf("unexpected counter %+v", counters[0])
	}

	stats, counters = Snapshot()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected reset, got %d stats %d counters", len(stats), len(counters))
	}
}

func TestDisabledIsNoop(t *testing.T) {
	restore := EnableForTest()
	enabled.Store(false)
	t.Cleanup(restore)

	Record("x", time.Millisecond)
	Count("y", 1)
	Time("z")()
	enabled.Store(true)
	stats, counters := Snapshot()
	if len(stats) != 0 || len(counters) != 0 {
		t.Fatalf("expected nothing recorded while disabled")
	}
}

func TestEnvParsing(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"no":    false,
		"1":     true,
		"yes":   true,
	}
	for raw, want := range cases {
		t.Setenv("GLIDE_PROFILE", raw)
		if got := envEnabled(); got != want {
			t.Fatalf("envEnabled(%q)=%v, want %v", raw, got, want)
		}
	}

	t.Setenv("GLIDE_PROFILE_INTERVAL_MS", "")
	if got := envInterval(); got != defaultIntervalMs*time.Millisecond {
		t.Fatalf("expected default interval, got %s", got)
	}
	t.Setenv("GLIDE_PROFILE_INTERVAL_MS", "250")
	if got := envInterval(); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms interval, got %s", got)
	}
}
