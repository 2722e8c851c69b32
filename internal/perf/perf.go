// Package perf collects opt-in timing and counter samples for the motion
// engine. Collection is enabled with GLIDE_PROFILE and summaries are written
// through the logging package every GLIDE_PROFILE_INTERVAL_MS.
package perf

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/glide/internal/logging"
)

const (
	sampleWindow      = 128
	defaultIntervalMs = 5000
)

// series accumulates durations for one name. The samples ring feeds p95.
type series struct {
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples [sampleWindow]time.Duration
	next    int
	wrapped bool
}

func (s *series) add(d time.Duration) {
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.next] = d
	s.next++
	if s.next == sampleWindow {
		s.next = 0
		s.wrapped = true
	}
}

func (s *series) window() []time.Duration {
	if s.wrapped {
		return s.samples[:]
	}
	return s.samples[:s.next]
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*series{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(envEnabled())
	logInterval.Store(int64(envInterval()))
}

// Enabled reports whether profiling is enabled.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records the elapsed time under name.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record captures one duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &series{}
		stats[name] = s
	}
	s.add(d)
	mu.Unlock()
	maybeLog()
}

// Count increments a named counter by delta.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()
	maybeLog()
}

// Flush logs a summary immediately. reason, if set, is added to the prefix.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix = fmt.Sprintf("PERF SUMMARY %s", reason)
	}
	emit(prefix)
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	emit("PERF")
}

func emit(prefix string) {
	statSnaps, counterSnaps := Snapshot()
	for _, s := range statSnaps {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range counterSnaps {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// Snapshot returns the collected stats and counters sorted by name and
// resets them.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	taken := stats
	takenCounters := counters
	stats = map[string]*series{}
	counters = map[string]int64{}
	mu.Unlock()

	statOut := make([]StatSnapshot, 0, len(taken))
	for name, s := range taken {
		if s.count == 0 {
			continue
		}
		statOut = append(statOut, StatSnapshot{
			Name:  name,
			Count: s.count,
			Avg:   time.Duration(int64(s.total) / s.count),
			Min:   s.min,
			Max:   s.max,
			P95:   p95(s.window()),
		})
	}
	counterOut := make([]CounterSnapshot, 0, len(takenCounters))
	for name, v := range takenCounters {
		if v == 0 {
			continue
		}
		counterOut = append(counterOut, CounterSnapshot{Name: name, Value: v})
	}
	sort.Slice(statOut, func(i, j int) bool { return statOut[i].Name < statOut[j].Name })
	sort.Slice(counterOut, func(i, j int) bool { return counterOut[i].Name < counterOut[j].Name })
	return statOut, counterOut
}

func p95(window []time.Duration) time.Duration {
	n := len(window)
	if n == 0 {
		return 0
	}
	sorted := make([]time.Duration, n)
	copy(sorted, window)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	pos = max(0, min(pos, n-1))
	return sorted[pos]
}

func envEnabled() bool {
	raw := strings.TrimSpace(os.Getenv("GLIDE_PROFILE"))
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func envInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("GLIDE_PROFILE_INTERVAL_MS")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
