package report

import (
	"slices"
	"sync"
	"time"
)

// maxSamples caps memory when traffic is heavy inside one window.
const maxSamples = 4096

type observation struct {
	at      time.Time
	elapsed time.Duration
	failed  bool
}

// LatencySnapshot aggregates the observations still inside the window.
// Percentiles interpolate linearly between neighbouring samples.
type LatencySnapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// LatencyStats keeps a rolling window of call durations for one stage.
type LatencyStats struct {
	mu     sync.Mutex
	window time.Duration
	obs    []observation
	now    func() time.Time
}

func NewLatencyStats(window time.Duration) *LatencyStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LatencyStats{window: window, now: time.Now}
}

// Observe records one call. A non-nil err counts as a failure.
func (s *LatencyStats) Observe(elapsed time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expireLocked(now)
	if len(s.obs) == maxSamples {
		s.obs = slices.Delete(s.obs, 0, 1)
	}
	s.obs = append(s.obs, observation{at: now, elapsed: max(elapsed, 0), failed: err != nil})
}

func (s *LatencyStats) Snapshot() LatencySnapshot {
	s.mu.Lock()
	s.expireLocked(s.now())
	ms := make([]int64, len(s.obs))
	var snap LatencySnapshot
	for i, o := range s.obs {
		ms[i] = o.elapsed.Milliseconds()
		if o.failed {
			snap.Failures++
		}
	}
	s.mu.Unlock()

	if len(ms) == 0 {
		return snap
	}
	slices.Sort(ms)

	var total int64
	for _, v := range ms {
		total += v
	}
	snap.Count = len(ms)
	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = float64(total) / float64(len(ms))
	snap.P50Ms = interpolate(ms, 0.50)
	snap.P95Ms = interpolate(ms, 0.95)
	snap.P99Ms = interpolate(ms, 0.99)
	return snap
}

// expireLocked drops observations older than the window. Observations are
// appended in time order, so the expired ones form a prefix.
func (s *LatencyStats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.obs) && s.obs[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.obs = slices.Delete(s.obs, 0, i)
	}
}

func interpolate(sorted []int64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// Stats groups the latency windows of the two external calls in a report.
type Stats struct {
	Generation *LatencyStats
	Compile    *LatencyStats
}

func NewStats(window time.Duration) *Stats {
	return &Stats{
		Generation: NewLatencyStats(window),
		Compile:    NewLatencyStats(window),
	}
}
