package slo

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

// Tracker keeps a rolling window of request outcomes and publishes the SLO
// gauges from it. It is intentionally approximate: the window is pruned
// lazily on writes and publishes, which is accurate enough for SLO gauges
// updated once a minute.
//
// Thread safety: Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	window  time.Duration
	samples []sample
}

type sample struct {
	at          time.Time
	latency     time.Duration
	serverError bool
}

// NewTracker creates a Tracker with the given rolling window.
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Tracker{window: window}
}

// Observe records one completed request.
func (t *Tracker) Observe(status int, latency time.Duration) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked(now)
	t.samples = append(t.samples, sample{
		at:          now,
		latency:     latency,
		serverError: status >= http.StatusInternalServerError,
	})
}

// Collect wraps a handler so every request is observed by the tracker.
func (t *Tracker) Collect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &trackerResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		t.Observe(rw.statusCode, time.Since(start))
	})
}

// Publish computes availability, latency percentiles and error rate over
// the current window and updates the SLO gauges. An empty window publishes
// perfect availability: no traffic is not an outage.
func (t *Tracker) Publish() {
	t.mu.Lock()
	t.pruneLocked(time.Now())

	total := len(t.samples)
	if total == 0 {
		t.mu.Unlock()
		UpdateAvailability(1)
		UpdateErrorRate(0)
		UpdateLatencyP95(0)
		UpdateLatencyP99(0)
		return
	}

	errors := 0
	latencies := make([]time.Duration, total)
	for i, s := range t.samples {
		latencies[i] = s.latency
		if s.serverError {
			errors++
		}
	}
	t.mu.Unlock()

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	errorRate := float64(errors) / float64(total)
	UpdateAvailability(1 - errorRate)
	UpdateErrorRate(errorRate)
	UpdateLatencyP95(percentile(latencies, 0.95).Seconds())
	UpdateLatencyP99(percentile(latencies, 0.99).Seconds())
}

// Len returns the number of samples currently in the window.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pruneLocked(time.Now())
	return len(t.samples)
}

func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.window)
	keep := 0
	for keep < len(t.samples) && t.samples[keep].at.Before(cutoff) {
		keep++
	}
	if keep > 0 {
		t.samples = append(t.samples[:0], t.samples[keep:]...)
	}
}

// percentile returns the value at the given rank from a sorted slice using
// the nearest-rank method.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted))*p+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type trackerResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *trackerResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
