package ratelimit

// Metrics defines the interface for recording rate limiting metrics.
// Implementations must be safe for concurrent use.
type Metrics interface {
	// RecordAllowed records a check that permitted the request.
	RecordAllowed(limiter string)

	// RecordDenied records a check that rejected the request.
	RecordDenied(limiter string)

	// SetActiveKeys records the current number of tracked keys.
	SetActiveKeys(limiter string, count int)

	// RecordEviction records keys removed by the cap or by Cleanup.
	RecordEviction(limiter string, count int)
}

// NoopMetrics is a Metrics implementation that discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordAllowed(string)      {}
func (NoopMetrics) RecordDenied(string)       {}
func (NoopMetrics) SetActiveKeys(string, int) {}
func (NoopMetrics) RecordEviction(string, int) {
}
