package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service level objectives for the wallpaper API. The alerting rules
// compare the gauges below against these targets.
const (
	// AvailabilitySLO is the target uptime percentage (99.9%, about
	// 43 minutes of downtime per month).
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 target in seconds. Feed pages and
	// category lists should render inside 200ms.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable 5xx ratio (0.1%).
	ErrorRateSLO = 0.001
)

// Gauges published by the Tracker from its rolling request window.
var (
	// SLOAvailability is (total - 5xx) / total over the window.
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Current availability ratio (0-1), target: 0.999",
	})

	// SLOLatencyP95 is the p95 request latency over the window.
	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Current p95 latency in seconds, target: 0.200",
	})

	// SLOLatencyP99 is the p99 request latency over the window.
	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Current p99 latency in seconds, target: 0.500",
	})

	// SLOErrorRate is 5xx / total over the window.
	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Current error rate ratio (0-1), target: 0.001",
	})
)

// UpdateAvailability publishes the availability ratio (0-1).
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateLatencyP95 publishes the p95 latency in seconds.
func UpdateLatencyP95(seconds float64) {
	SLOLatencyP95.Set(seconds)
}

// UpdateLatencyP99 publishes the p99 latency in seconds.
func UpdateLatencyP99(seconds float64) {
	SLOLatencyP99.Set(seconds)
}

// UpdateErrorRate publishes the 5xx ratio (0-1).
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
