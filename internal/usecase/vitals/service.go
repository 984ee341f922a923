// Package vitals ingests Web Vitals beacons sent by the wallpaper frontend
// and feeds them into latency histograms.
package vitals

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Metric names accepted from the frontend, as reported by the web-vitals
// library. CLS is unitless; all others arrive in milliseconds.
const (
	MetricLCP  = "LCP"
	MetricCLS  = "CLS"
	MetricINP  = "INP"
	MetricFCP  = "FCP"
	MetricTTFB = "TTFB"
)

var (
	// ErrUnknownMetric is returned for beacon names outside the accepted set.
	ErrUnknownMetric = errors.New("unknown vitals metric")

	// ErrInvalidValue is returned for negative or non-finite metric values.
	ErrInvalidValue = errors.New("invalid vitals value")
)

// Beacon is one Web Vitals measurement reported by a client.
type Beacon struct {
	// Name is the metric name (LCP, CLS, INP, FCP, TTFB).
	Name string
	// Value is the measurement: milliseconds, except CLS which is a score.
	Value float64
	// Rating is the web-vitals bucket ("good", "needs-improvement", "poor").
	// Optional; forwarded as a label when present.
	Rating string
	// Path is the page the measurement was taken on. Optional.
	Path string
}

// Observer receives validated measurements. The Prometheus histogram set
// in observability/metrics satisfies it.
type Observer interface {
	ObserveVital(name, rating string, value float64)
}

// Service validates beacons and forwards them to the observer.
type Service struct {
	Observer Observer
	Logger   *slog.Logger
}

// upper bounds guard against garbage beacons skewing the histograms.
// 10 minutes for timings, 100 for CLS; real values sit far below both.
const (
	maxTimingMillis = 10 * 60 * 1000
	maxCLSScore     = 100
)

var validRatings = map[string]bool{
	"":                  true,
	"good":              true,
	"needs-improvement": true,
	"poor":              true,
}

// Record validates one beacon and observes it. Beacons are fire-and-forget
// on the client side, so errors here only drive the HTTP status.
func (s *Service) Record(b Beacon) error {
	switch b.Name {
	case MetricLCP, MetricCLS, MetricINP, MetricFCP, MetricTTFB:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMetric, b.Name)
	}

	if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) || b.Value < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidValue, b.Value)
	}
	limit := float64(maxTimingMillis)
	if b.Name == MetricCLS {
		limit = maxCLSScore
	}
	if b.Value > limit {
		return fmt.Errorf("%w: %v exceeds %v", ErrInvalidValue, b.Value, limit)
	}

	rating := b.Rating
	if !validRatings[rating] {
		rating = ""
	}

	s.Observer.ObserveVital(b.Name, rating, b.Value)

	if s.Logger != nil {
		s.Logger.Debug("vitals beacon",
			slog.String("metric", b.Name),
			slog.Float64("value", b.Value),
			slog.String("rating", rating),
			slog.String("path", b.Path),
		)
	}
	return nil
}
