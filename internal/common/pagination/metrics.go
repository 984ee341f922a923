package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal is labeled by status and page bucket; deep-page
	// traffic shows up as its own series.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pagination_requests_total",
			Help: "Total number of feed pagination requests",
		},
		[]string{"status", "page_range"},
	)

	// DurationSeconds is labeled by operation (handler, service,
	// repository) to locate where feed latency accumulates.
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_pagination_duration_seconds",
			Help:    "Feed request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// MatchedTotal diverging far from the catalog size signals
	// over-filtering in the feed query.
	MatchedTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_matched_total",
			Help: "Item count matched by the most recent feed query",
		},
	)

	// ErrorsTotal is labeled by type: validation, database, timeout.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pagination_errors_total",
			Help: "Total number of feed pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest counts one paginated request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		pageRangeBucket(page),
	).Inc()
}

// RecordDuration observes one operation's duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordMatchedTotal publishes the matched item count.
func RecordMatchedTotal(count int64) {
	MatchedTotal.Set(float64(count))
}

// RecordError counts one classified pagination failure.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// OFFSET scans get more expensive as pages deepen, so the buckets get
// coarser in step.
func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
