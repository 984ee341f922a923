package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP surface. Paths are normalized by the middleware before they
// arrive here, so cardinality stays bounded.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Catalog and consumption. The gauges are refreshed by the worker; the
// counters are bumped inline by handlers and the importer.
var (
	// WallpapersTotal tracks the catalog size
	WallpapersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallpapers_total",
			Help: "Total number of wallpapers in the database",
		},
	)

	// CategoriesTotal tracks the number of categories
	CategoriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "categories_total",
			Help: "Total number of categories in the database",
		},
	)

	// FeedRequestsTotal counts feed page requests by sort order
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed page requests",
		},
		[]string{"sort"},
	)

	// FeedQueryDuration measures the feed query time per sort order
	FeedQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_query_duration_seconds",
			Help:    "Time taken to serve one feed page",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"sort"},
	)

	// DownloadsTotal counts registered downloads
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloads_total",
			Help: "Total number of registered wallpaper downloads",
		},
		[]string{"premium"},
	)

	// DownloadsDenied counts downloads rejected by the allowance check
	DownloadsDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "downloads_denied_total",
			Help: "Downloads rejected by the rate limiter",
		},
	)

	// DownloadsLast24h is refreshed periodically by the worker
	DownloadsLast24h = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "downloads_last_24h",
			Help: "Downloads recorded in the trailing 24 hours",
		},
	)

	// WallpapersImportedTotal counts manifest import outcomes
	WallpapersImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallpapers_imported_total",
			Help: "Wallpapers processed by the manifest importer",
		},
		[]string{"result"}, // result: inserted, updated, skipped, failed
	)

	// ImportDuration measures one full manifest import run
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Time taken for one manifest import run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// TrendingRefreshDuration measures the trending score refresh job
	TrendingRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trending_refresh_duration_seconds",
			Help:    "Time taken to recompute trending scores",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// Web Vitals beacons posted by the frontend.
var (
	// WebVitalsTiming holds the millisecond-valued metrics (LCP, INP, FCP, TTFB)
	WebVitalsTiming = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "web_vitals_timing_milliseconds",
			Help:    "Web Vitals timing measurements reported by clients",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200, 6400, 12800, 25600},
		},
		[]string{"metric", "rating"},
	)

	// WebVitalsCLS holds the unitless layout shift score
	WebVitalsCLS = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "web_vitals_cls_score",
			Help:    "Cumulative Layout Shift scores reported by clients",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"rating"},
	)
)

// Database pool and query timings.
var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records one served request. Size observations are
// skipped when the size is unknown (ContentLength -1 or an empty body).
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named database operation.
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
