package metrics

import (
	"time"
)

// RecordFeedRequest records one served feed page: the counter by sort
// order and the query latency.
func RecordFeedRequest(sort string, duration time.Duration) {
	FeedRequestsTotal.WithLabelValues(sort).Inc()
	FeedQueryDuration.WithLabelValues(sort).Observe(duration.Seconds())
}

// RecordDownload records a registered download. Premium downloads get
// their own series so conversion dashboards can split them out.
func RecordDownload(premium bool) {
	label := "false"
	if premium {
		label = "true"
	}
	DownloadsTotal.WithLabelValues(label).Inc()
}

// RecordDownloadDenied records a download rejected by the allowance check.
func RecordDownloadDenied() {
	DownloadsDenied.Inc()
}

// UpdateWallpapersTotal updates the catalog size gauge.
// Refreshed periodically by the worker.
func UpdateWallpapersTotal(count int64) {
	WallpapersTotal.Set(float64(count))
}

// UpdateCategoriesTotal updates the category count gauge.
func UpdateCategoriesTotal(count int64) {
	CategoriesTotal.Set(float64(count))
}

// UpdateDownloadsLast24h updates the trailing-24h download gauge.
func UpdateDownloadsLast24h(count int64) {
	DownloadsLast24h.Set(float64(count))
}

// RecordImportResult records manifest importer outcomes.
// Result should be one of "inserted", "updated", "skipped", "failed".
func RecordImportResult(result string, count int) {
	WallpapersImportedTotal.WithLabelValues(result).Add(float64(count))
}

// RecordImportRun records the duration of one full manifest import.
func RecordImportRun(duration time.Duration) {
	ImportDuration.Observe(duration.Seconds())
}

// RecordTrendingRefresh records the duration of a trending score refresh.
func RecordTrendingRefresh(duration time.Duration) {
	TrendingRefreshDuration.Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_feed", "insert_wallpaper").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// VitalsRecorder routes validated Web Vitals beacons into the histograms.
// It satisfies the vitals use case's Observer interface.
type VitalsRecorder struct{}

// ObserveVital records one beacon. CLS is unitless and gets its own
// histogram; everything else is a millisecond timing.
func (VitalsRecorder) ObserveVital(name, rating string, value float64) {
	if rating == "" {
		rating = "unknown"
	}
	if name == "CLS" {
		WebVitalsCLS.WithLabelValues(rating).Observe(value)
		return
	}
	WebVitalsTiming.WithLabelValues(name, rating).Observe(value)
}
