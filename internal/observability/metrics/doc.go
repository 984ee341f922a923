// Package metrics holds every Prometheus series the wallpaper backend
// exports: the HTTP request surface, the catalog and download counters,
// the importer and trending-refresh timings, Web Vitals beacons and the
// database pool gauges.
//
// Everything registers with the default registry via promauto; the API
// and the worker both expose it on /metrics. Record helpers keep call
// sites short:
//
//	start := time.Now()
//	stats := importManifest(ctx)
//	metrics.RecordImportResult("created", stats.Created)
//	metrics.RecordImportRun(time.Since(start))
package metrics
