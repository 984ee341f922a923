// Package observability groups the monitoring surface of the service:
//
//   - logging: slog construction and context propagation
//   - metrics: Prometheus counters, gauges, and histograms behind /metrics
//   - tracing: OpenTelemetry spans with X-Trace-Id correlation
//   - slo: service level targets and the rolling-window tracker
//
// Each subpackage is usable on its own; the API server wires all four,
// the importer and worker take logging and metrics only.
package observability
