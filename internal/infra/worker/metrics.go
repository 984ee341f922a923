package worker

import (
	"wallfeed/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job names used as the "job" label on worker metrics.
const (
	JobTrendingRefresh = "trending_refresh"
	JobRetentionPurge  = "retention_purge"
	JobGaugeRefresh    = "gauge_refresh"
)

// WorkerMetrics provides Prometheus metrics for the worker component.
// It embeds the standard ConfigMetrics for configuration monitoring and adds
// worker-specific metrics for maintenance job tracking.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp: Unix timestamp of last configuration load
//   - worker_config_validation_errors_total: Total validation errors by field
//   - worker_config_fallbacks_total: Total fallback operations by field
//   - worker_config_fallback_active: 1 if any fallback active, 0 otherwise
//
// Worker-specific metrics:
//   - worker_job_runs_total: Total job runs by job and status
//   - worker_job_duration_seconds: Duration histogram of job execution by job
//   - worker_events_purged_total: Total download events removed by retention
//   - worker_job_last_success_timestamp: Unix timestamp of last success by job
type WorkerMetrics struct {
	*config.ConfigMetrics

	// JobRunsTotal counts job runs per job name and status (success/failure).
	JobRunsTotal *prometheus.CounterVec

	// JobDurationSeconds measures job execution duration per job name.
	// Buckets cover the expected range from sub-second gauge refreshes to
	// multi-minute trending recomputations.
	JobDurationSeconds *prometheus.HistogramVec

	// EventsPurgedTotal counts download events removed by the retention job.
	EventsPurgedTotal prometheus.Counter

	// JobLastSuccessTimestamp records the Unix timestamp of the last
	// successful run per job name.
	JobLastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics
// initialized. Metrics are registered with the default Prometheus registry
// via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of maintenance job runs by job and status",
		}, []string{"job", "status"}),

		JobDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of maintenance job execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 900},
		}, []string{"job"}),

		EventsPurgedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_events_purged_total",
			Help: "Total number of download events removed by the retention job",
		}),

		JobLastSuccessTimestamp: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run by job",
		}, []string{"job"}),
	}
}

// MustRegister is a no-op method for API compatibility.
// Metrics are automatically registered via promauto when created in
// NewWorkerMetrics; the explicit call keeps the initialization intent clear.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordJobRun increments the run counter for the given job and status.
// Status should be either "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(job, status string) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
}

// RecordJobDuration observes the duration of one job execution in seconds.
func (m *WorkerMetrics) RecordJobDuration(job string, seconds float64) {
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
}

// RecordEventsPurged adds the number of events removed by a retention run.
func (m *WorkerMetrics) RecordEventsPurged(count int64) {
	m.EventsPurgedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the job's last successful
// completion.
func (m *WorkerMetrics) RecordLastSuccess(job string) {
	m.JobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
}
