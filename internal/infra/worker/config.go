package worker

import (
	"fmt"
	"log/slog"
	"time"

	"wallfeed/internal/pkg/config"
)

// WorkerConfig holds the configuration for the worker component.
// The worker runs the maintenance jobs of the catalog: trending score
// refreshes, download event retention and metric gauge updates. The job
// schedules themselves come from the download policy file; this struct
// only carries the operational parameters around them.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have defaults and validation rules so the worker can operate
// safely even with invalid or missing configuration.
type WorkerConfig struct {
	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "Asia/Tokyo", "UTC", "America/New_York"
	// Validation: Must be a valid IANA timezone name
	// Default: "UTC"
	Timezone string

	// JobTimeout is the maximum duration for a single maintenance job
	// (trending refresh or retention purge). After this timeout the job's
	// context is cancelled.
	// Range: 1 minute to 4 hours
	// Default: 10 minutes
	JobTimeout time.Duration

	// GaugeInterval is how often the catalog gauges (wallpapers total,
	// categories total, downloads in the last 24h) are recomputed.
	// Range: 10 seconds to 1 hour
	// Default: 1 minute
	GaugeInterval time.Duration

	// PolicyPath is the path to the download policy YAML file that carries
	// the retention and trending schedules. Empty means built-in defaults.
	PolicyPath string

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int

	// MetricsPort is the port number for the Prometheus metrics server.
	// Range: 1024-65535
	// Default: 9092
	MetricsPort int
}

// DefaultConfig returns a WorkerConfig with production-ready default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		Timezone:      "UTC",
		JobTimeout:    10 * time.Minute,
		GaugeInterval: 1 * time.Minute,
		PolicyPath:    "",
		HealthPort:    9091,
		MetricsPort:   9092,
	}
}

// Validate checks if the configuration values are valid.
// If multiple fields are invalid, all errors are collected and returned
// together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidateDuration(c.JobTimeout, 1*time.Minute, 4*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("job timeout: %w", err))
	}

	if err := config.ValidateDuration(c.GaugeInterval, 10*time.Second, 1*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("gauge interval: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("metrics port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, increment metrics
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - WORKER_JOB_TIMEOUT: Duration string, e.g. "10m" (default: 10 minutes)
//   - WORKER_GAUGE_INTERVAL: Duration string, e.g. "1m" (default: 1 minute)
//   - DOWNLOAD_POLICY_PATH: Path to the policy YAML (default: "")
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//   - WORKER_METRICS_PORT: Integer 1024-65535 (default: 9092)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warn := func(field, warning string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	tz := config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	if tz.FallbackApplied {
		warn("timezone", tz.Warning)
	}

	jobTimeout := config.LoadEnvDuration("WORKER_JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.JobTimeout = jobTimeout.Value
	if jobTimeout.FallbackApplied {
		warn("job_timeout", jobTimeout.Warning)
	}

	gaugeInterval := config.LoadEnvDuration("WORKER_GAUGE_INTERVAL", cfg.GaugeInterval, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 1*time.Hour)
	})
	cfg.GaugeInterval = gaugeInterval.Value
	if gaugeInterval.FallbackApplied {
		warn("gauge_interval", gaugeInterval.Warning)
	}

	cfg.PolicyPath = config.LoadEnvString("DOWNLOAD_POLICY_PATH", cfg.PolicyPath)

	healthPort := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = healthPort.Value
	if healthPort.FallbackApplied {
		warn("health_port", healthPort.Warning)
	}

	metricsPort := config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = metricsPort.Value
	if metricsPort.FallbackApplied {
		warn("metrics_port", metricsPort.Warning)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Always return valid config (fail-open strategy)
	return &cfg, nil
}
