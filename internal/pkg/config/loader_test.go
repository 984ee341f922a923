package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("DOWNLOAD_POLICY_PATH", "/etc/wallfeed/policy.yaml")
		assert.Equal(t, "/etc/wallfeed/policy.yaml", LoadEnvString("DOWNLOAD_POLICY_PATH", ""))
	})

	t.Run("unset uses default", func(t *testing.T) {
		assert.Equal(t, "policy.yaml", LoadEnvString("DOWNLOAD_POLICY_PATH", "policy.yaml"))
	})

	t.Run("empty counts as unset", func(t *testing.T) {
		t.Setenv("DOWNLOAD_POLICY_PATH", "")
		assert.Equal(t, "policy.yaml", LoadEnvString("DOWNLOAD_POLICY_PATH", "policy.yaml"))
	})
}

func TestLoadEnvWithFallback(t *testing.T) {
	t.Run("valid timezone accepted", func(t *testing.T) {
		t.Setenv("WORKER_TIMEZONE", "Asia/Tokyo")

		result := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", ValidateTimezone)

		assert.Equal(t, "Asia/Tokyo", result.Value)
		assert.False(t, result.FallbackApplied)
		assert.Empty(t, result.Warning)
	})

	t.Run("unset uses default without warning", func(t *testing.T) {
		result := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", ValidateTimezone)

		assert.Equal(t, "UTC", result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("rejected value falls back with warning", func(t *testing.T) {
		t.Setenv("WORKER_TIMEZONE", "Tokyo/Asia")

		result := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", ValidateTimezone)

		assert.Equal(t, "UTC", result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warning, "WORKER_TIMEZONE")
		assert.Contains(t, result.Warning, "Tokyo/Asia")
	})

	t.Run("nil validator accepts anything", func(t *testing.T) {
		t.Setenv("WORKER_TIMEZONE", "not-a-zone")

		result := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", nil)

		assert.Equal(t, "not-a-zone", result.Value)
		assert.False(t, result.FallbackApplied)
	})
}

func TestLoadEnvDuration(t *testing.T) {
	inJobRange := func(d time.Duration) error {
		return ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	}

	t.Run("valid duration accepted", func(t *testing.T) {
		t.Setenv("WORKER_JOB_TIMEOUT", "30m")

		result := LoadEnvDuration("WORKER_JOB_TIMEOUT", 10*time.Minute, inJobRange)

		assert.Equal(t, 30*time.Minute, result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("unset uses default", func(t *testing.T) {
		result := LoadEnvDuration("WORKER_JOB_TIMEOUT", 10*time.Minute, inJobRange)

		assert.Equal(t, 10*time.Minute, result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("unparseable falls back", func(t *testing.T) {
		t.Setenv("WORKER_JOB_TIMEOUT", "ten minutes")

		result := LoadEnvDuration("WORKER_JOB_TIMEOUT", 10*time.Minute, inJobRange)

		assert.Equal(t, 10*time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warning, "WORKER_JOB_TIMEOUT")
	})

	t.Run("bare number is not a duration", func(t *testing.T) {
		t.Setenv("WORKER_JOB_TIMEOUT", "600")

		result := LoadEnvDuration("WORKER_JOB_TIMEOUT", 10*time.Minute, inJobRange)

		assert.Equal(t, 10*time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
	})

	t.Run("out of range falls back", func(t *testing.T) {
		t.Setenv("WORKER_JOB_TIMEOUT", "10s")

		result := LoadEnvDuration("WORKER_JOB_TIMEOUT", 10*time.Minute, inJobRange)

		assert.Equal(t, 10*time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warning, "below minimum")
	})
}

func TestLoadEnvInt(t *testing.T) {
	portRange := func(v int) error {
		return ValidateIntRange(v, 1024, 65535)
	}

	t.Run("valid port accepted", func(t *testing.T) {
		t.Setenv("WORKER_METRICS_PORT", "9100")

		result := LoadEnvInt("WORKER_METRICS_PORT", 9092, portRange)

		assert.Equal(t, 9100, result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("unset uses default", func(t *testing.T) {
		result := LoadEnvInt("WORKER_HEALTH_PORT", 9091, portRange)

		assert.Equal(t, 9091, result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("non-numeric falls back", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "nine-thousand")

		result := LoadEnvInt("WORKER_HEALTH_PORT", 9091, portRange)

		assert.Equal(t, 9091, result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warning, "not an integer")
	})

	t.Run("privileged port rejected by range check", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "80")

		result := LoadEnvInt("WORKER_HEALTH_PORT", 9091, portRange)

		assert.Equal(t, 9091, result.Value)
		assert.True(t, result.FallbackApplied)
	})

	t.Run("validator error is carried into the warning", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "70000")

		result := LoadEnvInt("WORKER_HEALTH_PORT", 9091, func(v int) error {
			if err := ValidateIntRange(v, 1024, 65535); err != nil {
				return fmt.Errorf("port: %w", err)
			}
			return nil
		})

		assert.True(t, result.FallbackApplied)
		assert.Contains(t, result.Warning, "port:")
		assert.Contains(t, result.Warning, "using default 9091")
	})
}
