package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	wkconfig "wallfeed/internal/pkg/config"
	pkgconfig "wallfeed/pkg/config"
)

// DownloadPolicy represents the download and catalog maintenance policy,
// loaded from YAML with environment overrides for the limiter knobs.
type DownloadPolicy struct {
	Downloads struct {
		// PerHour is each client's download allowance per hour.
		PerHour int `yaml:"per_hour"`
		// Burst is how many downloads may happen back to back.
		Burst int `yaml:"burst"`
		// MaxKeys bounds the limiter's tracked clients.
		MaxKeys int `yaml:"max_keys"`
		// IdleTTL is how long an inactive client's bucket is kept.
		IdleTTL time.Duration `yaml:"idle_ttl"`
	} `yaml:"downloads"`

	Retention struct {
		// EventsDays is how many days of download events are kept.
		EventsDays int `yaml:"events_days"`
		// PurgeSchedule is the cron schedule of the retention job.
		PurgeSchedule string `yaml:"purge_schedule"`
	} `yaml:"retention"`

	Trending struct {
		// HalfLifeDays is the decay half-life of the trending score.
		HalfLifeDays float64 `yaml:"half_life_days"`
		// RefreshSchedule is the cron schedule of the score refresh job.
		RefreshSchedule string `yaml:"refresh_schedule"`
	} `yaml:"trending"`
}

// DefaultDownloadPolicy returns the policy used when no YAML file is
// configured.
func DefaultDownloadPolicy() *DownloadPolicy {
	p := &DownloadPolicy{}
	p.Downloads.PerHour = 30
	p.Downloads.Burst = 5
	p.Downloads.MaxKeys = 10000
	p.Downloads.IdleTTL = 10 * time.Minute
	p.Retention.EventsDays = 90
	p.Retention.PurgeSchedule = "15 4 * * *"
	p.Trending.HalfLifeDays = 7
	p.Trending.RefreshSchedule = "*/30 * * * *"
	return p
}

// LoadDownloadPolicy loads the policy from the YAML file at path, or the
// defaults when path is empty. Environment variables DOWNLOADS_PER_HOUR
// and DOWNLOADS_BURST override the file for quick operational tuning.
// The path comes from a trusted source (CLI flag or env), not user input.
func LoadDownloadPolicy(path string) (*DownloadPolicy, error) {
	policy := DefaultDownloadPolicy()

	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI arg or env), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read download policy: %w", err)
		}
		if err := yaml.Unmarshal(data, policy); err != nil {
			return nil, fmt.Errorf("failed to parse download policy: %w", err)
		}
	}

	policy.Downloads.PerHour = pkgconfig.GetEnvInt("DOWNLOADS_PER_HOUR", policy.Downloads.PerHour)
	policy.Downloads.Burst = pkgconfig.GetEnvInt("DOWNLOADS_BURST", policy.Downloads.Burst)

	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("download policy validation failed: %w", err)
	}
	return policy, nil
}

// Validate checks the loaded policy.
func (p *DownloadPolicy) Validate() error {
	if p.Downloads.PerHour <= 0 {
		return fmt.Errorf("downloads.per_hour must be positive")
	}
	if p.Downloads.Burst <= 0 {
		return fmt.Errorf("downloads.burst must be positive")
	}
	if p.Downloads.MaxKeys <= 0 {
		return fmt.Errorf("downloads.max_keys must be positive")
	}
	if p.Downloads.IdleTTL <= 0 {
		return fmt.Errorf("downloads.idle_ttl must be positive")
	}
	if p.Retention.EventsDays <= 0 {
		return fmt.Errorf("retention.events_days must be positive")
	}
	if err := wkconfig.ValidateCronSchedule(p.Retention.PurgeSchedule); err != nil {
		return fmt.Errorf("retention.purge_schedule: %w", err)
	}
	if p.Trending.HalfLifeDays <= 0 {
		return fmt.Errorf("trending.half_life_days must be positive")
	}
	if err := wkconfig.ValidateCronSchedule(p.Trending.RefreshSchedule); err != nil {
		return fmt.Errorf("trending.refresh_schedule: %w", err)
	}
	return nil
}

// EventRetention returns the retention window as a duration.
func (p *DownloadPolicy) EventRetention() time.Duration {
	return time.Duration(p.Retention.EventsDays) * 24 * time.Hour
}
