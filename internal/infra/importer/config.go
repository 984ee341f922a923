// Package importer ingests wallpaper manifests into the catalog.
// A manifest is a JSON document listing wallpapers with their metadata and
// media URLs; it may live on an HTTP(S) endpoint or a local file. Entries
// are validated, de-duplicated by slug and upserted through the repository,
// optionally after probing that the media URLs actually resolve.
package importer

import (
	"fmt"
	"time"
)

const (
	// maxParallelism bounds the media probe worker count.
	maxParallelism = 32

	// maxManifestSize bounds the manifest document size.
	maxManifestSize = 50 * 1024 * 1024
)

// ImportConfig holds the configuration for a manifest import run.
type ImportConfig struct {
	// Source is the manifest location: an http(s) URL or a local file path.
	Source string

	// Parallelism is the number of concurrent media probes.
	// Range: 1 to 32
	// Default: 4
	Parallelism int

	// ProbeMedia enables HEAD probes of each entry's media URLs before
	// upserting. Entries whose media does not resolve are skipped.
	// Default: true
	ProbeMedia bool

	// DryRun reports what would be imported without writing anything.
	// Default: false
	DryRun bool

	// Timeout is the per-request timeout for manifest fetches and probes.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxBodySize is the maximum manifest size in bytes.
	// Default: 10 MB
	MaxBodySize int64
}

// DefaultConfig returns an ImportConfig with production-ready defaults.
// The Source field is left empty and must be set by the caller.
func DefaultConfig() ImportConfig {
	return ImportConfig{
		Parallelism: 4,
		ProbeMedia:  true,
		DryRun:      false,
		Timeout:     30 * time.Second,
		MaxBodySize: 10 * 1024 * 1024,
	}
}

// Validate checks the configuration values.
func (c *ImportConfig) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}
	if c.Parallelism < 1 || c.Parallelism > maxParallelism {
		return fmt.Errorf("parallelism must be between 1 and %d, got %d", maxParallelism, c.Parallelism)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize <= 0 || c.MaxBodySize > maxManifestSize {
		return fmt.Errorf("max body size must be between 1 and %d, got %d", maxManifestSize, c.MaxBodySize)
	}
	return nil
}
