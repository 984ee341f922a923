// Package download implements the wallpaper download use case: allowance
// checks per client, counter increments, and the download event trail.
package download

import (
	"context"
	"fmt"
	"time"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
	"wallfeed/pkg/ratelimit"
)

// Limiter is the allowance check the service needs. *ratelimit.KeyedLimiter
// satisfies it.
type Limiter interface {
	Allow(key string) ratelimit.Decision
}

// RateLimitedError is returned when a client exhausted its download
// allowance. It unwraps to entity.ErrDownloadLimited and carries the
// retry delay for the Retry-After header.
type RateLimitedError struct {
	Decision ratelimit.Decision
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("download limited: retry after %s", e.Decision.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return entity.ErrDownloadLimited }

// Result is the outcome of a successful download registration.
type Result struct {
	// URL is the asset the client should fetch: the video for live
	// wallpapers, the full-resolution image otherwise.
	URL string
	// Downloads is the wallpaper's download count after this registration.
	Downloads int64
	// Premium marks assets that the client gates behind its premium flow.
	Premium bool
}

// Stats summarizes recent download activity.
type Stats struct {
	Since time.Time
	Count int64
}

// Service provides the download registration use case.
type Service struct {
	Wallpapers repository.WallpaperRepository
	Events     repository.DownloadEventRepository
	Limiter    Limiter
}

// Register checks the client's allowance, bumps the wallpaper's download
// counter and records the event. The event write is best-effort: the
// counter is the source of truth and a lost event only skews stats.
func (s *Service) Register(ctx context.Context, wallpaperID int64, clientKey string) (*Result, error) {
	if wallpaperID <= 0 {
		return nil, ErrInvalidWallpaperID
	}
	if clientKey == "" {
		return nil, ErrMissingClientKey
	}

	d := s.Limiter.Allow(clientKey)
	if !d.Allowed {
		return nil, &RateLimitedError{Decision: d}
	}

	w, err := s.Wallpapers.Get(ctx, wallpaperID)
	if err != nil {
		return nil, fmt.Errorf("get wallpaper: %w", err)
	}
	if w == nil {
		return nil, ErrWallpaperNotFound
	}

	count, err := s.Wallpapers.IncrementDownloads(ctx, wallpaperID)
	if err != nil {
		return nil, fmt.Errorf("increment downloads: %w", err)
	}

	_ = s.Events.Record(ctx, &entity.DownloadEvent{
		WallpaperID: wallpaperID,
		ClientKey:   clientKey,
		Premium:     w.IsPremium,
		CreatedAt:   time.Now(),
	})

	url := w.ImageURL
	if w.VideoURL != "" {
		url = w.VideoURL
	}
	return &Result{URL: url, Downloads: count, Premium: w.IsPremium}, nil
}

// RecentStats returns the number of downloads recorded in the given window.
func (s *Service) RecentStats(ctx context.Context, window time.Duration) (*Stats, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive", entity.ErrInvalidInput)
	}
	since := time.Now().Add(-window)
	count, err := s.Events.CountSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("count downloads: %w", err)
	}
	return &Stats{Since: since, Count: count}, nil
}
