package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/observability/metrics"
	"wallfeed/internal/repository"
	"wallfeed/internal/resilience/circuitbreaker"
	"wallfeed/internal/resilience/retry"
)

// Importer runs manifest imports against the catalog repositories.
//
// Failure isolation:
//   - A manifest that cannot be fetched or parsed aborts the run.
//   - An invalid or unreachable entry is skipped; the rest proceed.
//   - The manifest host and the media CDN have separate circuit breakers,
//     so a CDN outage does not block future manifest fetches.
//
// Thread safety: Importer is safe for concurrent use, though imports are
// normally one-shot.
type Importer struct {
	wallpapers repository.WallpaperRepository
	categories repository.CategoryRepository
	client     *http.Client
	manifestCB *circuitbreaker.CircuitBreaker
	probeCB    *circuitbreaker.CircuitBreaker
	config     ImportConfig
	logger     *slog.Logger
}

// Stats summarizes one import run.
type Stats struct {
	// Total is the number of entries in the manifest.
	Total int `json:"total"`
	// Created is the number of newly inserted wallpapers.
	Created int `json:"created"`
	// Updated is the number of wallpapers refreshed from the manifest.
	Updated int `json:"updated"`
	// Skipped counts entries whose media probe or upsert failed.
	Skipped int `json:"skipped"`
	// Invalid counts entries that failed validation.
	Invalid int `json:"invalid"`
	// Duplicated counts entries dropped because an earlier entry had the
	// same slug.
	Duplicated int `json:"duplicated"`
	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`
}

// New creates an Importer with the given repositories and configuration.
func New(wallpapers repository.WallpaperRepository, categories repository.CategoryRepository, cfg ImportConfig, logger *slog.Logger) *Importer {
	return &Importer{
		wallpapers: wallpapers,
		categories: categories,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		manifestCB: circuitbreaker.New(circuitbreaker.ManifestFetchConfig()),
		probeCB:    circuitbreaker.New(circuitbreaker.MediaProbeConfig()),
		config:     cfg,
		logger:     logger,
	}
}

// Run executes one import: fetch, parse, de-duplicate, validate, probe and
// upsert. Entries failing any per-entry step are counted and skipped; only
// manifest-level failures return an error.
func (i *Importer) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	stats := &Stats{}

	if err := i.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid import config: %w", err)
	}

	data, err := i.loadManifest(ctx)
	if err != nil {
		return nil, err
	}
	manifest, err := parseManifest(data)
	if err != nil {
		return nil, err
	}
	stats.Total = len(manifest.Wallpapers)

	// 同じスラッグは最初のエントリを採用する
	entries := lo.UniqBy(manifest.Wallpapers, func(e ManifestEntry) string { return e.Slug })
	stats.Duplicated = stats.Total - len(entries)

	categoryIDs, err := i.resolveCategories(ctx, entries)
	if err != nil {
		return nil, err
	}

	// Validate and probe entries in parallel. Each goroutine writes only
	// its own slot, so no locking is needed.
	prepared := make([]*entity.Wallpaper, len(entries))
	outcomes := make([]string, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.config.Parallelism)
	for idx, e := range entries {
		idx, e := idx, e
		g.Go(func() error {
			categoryID, ok := categoryIDs[e.Category]
			if !ok {
				i.logger.Warn("entry references unknown category",
					slog.String("slug", e.Slug),
					slog.String("category", e.Category))
				outcomes[idx] = "invalid"
				return nil
			}

			w := e.toWallpaper(categoryID)
			if err := w.Validate(); err != nil {
				i.logger.Warn("invalid manifest entry",
					slog.String("slug", e.Slug),
					slog.Any("error", err))
				outcomes[idx] = "invalid"
				return nil
			}

			if i.config.ProbeMedia {
				if err := i.probeMedia(gctx, w); err != nil {
					i.logger.Warn("media probe failed, skipping entry",
						slog.String("slug", e.Slug),
						slog.Any("error", err))
					outcomes[idx] = "skipped"
					return nil
				}
			}

			prepared[idx] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("media probes aborted: %w", err)
	}

	stats.Invalid = lo.Count(outcomes, "invalid")
	stats.Skipped = lo.Count(outcomes, "skipped")

	for _, w := range prepared {
		if w == nil {
			continue
		}
		if i.config.DryRun {
			exists, err := i.wallpapers.ExistsBySlug(ctx, w.Slug)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug %q: %w", w.Slug, err)
			}
			if exists {
				stats.Updated++
			} else {
				stats.Created++
			}
			continue
		}

		inserted, err := i.wallpapers.UpsertBySlug(ctx, w)
		if err != nil {
			i.logger.Warn("upsert failed, skipping entry",
				slog.String("slug", w.Slug),
				slog.Any("error", err))
			stats.Skipped++
			continue
		}
		if inserted {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	stats.Duration = time.Since(startTime)

	if !i.config.DryRun {
		metrics.RecordImportResult("created", stats.Created)
		metrics.RecordImportResult("updated", stats.Updated)
		metrics.RecordImportResult("skipped", stats.Skipped)
		metrics.RecordImportResult("invalid", stats.Invalid)
		metrics.RecordImportRun(stats.Duration)
	}

	i.logger.Info("import completed",
		slog.Int("total", stats.Total),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped", stats.Skipped),
		slog.Int("invalid", stats.Invalid),
		slog.Int("duplicated", stats.Duplicated),
		slog.Bool("dry_run", i.config.DryRun),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// loadManifest reads the manifest from an HTTP(S) source or a local file.
func (i *Importer) loadManifest(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(i.config.Source, "http://") || strings.HasPrefix(i.config.Source, "https://") {
		return i.fetchManifest(ctx)
	}

	// #nosec G304 -- the source path comes from a CLI flag or env var, not user input
	data, err := os.ReadFile(i.config.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	if int64(len(data)) > i.config.MaxBodySize {
		return nil, fmt.Errorf("manifest size %d bytes exceeds limit %d bytes", len(data), i.config.MaxBodySize)
	}
	return data, nil
}

// fetchManifest downloads the manifest with retries through the manifest
// circuit breaker. 5xx/429/408 responses and network timeouts are retried;
// an open breaker aborts immediately.
func (i *Importer) fetchManifest(ctx context.Context) ([]byte, error) {
	var data []byte
	err := retry.WithBackoff(ctx, retry.ManifestFetchConfig(), func() error {
		result, err := i.manifestCB.Execute(func() (interface{}, error) {
			return i.doFetchManifest(ctx)
		})
		if err != nil {
			return err
		}
		data = result.([]byte)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	return data, nil
}

func (i *Importer) doFetchManifest(ctx context.Context) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, i.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, i.config.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "WallfeedImporter/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manifest request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, i.config.MaxBodySize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest body: %w", err)
	}
	if int64(len(data)) > i.config.MaxBodySize {
		return nil, fmt.Errorf("manifest size exceeds limit %d bytes", i.config.MaxBodySize)
	}
	return data, nil
}

// resolveCategories maps each category slug referenced by the entries to its
// ID, creating categories that do not exist yet. In dry-run mode missing
// categories are mapped to a placeholder ID instead of being created.
func (i *Importer) resolveCategories(ctx context.Context, entries []ManifestEntry) (map[string]int64, error) {
	ids := make(map[string]int64)
	for _, e := range entries {
		slug := e.Category
		if slug == "" {
			continue
		}
		if _, done := ids[slug]; done {
			continue
		}

		cat, err := i.categories.GetBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("failed to look up category %q: %w", slug, err)
		}
		if cat != nil {
			ids[slug] = cat.ID
			continue
		}

		if i.config.DryRun {
			ids[slug] = -1
			continue
		}

		newCat := &entity.Category{
			Name:      e.displayName(),
			Slug:      slug,
			CreatedAt: time.Now(),
		}
		if err := newCat.Validate(); err != nil {
			// 不正なスラッグのカテゴリは作らない。該当エントリは後段で invalid 扱い
			i.logger.Warn("invalid category in manifest",
				slog.String("category", slug),
				slog.Any("error", err))
			continue
		}
		if err := i.categories.Create(ctx, newCat); err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", slug, err)
		}
		i.logger.Info("category created", slog.String("slug", slug), slog.Int64("id", newCat.ID))
		ids[slug] = newCat.ID
	}
	return ids, nil
}

// probeMedia checks that every media URL of the wallpaper resolves.
func (i *Importer) probeMedia(ctx context.Context, w *entity.Wallpaper) error {
	urls := []string{w.ImageURL}
	if w.ThumbURL != "" {
		urls = append(urls, w.ThumbURL)
	}
	if w.VideoURL != "" {
		urls = append(urls, w.VideoURL)
	}
	for _, u := range urls {
		if err := i.probeURL(ctx, u); err != nil {
			return fmt.Errorf("probe %s: %w", u, err)
		}
	}
	return nil
}

func (i *Importer) probeURL(ctx context.Context, rawURL string) error {
	return retry.WithBackoff(ctx, retry.MediaProbeConfig(), func() error {
		_, err := i.probeCB.Execute(func() (interface{}, error) {
			return nil, i.doProbe(ctx, rawURL)
		})
		return err
	})
}

func (i *Importer) doProbe(ctx context.Context, rawURL string) error {
	reqCtx, cancel := context.WithTimeout(ctx, i.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("User-Agent", "WallfeedImporter/1.0")

	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	return nil
}
