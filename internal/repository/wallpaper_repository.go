package repository

import (
	"context"

	"wallfeed/internal/domain/entity"
)

// FeedSort selects the ordering of the wallpaper feed.
type FeedSort string

const (
	// SortNewest orders by publication date, newest first. Default.
	SortNewest FeedSort = "newest"
	// SortPopular orders by all-time downloads.
	SortPopular FeedSort = "popular"
	// SortTrending orders by the time-decayed score maintained by the worker.
	SortTrending FeedSort = "trending"
	// SortRandom shuffles per request. Pages may overlap between requests;
	// clients dedup by ID.
	SortRandom FeedSort = "random"
)

// Valid reports whether the sort value is one of the supported orderings.
func (s FeedSort) Valid() bool {
	switch s {
	case SortNewest, SortPopular, SortTrending, SortRandom:
		return true
	}
	return false
}

// FeedFilter contains optional filters for the wallpaper feed query.
// Zero values mean "no filter".
type FeedFilter struct {
	Keywords     []string // AND-matched against title and tags
	CategorySlug string   // Optional: restrict to a single category
	PremiumOnly  bool
	VideoOnly    bool
	Sort         FeedSort
}

type WallpaperRepository interface {
	// Feed retrieves one page of wallpapers with their category names,
	// filtered and ordered per the filter. Uses LIMIT and OFFSET.
	Feed(ctx context.Context, filter FeedFilter, offset, limit int) ([]entity.WallpaperWithCategory, error)
	// CountFeed returns the number of wallpapers matching the filter.
	// Used for pagination metadata (total pages, etc.).
	CountFeed(ctx context.Context, filter FeedFilter) (int64, error)
	// CountAll returns the catalog size. Used for metric gauges.
	CountAll(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Wallpaper, error)
	// GetWithCategory retrieves a wallpaper by ID with its category resolved.
	// Returns (nil, nil) if the wallpaper is not found.
	GetWithCategory(ctx context.Context, id int64) (*entity.WallpaperWithCategory, error)
	Create(ctx context.Context, w *entity.Wallpaper) error
	Update(ctx context.Context, w *entity.Wallpaper) error
	Delete(ctx context.Context, id int64) error
	// IncrementDownloads bumps the download counter and returns the new value.
	IncrementDownloads(ctx context.Context, id int64) (int64, error)
	// IncrementViews bumps the view counter. Best-effort; callers may ignore errors.
	IncrementViews(ctx context.Context, id int64) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// UpsertBySlug inserts the wallpaper or updates the existing row with the
	// same slug. Returns true when a new row was inserted.
	UpsertBySlug(ctx context.Context, w *entity.Wallpaper) (bool, error)
	// RefreshTrendingScores recomputes the trending score for every wallpaper
	// as downloads decayed by age with the given half-life.
	RefreshTrendingScores(ctx context.Context, halfLifeDays float64) error
}
