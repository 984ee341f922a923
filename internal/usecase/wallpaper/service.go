package wallpaper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallfeed/internal/common/pagination"
	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// FeedQuery is the filter/sort state of one feed request. It mirrors the
// public feed endpoint contract; Search is split into AND-matched keywords.
type FeedQuery struct {
	Search       string
	CategorySlug string
	PremiumOnly  bool
	VideoOnly    bool
	Sort         string
}

// FeedResult is one page of the feed plus its pagination metadata.
type FeedResult struct {
	Items []entity.WallpaperWithCategory
	Meta  pagination.Meta
}

// CreateInput represents the input parameters for creating a new wallpaper.
type CreateInput struct {
	CategoryID  int64
	Title       string
	Slug        string
	ImageURL    string
	ThumbURL    string
	VideoURL    string
	Tags        []string
	IsPremium   bool
	Width       int
	Height      int
	PublishedAt time.Time
}

// UpdateInput represents the input parameters for updating an existing
// wallpaper. Fields with nil values will not be updated.
type UpdateInput struct {
	ID         int64
	CategoryID *int64
	Title      *string
	ImageURL   *string
	ThumbURL   *string
	VideoURL   *string
	Tags       *[]string
	IsPremium  *bool
	Width      *int
	Height     *int
}

// Service provides wallpaper catalog use cases.
// It handles business logic and delegates persistence to the repository.
type Service struct {
	Repo repository.WallpaperRepository
}

// toFilter converts the public query into the repository filter.
// Returns ErrInvalidSort for unsupported sort values; an empty sort means
// the default ordering (newest).
func (q FeedQuery) toFilter() (repository.FeedFilter, error) {
	sort := repository.FeedSort(q.Sort)
	if q.Sort == "" {
		sort = repository.SortNewest
	}
	if !sort.Valid() {
		return repository.FeedFilter{}, ErrInvalidSort
	}
	return repository.FeedFilter{
		Keywords:     strings.Fields(q.Search),
		CategorySlug: q.CategorySlug,
		PremiumOnly:  q.PremiumOnly,
		VideoOnly:    q.VideoOnly,
		Sort:         sort,
	}, nil
}

// Feed retrieves one page of the wallpaper feed: count for the metadata,
// then the page itself. The two queries share the same filter so the
// reported totals always match the page contents.
func (s *Service) Feed(ctx context.Context, query FeedQuery, params pagination.Params) (*FeedResult, error) {
	filter, err := query.toFilter()
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountFeed(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count feed: %w", err)
	}

	offset := pagination.CalculateOffset(params.Page, params.Limit)
	items, err := s.Repo.Feed(ctx, filter, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	return &FeedResult{
		Items: items,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

// Get retrieves a single wallpaper by its ID.
// Returns ErrInvalidWallpaperID if the ID is not positive.
// Returns ErrWallpaperNotFound if the wallpaper does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Wallpaper, error) {
	if id <= 0 {
		return nil, ErrInvalidWallpaperID
	}

	w, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wallpaper: %w", err)
	}
	if w == nil {
		return nil, ErrWallpaperNotFound
	}
	return w, nil
}

// GetWithCategory retrieves a wallpaper with its category resolved and
// bumps the view counter. The view bump is best-effort and never fails
// the read.
func (s *Service) GetWithCategory(ctx context.Context, id int64) (*entity.WallpaperWithCategory, error) {
	if id <= 0 {
		return nil, ErrInvalidWallpaperID
	}

	item, err := s.Repo.GetWithCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wallpaper with category: %w", err)
	}
	if item == nil {
		return nil, ErrWallpaperNotFound
	}

	_ = s.Repo.IncrementViews(ctx, id)
	return item, nil
}

// Create creates a new wallpaper after validating the input.
// Returns ErrDuplicateSlug if the slug is already taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Wallpaper, error) {
	w := &entity.Wallpaper{
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Slug:        in.Slug,
		ImageURL:    in.ImageURL,
		ThumbURL:    in.ThumbURL,
		VideoURL:    in.VideoURL,
		Tags:        in.Tags,
		IsPremium:   in.IsPremium,
		Width:       in.Width,
		Height:      in.Height,
		PublishedAt: in.PublishedAt,
		CreatedAt:   time.Now(),
	}
	if w.CategoryID <= 0 {
		return nil, &entity.ValidationError{Field: "categoryID", Message: "must be positive"}
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validate wallpaper: %w", err)
	}

	taken, err := s.Repo.ExistsBySlug(ctx, w.Slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create wallpaper: %w", err)
	}
	return w, nil
}

// Update modifies an existing wallpaper with the provided input.
// Only non-nil fields in the input will be updated. The slug is immutable;
// it identifies the wallpaper to the importer and in URLs.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID <= 0 {
		return ErrInvalidWallpaperID
	}

	w, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get wallpaper: %w", err)
	}
	if w == nil {
		return ErrWallpaperNotFound
	}

	if in.CategoryID != nil {
		w.CategoryID = *in.CategoryID
	}
	if in.Title != nil {
		w.Title = *in.Title
	}
	if in.ImageURL != nil {
		w.ImageURL = *in.ImageURL
	}
	if in.ThumbURL != nil {
		w.ThumbURL = *in.ThumbURL
	}
	if in.VideoURL != nil {
		w.VideoURL = *in.VideoURL
	}
	if in.Tags != nil {
		w.Tags = *in.Tags
	}
	if in.IsPremium != nil {
		w.IsPremium = *in.IsPremium
	}
	if in.Width != nil {
		w.Width = *in.Width
	}
	if in.Height != nil {
		w.Height = *in.Height
	}

	if err := w.Validate(); err != nil {
		return fmt.Errorf("validate wallpaper: %w", err)
	}

	if err := s.Repo.Update(ctx, w); err != nil {
		return fmt.Errorf("update wallpaper: %w", err)
	}
	return nil
}

// Delete removes a wallpaper by its ID.
// Returns ErrInvalidWallpaperID if the ID is not positive.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidWallpaperID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete wallpaper: %w", err)
	}
	return nil
}
