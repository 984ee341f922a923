package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// WallpaperRepo implements repository.WallpaperRepository on PostgreSQL.
type WallpaperRepo struct {
	db           *sql.DB
	queryBuilder *FeedQueryBuilder
}

// NewWallpaperRepo creates a new PostgreSQL-backed wallpaper repository.
func NewWallpaperRepo(db *sql.DB) repository.WallpaperRepository {
	return &WallpaperRepo{
		db:           db,
		queryBuilder: NewFeedQueryBuilder(),
	}
}

// encodeTags flattens the tag list into the single text column used for
// storage and ILIKE search. Tags never contain commas (entity validation
// caps their charset in practice to short labels).
func encodeTags(tags []string) string {
	return strings.Join(tags, ",")
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func scanFeedRow(rows *sql.Rows) (entity.WallpaperWithCategory, error) {
	var item entity.WallpaperWithCategory
	var tags string
	err := rows.Scan(&item.ID, &item.CategoryID, &item.Title, &item.Slug,
		&item.ImageURL, &item.ThumbURL, &item.VideoURL, &tags,
		&item.IsPremium, &item.Width, &item.Height,
		&item.Downloads, &item.Views, &item.PublishedAt, &item.CreatedAt,
		&item.CategoryName, &item.CategorySlug)
	if err != nil {
		return item, err
	}
	item.Tags = decodeTags(tags)
	return item, nil
}

// Feed retrieves one page of wallpapers with category names, filtered and
// ordered per the filter.
func (repo *WallpaperRepo) Feed(ctx context.Context, filter repository.FeedFilter, offset, limit int) ([]entity.WallpaperWithCategory, error) {
	query, args := repo.queryBuilder.BuildSelect(filter, offset, limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Feed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	items := make([]entity.WallpaperWithCategory, 0, limit)
	for rows.Next() {
		item, err := scanFeedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("Feed: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountFeed returns the number of wallpapers matching the filter.
func (repo *WallpaperRepo) CountFeed(ctx context.Context, filter repository.FeedFilter) (int64, error) {
	query, args := repo.queryBuilder.BuildCount(filter)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountFeed: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of wallpapers in the catalog.
func (repo *WallpaperRepo) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM wallpapers`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountAll: %w", err)
	}
	return count, nil
}

func (repo *WallpaperRepo) Get(ctx context.Context, id int64) (*entity.Wallpaper, error) {
	const query = `
SELECT id, category_id, title, slug, image_url, thumb_url, video_url, tags,
       is_premium, width, height, downloads, views, published_at, created_at
FROM wallpapers
WHERE id = $1
LIMIT 1`
	var w entity.Wallpaper
	var tags string
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.CategoryID, &w.Title, &w.Slug,
			&w.ImageURL, &w.ThumbURL, &w.VideoURL, &tags,
			&w.IsPremium, &w.Width, &w.Height,
			&w.Downloads, &w.Views, &w.PublishedAt, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	w.Tags = decodeTags(tags)
	return &w, nil
}

func (repo *WallpaperRepo) GetWithCategory(ctx context.Context, id int64) (*entity.WallpaperWithCategory, error) {
	const query = `
SELECT w.id, w.category_id, w.title, w.slug, w.image_url, w.thumb_url, w.video_url, w.tags,
       w.is_premium, w.width, w.height, w.downloads, w.views, w.published_at, w.created_at,
       c.name, c.slug
FROM wallpapers w
INNER JOIN categories c ON w.category_id = c.id
WHERE w.id = $1
LIMIT 1`
	var item entity.WallpaperWithCategory
	var tags string
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.CategoryID, &item.Title, &item.Slug,
			&item.ImageURL, &item.ThumbURL, &item.VideoURL, &tags,
			&item.IsPremium, &item.Width, &item.Height,
			&item.Downloads, &item.Views, &item.PublishedAt, &item.CreatedAt,
			&item.CategoryName, &item.CategorySlug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithCategory: %w", err)
	}
	item.Tags = decodeTags(tags)
	return &item, nil
}

func (repo *WallpaperRepo) Create(ctx context.Context, w *entity.Wallpaper) error {
	const query = `
INSERT INTO wallpapers
       (category_id, title, slug, image_url, thumb_url, video_url, tags,
        is_premium, width, height, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		w.CategoryID, w.Title, w.Slug, w.ImageURL, w.ThumbURL, w.VideoURL,
		encodeTags(w.Tags), w.IsPremium, w.Width, w.Height,
		w.PublishedAt, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *WallpaperRepo) Update(ctx context.Context, w *entity.Wallpaper) error {
	const query = `
UPDATE wallpapers SET
       category_id  = $1,
       title        = $2,
       slug         = $3,
       image_url    = $4,
       thumb_url    = $5,
       video_url    = $6,
       tags         = $7,
       is_premium   = $8,
       width        = $9,
       height       = $10,
       published_at = $11
WHERE id = $12`
	res, err := repo.db.ExecContext(ctx, query,
		w.CategoryID, w.Title, w.Slug, w.ImageURL, w.ThumbURL, w.VideoURL,
		encodeTags(w.Tags), w.IsPremium, w.Width, w.Height,
		w.PublishedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

func (repo *WallpaperRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM wallpapers WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

// IncrementDownloads bumps the download counter atomically and returns the
// new value, so concurrent downloads never lose a count.
func (repo *WallpaperRepo) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	const query = `
UPDATE wallpapers
SET downloads = downloads + 1
WHERE id = $1
RETURNING downloads`
	var downloads int64
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&downloads)
	if err == sql.ErrNoRows {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("IncrementDownloads: %w", err)
	}
	return downloads, nil
}

func (repo *WallpaperRepo) IncrementViews(ctx context.Context, id int64) error {
	const query = `UPDATE wallpapers SET views = views + 1 WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementViews: %w", err)
	}
	return nil
}

func (repo *WallpaperRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM wallpapers WHERE slug = $1)`
	var existsFlag bool
	if err := repo.db.QueryRowContext(ctx, query, slug).Scan(&existsFlag); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return existsFlag, nil
}

// UpsertBySlug inserts the wallpaper or refreshes the existing row with the
// same slug. Counters (downloads, views) are owned by this service and are
// deliberately left untouched on conflict.
func (repo *WallpaperRepo) UpsertBySlug(ctx context.Context, w *entity.Wallpaper) (bool, error) {
	const query = `
INSERT INTO wallpapers
       (category_id, title, slug, image_url, thumb_url, video_url, tags,
        is_premium, width, height, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (slug) DO UPDATE SET
       category_id  = EXCLUDED.category_id,
       title        = EXCLUDED.title,
       image_url    = EXCLUDED.image_url,
       thumb_url    = EXCLUDED.thumb_url,
       video_url    = EXCLUDED.video_url,
       tags         = EXCLUDED.tags,
       is_premium   = EXCLUDED.is_premium,
       width        = EXCLUDED.width,
       height       = EXCLUDED.height,
       published_at = EXCLUDED.published_at
RETURNING id, (xmax = 0)`
	var inserted bool
	err := repo.db.QueryRowContext(ctx, query,
		w.CategoryID, w.Title, w.Slug, w.ImageURL, w.ThumbURL, w.VideoURL,
		encodeTags(w.Tags), w.IsPremium, w.Width, w.Height,
		w.PublishedAt, w.CreatedAt,
	).Scan(&w.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("UpsertBySlug: %w", err)
	}
	return inserted, nil
}

// RefreshTrendingScores recomputes the trending score of every wallpaper as
// downloads decayed exponentially by age with the given half-life.
func (repo *WallpaperRepo) RefreshTrendingScores(ctx context.Context, halfLifeDays float64) error {
	const query = `
UPDATE wallpapers
SET trending_score = downloads * POWER(0.5,
        EXTRACT(EPOCH FROM (NOW() - published_at)) / 86400.0 / $1)`
	if _, err := repo.db.ExecContext(ctx, query, halfLifeDays); err != nil {
		return fmt.Errorf("RefreshTrendingScores: %w", err)
	}
	return nil
}
