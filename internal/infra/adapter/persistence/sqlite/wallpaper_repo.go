package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// WallpaperRepo implements repository.WallpaperRepository on SQLite.
type WallpaperRepo struct {
	db           *sql.DB
	queryBuilder *FeedQueryBuilder
}

// NewWallpaperRepo creates a new SQLite-backed wallpaper repository.
func NewWallpaperRepo(db *sql.DB) repository.WallpaperRepository {
	return &WallpaperRepo{
		db:           db,
		queryBuilder: NewFeedQueryBuilder(),
	}
}

func encodeTags(tags []string) string {
	return strings.Join(tags, ",")
}

func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Feed retrieves one page of wallpapers with category names.
func (repo *WallpaperRepo) Feed(ctx context.Context, filter repository.FeedFilter, offset, limit int) ([]entity.WallpaperWithCategory, error) {
	query, args := repo.queryBuilder.BuildSelect(filter, offset, limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Feed: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]entity.WallpaperWithCategory, 0, limit)
	for rows.Next() {
		var item entity.WallpaperWithCategory
		var tags string
		err := rows.Scan(&item.ID, &item.CategoryID, &item.Title, &item.Slug,
			&item.ImageURL, &item.ThumbURL, &item.VideoURL, &tags,
			&item.IsPremium, &item.Width, &item.Height,
			&item.Downloads, &item.Views, &item.PublishedAt, &item.CreatedAt,
			&item.CategoryName, &item.CategorySlug)
		if err != nil {
			return nil, fmt.Errorf("Feed: Scan: %w", err)
		}
		item.Tags = decodeTags(tags)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Feed: rows.Err: %w", err)
	}
	return items, nil
}

func (repo *WallpaperRepo) CountFeed(ctx context.Context, filter repository.FeedFilter) (int64, error) {
	query, args := repo.queryBuilder.BuildCount(filter)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountFeed: %w", err)
	}
	return count, nil
}

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
WHERE id = ?
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
WHERE w.id = ?
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
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		w.CategoryID, w.Title, w.Slug, w.ImageURL, w.ThumbURL, w.VideoURL,
		encodeTags(w.Tags), w.IsPremium, w.Width, w.Height,
		w.PublishedAt, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	w.ID = id
	return nil
}

func (repo *WallpaperRepo) Update(ctx context.Context, w *entity.Wallpaper) error {
	const query = `
UPDATE wallpapers SET
       category_id  = ?,
       title        = ?,
       slug         = ?,
       image_url    = ?,
       thumb_url    = ?,
       video_url    = ?,
       tags         = ?,
       is_premium   = ?,
       width        = ?,
       height       = ?,
       published_at = ?
WHERE id = ?`
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
	const query = `DELETE FROM wallpapers WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}

func (repo *WallpaperRepo) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	const query = `
UPDATE wallpapers
SET downloads = downloads + 1
WHERE id = ?
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
	const query = `UPDATE wallpapers SET views = views + 1 WHERE id = ?`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementViews: %w", err)
	}
	return nil
}

func (repo *WallpaperRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM wallpapers WHERE slug = ?)`
	var existsFlag bool
	if err := repo.db.QueryRowContext(ctx, query, slug).Scan(&existsFlag); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return existsFlag, nil
}

// UpsertBySlug inserts the wallpaper or refreshes the row with the same
// slug, leaving the counters untouched.
func (repo *WallpaperRepo) UpsertBySlug(ctx context.Context, w *entity.Wallpaper) (bool, error) {
	existed, err := repo.ExistsBySlug(ctx, w.Slug)
	if err != nil {
		return false, fmt.Errorf("UpsertBySlug: %w", err)
	}

	const query = `
INSERT INTO wallpapers
       (category_id, title, slug, image_url, thumb_url, video_url, tags,
        is_premium, width, height, published_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
       category_id  = excluded.category_id,
       title        = excluded.title,
       image_url    = excluded.image_url,
       thumb_url    = excluded.thumb_url,
       video_url    = excluded.video_url,
       tags         = excluded.tags,
       is_premium   = excluded.is_premium,
       width        = excluded.width,
       height       = excluded.height,
       published_at = excluded.published_at
RETURNING id`
	err = repo.db.QueryRowContext(ctx, query,
		w.CategoryID, w.Title, w.Slug, w.ImageURL, w.ThumbURL, w.VideoURL,
		encodeTags(w.Tags), w.IsPremium, w.Width, w.Height,
		w.PublishedAt, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return false, fmt.Errorf("UpsertBySlug: %w", err)
	}
	return !existed, nil
}

// RefreshTrendingScores recomputes trending scores with an exponential
// decay over the wallpaper's age. pow() needs the SQLite math functions,
// which the modernc driver compiles in.
func (repo *WallpaperRepo) RefreshTrendingScores(ctx context.Context, halfLifeDays float64) error {
	const query = `
UPDATE wallpapers
SET trending_score = downloads * pow(0.5,
        (julianday('now') - julianday(published_at)) / ?)`
	if _, err := repo.db.ExecContext(ctx, query, halfLifeDays); err != nil {
		return fmt.Errorf("RefreshTrendingScores: %w", err)
	}
	return nil
}
