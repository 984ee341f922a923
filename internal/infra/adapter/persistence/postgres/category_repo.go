package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// CategoryRepo implements repository.CategoryRepository on PostgreSQL.
type CategoryRepo struct{ db *sql.DB }

// NewCategoryRepo creates a new PostgreSQL-backed category repository.
func NewCategoryRepo(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepo{db: db}
}

func (repo *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	const query = `
SELECT id, name, slug, created_at
FROM categories
ORDER BY name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]entity.Category, 0, 32)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListWithCounts retrieves all categories with their live wallpaper counts.
// Categories without wallpapers are included with a zero count.
func (repo *CategoryRepo) ListWithCounts(ctx context.Context) ([]entity.CategoryWithCount, error) {
	const query = `
SELECT c.id, c.name, c.slug, c.created_at, COUNT(w.id) AS wallpaper_count
FROM categories c
LEFT JOIN wallpapers w ON w.category_id = c.id
GROUP BY c.id, c.name, c.slug, c.created_at
ORDER BY c.name`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListWithCounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]entity.CategoryWithCount, 0, 32)
	for rows.Next() {
		var c entity.CategoryWithCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.WallpaperCount); err != nil {
			return nil, fmt.Errorf("ListWithCounts: Scan: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (repo *CategoryRepo) Get(ctx context.Context, id int64) (*entity.Category, error) {
	const query = `
SELECT id, name, slug, created_at
FROM categories
WHERE id = $1
LIMIT 1`
	var c entity.Category
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &c, nil
}

func (repo *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	const query = `
SELECT id, name, slug, created_at
FROM categories
WHERE slug = $1
LIMIT 1`
	var c entity.Category
	err := repo.db.QueryRowContext(ctx, query, slug).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return &c, nil
}

func (repo *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	const query = `
INSERT INTO categories (name, slug, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CategoryRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM categories WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: no rows affected")
	}
	return nil
}
