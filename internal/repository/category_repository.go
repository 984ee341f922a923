package repository

import (
	"context"

	"wallfeed/internal/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	// ListWithCounts retrieves all categories with their live wallpaper counts,
	// ordered by name.
	ListWithCounts(ctx context.Context) ([]entity.CategoryWithCount, error)
	Get(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}
