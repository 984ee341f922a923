// Package category provides use cases for browsing and managing wallpaper
// categories.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateSlug indicates that a category with the same slug already exists.
	ErrDuplicateSlug = errors.New("category with this slug already exists")
)

// CreateInput represents the input parameters for creating a new category.
type CreateInput struct {
	Name string
	Slug string
}

// Service provides category use cases.
type Service struct {
	Repo repository.CategoryRepository
}

// ListWithCounts returns all categories with their live wallpaper counts,
// ordered by name. Empty categories are included so the browse UI can show
// the full taxonomy.
func (s *Service) ListWithCounts(ctx context.Context) ([]entity.CategoryWithCount, error) {
	categories, err := s.Repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves a category by its slug.
// Returns ErrCategoryNotFound if no category has the slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	if err := entity.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("validate slug: %w", err)
	}

	c, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Create creates a new category after validating the input.
// Returns ErrDuplicateSlug if the slug is already taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Category, error) {
	c := &entity.Category{
		Name:      in.Name,
		Slug:      in.Slug,
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate category: %w", err)
	}

	existing, err := s.Repo.GetBySlug(ctx, c.Slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateSlug
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Delete removes a category by its ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete category: %w", entity.ErrInvalidInput)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
