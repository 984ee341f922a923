package entity

import (
	"strings"
	"time"
)

// Category groups wallpapers for browsing and filtering.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// CategoryWithCount is a category together with its live wallpaper count,
// as returned by listing queries.
type CategoryWithCount struct {
	Category
	WallpaperCount int64
}

// Validate checks the category fields before persistence.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(c.Name) > 100 {
		return &ValidationError{Field: "name", Message: "name must not exceed 100 characters"}
	}
	return ValidateSlug(c.Slug)
}
