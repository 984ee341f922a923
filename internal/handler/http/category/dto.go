// Package category provides HTTP handlers for category browsing endpoints.
package category

import "wallfeed/internal/domain/entity"

// DTO represents the JSON structure of a category.
type DTO struct {
	ID             int64  `json:"id" example:"1"`
	Name           string `json:"name" example:"Nature"`
	Slug           string `json:"slug" example:"nature"`
	WallpaperCount int64  `json:"wallpaperCount" example:"128"`
}

// ListResponse wraps the category listing.
type ListResponse struct {
	Data []DTO `json:"data"`
}

func fromEntityWithCount(c entity.CategoryWithCount) DTO {
	return DTO{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		WallpaperCount: c.WallpaperCount,
	}
}
