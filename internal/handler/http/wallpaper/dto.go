// Package wallpaper provides HTTP handlers for wallpaper detail endpoints.
package wallpaper

import (
	"time"

	"wallfeed/internal/domain/entity"
)

// DTO represents the JSON structure of a wallpaper detail response.
type DTO struct {
	ID           int64     `json:"id" example:"1"`
	Title        string    `json:"title" example:"Aurora Over the Fjord"`
	Slug         string    `json:"slug" example:"aurora-over-the-fjord"`
	Category     string    `json:"category" example:"Nature"`
	CategorySlug string    `json:"categorySlug" example:"nature"`
	ImageURL     string    `json:"imageUrl" example:"https://cdn.example.com/walls/aurora.jpg"`
	ThumbURL     string    `json:"thumbUrl,omitempty" example:"https://cdn.example.com/walls/aurora_thumb.jpg"`
	VideoURL     string    `json:"videoUrl,omitempty" example:""`
	Tags         []string  `json:"tags" example:"aurora,night,sky"`
	IsPremium    bool      `json:"isPremium" example:"false"`
	Width        int       `json:"width" example:"3840"`
	Height       int       `json:"height" example:"2160"`
	Downloads    int64     `json:"downloads" example:"120"`
	Views        int64     `json:"views" example:"950"`
	PublishedAt  time.Time `json:"publishedAt" example:"2025-10-26T10:00:00Z"`
	CreatedAt    time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
}

func fromEntity(item *entity.WallpaperWithCategory) DTO {
	return DTO{
		ID:           item.ID,
		Title:        item.Title,
		Slug:         item.Slug,
		Category:     item.CategoryName,
		CategorySlug: item.CategorySlug,
		ImageURL:     item.ImageURL,
		ThumbURL:     item.ThumbURL,
		VideoURL:     item.VideoURL,
		Tags:         item.Tags,
		IsPremium:    item.IsPremium,
		Width:        item.Width,
		Height:       item.Height,
		Downloads:    item.Downloads,
		Views:        item.Views,
		PublishedAt:  item.PublishedAt,
		CreatedAt:    item.CreatedAt,
	}
}
