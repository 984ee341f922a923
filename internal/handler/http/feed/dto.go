// Package feed provides the HTTP handler for the wallpaper feed endpoint.
// The feed is the single entry point for browsing: filtering, sorting and
// pagination are all expressed in one request.
package feed

import (
	"time"

	"wallfeed/internal/domain/entity"
)

// Request is the JSON body of a feed query. All fields are optional;
// the zero value returns the first page of the newest wallpapers.
type Request struct {
	Search      string `json:"search" example:"aurora night"`
	Category    string `json:"category" example:"nature"`
	PremiumOnly bool   `json:"is_premium" example:"false"`
	VideoOnly   bool   `json:"video_only" example:"false"`
	Sort        string `json:"sort" example:"trending" enums:"newest,popular,trending,random"`
	Page        int    `json:"page" example:"1"`
	Limit       int    `json:"limit" example:"24"`
}

// DTO represents the JSON structure of one feed item.
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
}

func fromEntity(item entity.WallpaperWithCategory) DTO {
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
	}
}
