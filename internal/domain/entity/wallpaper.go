// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Wallpaper and Category, along with
// their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	// maxTitleLength bounds wallpaper titles to keep listings and indexes sane.
	maxTitleLength = 200

	// maxTags bounds the number of tags per wallpaper.
	maxTags = 20

	// maxTagLength bounds a single tag.
	maxTagLength = 50
)

// Wallpaper represents a single wallpaper in the catalog.
// It carries the display metadata, media URLs, and usage counters.
// VideoURL is empty for still images and set for live wallpapers.
type Wallpaper struct {
	ID          int64
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
	Downloads   int64
	Views       int64
	PublishedAt time.Time
	CreatedAt   time.Time
}

// WallpaperWithCategory pairs a wallpaper with its resolved category name
// for feed and detail responses.
type WallpaperWithCategory struct {
	Wallpaper
	CategoryName string
	CategorySlug string
}

// IsVideo reports whether the wallpaper is a live (video) wallpaper.
func (w *Wallpaper) IsVideo() bool {
	return w.VideoURL != ""
}

// Validate checks the wallpaper fields before persistence.
// Title, slug and image URL are required. Media URLs must be absolute
// http(s) URLs and must not point into private networks.
func (w *Wallpaper) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(w.Title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}

	if err := ValidateSlug(w.Slug); err != nil {
		return err
	}

	if err := ValidateMediaURL(w.ImageURL); err != nil {
		return err
	}
	// サムネイルと動画はオプション
	if w.ThumbURL != "" {
		if err := ValidateMediaURL(w.ThumbURL); err != nil {
			return err
		}
	}
	if w.VideoURL != "" {
		if err := ValidateMediaURL(w.VideoURL); err != nil {
			return err
		}
	}

	if w.Width <= 0 || w.Height <= 0 {
		return &ValidationError{Field: "dimensions", Message: "width and height must be positive"}
	}

	if len(w.Tags) > maxTags {
		return &ValidationError{
			Field:   "tags",
			Message: fmt.Sprintf("at most %d tags are allowed", maxTags),
		}
	}
	for _, tag := range w.Tags {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{Field: "tags", Message: "empty tags are not allowed"}
		}
		if len(tag) > maxTagLength {
			return &ValidationError{
				Field:   "tags",
				Message: fmt.Sprintf("tag must not exceed %d characters", maxTagLength),
			}
		}
	}

	return nil
}
