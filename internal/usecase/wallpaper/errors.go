// Package wallpaper provides use cases for the wallpaper catalog: the
// paginated feed, single-wallpaper lookup, and the admin CRUD operations
// used by the importer and tooling.
package wallpaper

import "errors"

// Sentinel errors for wallpaper use case operations.
var (
	// ErrWallpaperNotFound indicates that the requested wallpaper was not found.
	ErrWallpaperNotFound = errors.New("wallpaper not found")

	// ErrInvalidWallpaperID indicates that the provided wallpaper ID is invalid.
	// Wallpaper IDs must be positive integers.
	ErrInvalidWallpaperID = errors.New("invalid wallpaper ID")

	// ErrInvalidSort indicates that the requested feed sort order is not supported.
	ErrInvalidSort = errors.New("invalid sort order")

	// ErrDuplicateSlug indicates that a wallpaper with the same slug already exists.
	ErrDuplicateSlug = errors.New("wallpaper with this slug already exists")

	// ErrCategoryNotFound indicates that the category referenced by a feed
	// filter or a create/update input does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)
