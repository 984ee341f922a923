package download

import "errors"

var (
	// ErrWallpaperNotFound is returned when the requested wallpaper does not exist.
	ErrWallpaperNotFound = errors.New("wallpaper not found")

	// ErrInvalidWallpaperID is returned when the wallpaper ID is not positive.
	ErrInvalidWallpaperID = errors.New("invalid wallpaper ID")

	// ErrMissingClientKey is returned when no client key could be derived
	// from the request.
	ErrMissingClientKey = errors.New("missing client key")
)
