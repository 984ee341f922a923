package entity

import "time"

// DownloadEvent records a single wallpaper download.
// Events are retention-bound; old rows are purged by the worker.
type DownloadEvent struct {
	ID          int64
	WallpaperID int64
	ClientKey   string
	Premium     bool
	CreatedAt   time.Time
}
