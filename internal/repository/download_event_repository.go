package repository

import (
	"context"
	"time"

	"wallfeed/internal/domain/entity"
)

type DownloadEventRepository interface {
	Record(ctx context.Context, event *entity.DownloadEvent) error
	// CountSince returns the number of downloads recorded at or after the
	// given time. Used for metric gauges and stats.
	CountSince(ctx context.Context, since time.Time) (int64, error)
	// PurgeOlderThan deletes events created before the cutoff and returns the
	// number of rows removed. Called by the worker's retention job.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
