package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/repository"
)

// DownloadEventRepo implements repository.DownloadEventRepository on SQLite.
type DownloadEventRepo struct{ db *sql.DB }

// NewDownloadEventRepo creates a new SQLite-backed download event repository.
func NewDownloadEventRepo(db *sql.DB) repository.DownloadEventRepository {
	return &DownloadEventRepo{db: db}
}

func (repo *DownloadEventRepo) Record(ctx context.Context, event *entity.DownloadEvent) error {
	const query = `
INSERT INTO download_events (wallpaper_id, client_key, premium, created_at)
VALUES (?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		event.WallpaperID, event.ClientKey, event.Premium, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Record: LastInsertId: %w", err)
	}
	event.ID = id
	return nil
}

func (repo *DownloadEventRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM download_events WHERE created_at >= ?`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountSince: %w", err)
	}
	return count, nil
}

func (repo *DownloadEventRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM download_events WHERE created_at < ?`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("PurgeOlderThan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("PurgeOlderThan: RowsAffected: %w", err)
	}
	return n, nil
}
