package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"wallfeed/internal/domain/entity"
	pg "wallfeed/internal/infra/adapter/persistence/postgres"
)

func TestDownloadEventRepo_Record(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO download_events")).
		WithArgs(int64(7), "client-a", false, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	repo := pg.NewDownloadEventRepo(db)
	event := &entity.DownloadEvent{WallpaperID: 7, ClientKey: "client-a", CreatedAt: now}
	if err := repo.Record(context.Background(), event); err != nil {
		t.Fatalf("Record err=%v", err)
	}
	if event.ID != 1 {
		t.Fatalf("ID=%d, want 1", event.ID)
	}
}

func TestDownloadEventRepo_CountSince(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	since := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(99)))

	repo := pg.NewDownloadEventRepo(db)
	got, err := repo.CountSince(context.Background(), since)
	if err != nil || got != 99 {
		t.Fatalf("CountSince got=%d err=%v", got, err)
	}
}

func TestDownloadEventRepo_PurgeOlderThan(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cutoff := time.Now().AddDate(0, 0, -90)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM download_events")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 17))

	repo := pg.NewDownloadEventRepo(db)
	got, err := repo.PurgeOlderThan(context.Background(), cutoff)
	if err != nil || got != 17 {
		t.Fatalf("PurgeOlderThan got=%d err=%v", got, err)
	}
}
