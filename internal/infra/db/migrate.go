package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/categories.sql
var seedCategoriesSQL string

// MigrateUp creates the wallfeed schema (PostgreSQL) and loads the category
// seed. All statements are idempotent so the API and worker can both run it
// at startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS wallpapers (
    id             SERIAL PRIMARY KEY,
    category_id    INTEGER NOT NULL REFERENCES categories(id),
    title          TEXT NOT NULL,
    slug           TEXT NOT NULL UNIQUE,
    image_url      TEXT NOT NULL,
    thumb_url      TEXT NOT NULL DEFAULT '',
    video_url      TEXT NOT NULL DEFAULT '',
    tags           TEXT NOT NULL DEFAULT '',
    is_premium     BOOLEAN NOT NULL DEFAULT FALSE,
    width          INTEGER NOT NULL,
    height         INTEGER NOT NULL,
    downloads      BIGINT NOT NULL DEFAULT 0,
    views          BIGINT NOT NULL DEFAULT 0,
    trending_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    published_at   TIMESTAMPTZ NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS download_events (
    id           SERIAL PRIMARY KEY,
    wallpaper_id INTEGER NOT NULL REFERENCES wallpapers(id) ON DELETE CASCADE,
    client_key   TEXT NOT NULL,
    premium      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// パフォーマンス最適化: インデックス追加
	indexes := []string{
		// 既定の ORDER BY published_at DESC で使用
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_published_at ON wallpapers(published_at DESC, id DESC)`,
		// 人気順・トレンド順用
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_downloads ON wallpapers(downloads DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_trending ON wallpapers(trending_score DESC, id DESC)`,
		// カテゴリ絞り込み用
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_category_id ON wallpapers(category_id)`,
		// ダウンロード集計・リテンション用
		`CREATE INDEX IF NOT EXISTS idx_download_events_created_at ON download_events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_download_events_wallpaper_id ON download_events(wallpaper_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm拡張を有効化(ILIKE検索高速化用)
	// エラーを無視(既に存在する場合やスーパーユーザー権限がない場合)
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)

	// ILIKE検索用GINインデックス追加(タイトル・タグ検索高速化)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_title_gin ON wallpapers USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_tags_gin ON wallpapers USING gin(tags gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// pg_trgm拡張がない場合はエラーになるため無視
		_, _ = db.Exec(idx)
	}

	// シードデータの投入(重複は自動的にスキップ)
	if _, err := db.Exec(seedCategoriesSQL); err != nil {
		return err
	}

	return nil
}

// MigrateUpSQLite creates the same schema for the SQLite development
// database. Type affinities differ; the repositories only rely on the
// column names and ordering.
func MigrateUpSQLite(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE TABLE IF NOT EXISTS wallpapers (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id    INTEGER NOT NULL REFERENCES categories(id),
    title          TEXT NOT NULL,
    slug           TEXT NOT NULL UNIQUE,
    image_url      TEXT NOT NULL,
    thumb_url      TEXT NOT NULL DEFAULT '',
    video_url      TEXT NOT NULL DEFAULT '',
    tags           TEXT NOT NULL DEFAULT '',
    is_premium     BOOLEAN NOT NULL DEFAULT 0,
    width          INTEGER NOT NULL,
    height         INTEGER NOT NULL,
    downloads      INTEGER NOT NULL DEFAULT 0,
    views          INTEGER NOT NULL DEFAULT 0,
    trending_score REAL NOT NULL DEFAULT 0,
    published_at   TIMESTAMP NOT NULL,
    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE TABLE IF NOT EXISTS download_events (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    wallpaper_id INTEGER NOT NULL REFERENCES wallpapers(id) ON DELETE CASCADE,
    client_key   TEXT NOT NULL,
    premium      BOOLEAN NOT NULL DEFAULT 0,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_published_at ON wallpapers(published_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_wallpapers_category_id ON wallpapers(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_download_events_created_at ON download_events(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := db.Exec(seedCategoriesSQL); err != nil {
		return err
	}
	return nil
}
