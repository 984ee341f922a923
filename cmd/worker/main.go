package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"wallfeed/internal/config"
	hhttp "wallfeed/internal/handler/http/respond"
	pgRepo "wallfeed/internal/infra/adapter/persistence/postgres"
	sqliteRepo "wallfeed/internal/infra/adapter/persistence/sqlite"
	"wallfeed/internal/infra/db"
	workerPkg "wallfeed/internal/infra/worker"
	"wallfeed/internal/observability/metrics"
	"wallfeed/internal/repository"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM wallpapers LIMIT 1"

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 60 * time.Second

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if _, err := db.Exec(probe); err != nil {
			logger.Info("waiting for migrations", slog.Int("attempt", attempt))
			return err
		}
		return nil
	}, bo)
	if err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
}

// repos bundles the repositories the maintenance jobs operate on.
type repos struct {
	wallpapers repository.WallpaperRepository
	categories repository.CategoryRepository
	events     repository.DownloadEventRepository
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Load the download policy that carries the job schedules. Unlike the
	// env config this is fail-closed: a broken policy file means the
	// operator's intent is unknown.
	policy, err := config.LoadDownloadPolicy(workerConfig.PolicyPath)
	if err != nil {
		logger.Error("failed to load download policy", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker configuration loaded",
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Duration("gauge_interval", workerConfig.GaugeInterval),
		slog.String("trending_schedule", policy.Trending.RefreshSchedule),
		slog.String("purge_schedule", policy.Retention.PurgeSchedule),
		slog.Int("retention_days", policy.Retention.EventsDays),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	r := newRepos(database)

	startCronWorker(logger, r, workerConfig, policy, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// newRepos wires the repository implementations matching the active driver.
func newRepos(database *sql.DB) repos {
	if db.Driver() == "sqlite" {
		return repos{
			wallpapers: sqliteRepo.NewWallpaperRepo(database),
			categories: sqliteRepo.NewCategoryRepo(database),
			events:     sqliteRepo.NewDownloadEventRepo(database),
		}
	}
	return repos{
		wallpapers: pgRepo.NewWallpaperRepo(database),
		categories: pgRepo.NewCategoryRepo(database),
		events:     pgRepo.NewDownloadEventRepo(database),
	}
}

// startCronWorker starts the cron scheduler with the trending refresh and
// retention purge jobs, plus a ticker that keeps the catalog gauges current.
func startCronWorker(logger *slog.Logger, r repos, cfg *workerPkg.WorkerConfig, policy *config.DownloadPolicy, wm *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(policy.Trending.RefreshSchedule, func() {
		runTrendingRefresh(logger, r.wallpapers, cfg, policy, wm)
	})
	if err != nil {
		logger.Error("failed to add trending refresh job", slog.Any("error", err))
		os.Exit(1)
	}

	_, err = c.AddFunc(policy.Retention.PurgeSchedule, func() {
		runRetentionPurge(logger, r.events, cfg, policy, wm)
	})
	if err != nil {
		logger.Error("failed to add retention purge job", slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()

	// Gauges run on a plain ticker rather than cron; the interval is short
	// and does not need calendar semantics.
	go func() {
		runGaugeRefresh(logger, r, cfg, wm)
		ticker := time.NewTicker(cfg.GaugeInterval)
		defer ticker.Stop()
		for range ticker.C {
			runGaugeRefresh(logger, r, cfg, wm)
		}
	}()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started",
		slog.String("trending_schedule", policy.Trending.RefreshSchedule),
		slog.String("purge_schedule", policy.Retention.PurgeSchedule),
		slog.String("timezone", cfg.Timezone))
	select {}
}

// runTrendingRefresh recomputes the decayed trending score of every wallpaper.
func runTrendingRefresh(logger *slog.Logger, wallpapers repository.WallpaperRepository, cfg *workerPkg.WorkerConfig, policy *config.DownloadPolicy, wm *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("trending refresh started", slog.Float64("half_life_days", policy.Trending.HalfLifeDays))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	if err := wallpapers.RefreshTrendingScores(ctx, policy.Trending.HalfLifeDays); err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("trending refresh failed", slog.Any("error", hhttp.SanitizeError(err)))
		wm.RecordJobRun(workerPkg.JobTrendingRefresh, "failure")
		wm.RecordJobDuration(workerPkg.JobTrendingRefresh, time.Since(startTime).Seconds())
		return
	}

	elapsed := time.Since(startTime)
	wm.RecordJobRun(workerPkg.JobTrendingRefresh, "success")
	wm.RecordJobDuration(workerPkg.JobTrendingRefresh, elapsed.Seconds())
	wm.RecordLastSuccess(workerPkg.JobTrendingRefresh)
	metrics.RecordTrendingRefresh(elapsed)

	logger.Info("trending refresh completed", slog.Duration("duration", elapsed))
}

// runRetentionPurge removes download events older than the retention window.
func runRetentionPurge(logger *slog.Logger, events repository.DownloadEventRepository, cfg *workerPkg.WorkerConfig, policy *config.DownloadPolicy, wm *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	cutoff := startTime.Add(-policy.EventRetention())
	logger.Info("retention purge started", slog.Time("cutoff", cutoff))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	purged, err := events.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("retention purge failed", slog.Any("error", hhttp.SanitizeError(err)))
		wm.RecordJobRun(workerPkg.JobRetentionPurge, "failure")
		wm.RecordJobDuration(workerPkg.JobRetentionPurge, time.Since(startTime).Seconds())
		return
	}

	elapsed := time.Since(startTime)
	wm.RecordJobRun(workerPkg.JobRetentionPurge, "success")
	wm.RecordJobDuration(workerPkg.JobRetentionPurge, elapsed.Seconds())
	wm.RecordLastSuccess(workerPkg.JobRetentionPurge)
	wm.RecordEventsPurged(purged)

	logger.Info("retention purge completed",
		slog.Int64("events_purged", purged),
		slog.Duration("duration", elapsed))
}

// runGaugeRefresh updates the catalog size gauges. Failures are logged and
// the stale gauge value is left in place until the next tick.
func runGaugeRefresh(logger *slog.Logger, r repos, cfg *workerPkg.WorkerConfig, wm *workerPkg.WorkerMetrics) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	failed := false

	if total, err := r.wallpapers.CountAll(ctx); err != nil {
		logger.Warn("wallpaper count failed", slog.Any("error", hhttp.SanitizeError(err)))
		failed = true
	} else {
		metrics.UpdateWallpapersTotal(total)
	}

	if cats, err := r.categories.List(ctx); err != nil {
		logger.Warn("category count failed", slog.Any("error", hhttp.SanitizeError(err)))
		failed = true
	} else {
		metrics.UpdateCategoriesTotal(int64(len(cats)))
	}

	if recent, err := r.events.CountSince(ctx, startTime.Add(-24*time.Hour)); err != nil {
		logger.Warn("download count failed", slog.Any("error", hhttp.SanitizeError(err)))
		failed = true
	} else {
		metrics.UpdateDownloadsLast24h(recent)
	}

	status := "success"
	if failed {
		status = "failure"
	}
	wm.RecordJobRun(workerPkg.JobGaugeRefresh, status)
	wm.RecordJobDuration(workerPkg.JobGaugeRefresh, time.Since(startTime).Seconds())
	if !failed {
		wm.RecordLastSuccess(workerPkg.JobGaugeRefresh)
	}
}
