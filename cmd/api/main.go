package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"wallfeed/internal/common/pagination"
	"wallfeed/internal/config"
	pgRepo "wallfeed/internal/infra/adapter/persistence/postgres"
	sqliteRepo "wallfeed/internal/infra/adapter/persistence/sqlite"
	"wallfeed/internal/infra/db"
	"wallfeed/internal/observability/logging"
	"wallfeed/internal/observability/metrics"
	"wallfeed/internal/observability/slo"
	"wallfeed/internal/observability/tracing"
	"wallfeed/internal/repository"
	pkgconfig "wallfeed/pkg/config"
	"wallfeed/pkg/ratelimit"

	catUC "wallfeed/internal/usecase/category"
	dlUC "wallfeed/internal/usecase/download"
	vitalsUC "wallfeed/internal/usecase/vitals"
	wpUC "wallfeed/internal/usecase/wallpaper"

	hhttp "wallfeed/internal/handler/http"
	hcategory "wallfeed/internal/handler/http/category"
	hdownload "wallfeed/internal/handler/http/download"
	hfeed "wallfeed/internal/handler/http/feed"
	"wallfeed/internal/handler/http/middleware"
	"wallfeed/internal/handler/http/requestid"
	hvitals "wallfeed/internal/handler/http/vitals"
	hwallpaper "wallfeed/internal/handler/http/wallpaper"

	_ "wallfeed/docs" // swagger docs
)

// @title           Wallfeed API
// @version         1.0
// @description     壁紙カタログの REST API
// @description     フィード検索、カテゴリ一覧、ダウンロード登録、Web Vitals 収集を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	policyPath := pkgconfig.GetEnvString("DOWNLOAD_POLICY_PATH", "")
	policy, err := config.LoadDownloadPolicy(policyPath)
	if err != nil {
		logger.Error("failed to load download policy", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	shutdownTracer := initTracer(logger)
	defer shutdownTracer()

	version := getVersion()
	components := setupServer(logger, database, serverCfg, policy, version)

	runServer(logger, serverCfg, components, version)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.Migrate(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initTracer installs the OpenTelemetry tracer provider and W3C propagator.
// No span exporter is configured here; trace IDs still flow into logs and
// the X-Trace-Id response header, and an exporter can be attached per
// deployment. Returns a shutdown function for graceful termination.
func initTracer(logger *slog.Logger) func() {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "wallfeed"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler         http.Handler
	IPLimiter       *ratelimit.KeyedLimiter
	DownloadLimiter *ratelimit.KeyedLimiter
	SLOTracker      *slo.Tracker
}

// setupServer wires repositories, services, routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, serverCfg *config.ServerConfig, policy *config.DownloadPolicy, version string) *ServerComponents {
	wallpapers, categories, events := newRepos(database)

	limiterMetrics := ratelimit.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	// Download allowance limiter, keyed by client IP, from the policy file
	downloadLimiter := ratelimit.New(
		pkgconfig.DownloadLimiterConfig(
			policy.Downloads.PerHour,
			policy.Downloads.Burst,
			policy.Downloads.MaxKeys,
			policy.Downloads.IdleTTL,
		),
		ratelimit.WithMetrics(limiterMetrics),
	)

	wallpaperSvc := &wpUC.Service{Repo: wallpapers}
	categorySvc := &catUC.Service{Repo: categories}
	downloadSvc := &dlUC.Service{
		Wallpapers: wallpapers,
		Events:     events,
		Limiter:    downloadLimiter,
	}
	vitalsSvc := &vitalsUC.Service{
		Observer: metrics.VitalsRecorder{},
		Logger:   logger,
	}

	// Load trusted proxy configuration for IP extraction
	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("client IP extraction: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("client IP extraction: using RemoteAddr (proxy headers ignored)")
	}

	// Global IP rate limiter (separate from the download allowance)
	var ipLimiter *ratelimit.KeyedLimiter
	var ipRateLimiter *middleware.RateLimiter
	if pkgconfig.RateLimitEnabled() {
		ipLimiter = ratelimit.New(pkgconfig.LoadIPLimiterConfig(), ratelimit.WithMetrics(limiterMetrics))
		ipRateLimiter = middleware.NewRateLimiter(ipLimiter, ipExtractor, true)
		logger.Info("IP rate limiting enabled")
	} else {
		logger.Warn("IP rate limiting is DISABLED - not recommended for production")
	}

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	hfeed.Register(mux, wallpaperSvc, paginationCfg, logger)
	hwallpaper.Register(mux, wallpaperSvc)
	hcategory.Register(mux, categorySvc)
	hdownload.Register(mux, downloadSvc, ipExtractor, logger)
	hvitals.Register(mux, vitalsSvc)

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:      database,
		Version: version,
		RateLimiters: map[string]hhttp.KeyCounter{
			"download": downloadLimiter,
		},
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	sloTracker := slo.NewTracker(5 * time.Minute)
	handler := applyMiddleware(logger, serverCfg, mux, ipRateLimiter, sloTracker)

	return &ServerComponents{
		Handler:         handler,
		IPLimiter:       ipLimiter,
		DownloadLimiter: downloadLimiter,
		SLOTracker:      sloTracker,
	}
}

// newRepos wires the repository implementations matching the active driver.
func newRepos(database *sql.DB) (repository.WallpaperRepository, repository.CategoryRepository, repository.DownloadEventRepository) {
	if db.Driver() == "sqlite" {
		return sqliteRepo.NewWallpaperRepo(database),
			sqliteRepo.NewCategoryRepo(database),
			sqliteRepo.NewDownloadEventRepo(database)
	}
	return pgRepo.NewWallpaperRepo(database),
		pgRepo.NewCategoryRepo(database),
		pgRepo.NewDownloadEventRepo(database)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Request ID → Tracing → Recovery →
// Logging → Body Limit → Timeout → Input Validation → IP Rate Limit →
// Metrics → SLO collection.
func applyMiddleware(logger *slog.Logger, serverCfg *config.ServerConfig, handler http.Handler, ipRateLimiter *middleware.RateLimiter, sloTracker *slo.Tracker) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = sloTracker.Collect(chain)
	chain = hhttp.MetricsMiddleware(chain)

	if ipRateLimiter != nil {
		chain = ipRateLimiter.Middleware(chain)
	}

	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(serverCfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server, the background maintenance goroutines
// and handles graceful shutdown.
func runServer(logger *slog.Logger, serverCfg *config.ServerConfig, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sweep idle limiter keys so one-off clients do not pin memory
	cleanupInterval := pkgconfig.CleanupInterval()
	if components.IPLimiter != nil {
		go hhttp.StartRateLimitCleanup(ctx, components.IPLimiter, cleanupInterval, "ip")
	}
	go hhttp.StartRateLimitCleanup(ctx, components.DownloadLimiter, cleanupInterval, "download")

	// Publish SLO gauges every minute from the rolling window
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				components.SLOTracker.Publish()
			}
		}
	}()

	srv := &http.Server{
		Addr:              serverCfg.Addr(),
		Handler:           components.Handler,
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", serverCfg.Addr()),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Cancel background goroutines (cleanup, SLO ticker)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
