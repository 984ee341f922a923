// Command importer runs a one-shot wallpaper manifest import.
//
// Usage:
//
//	importer -source https://assets.example.com/manifest.json
//	importer -source ./manifest.json -dry-run -output json
//
// The manifest source may be an http(s) URL or a local file path. Exit code
// is 0 when the run completes, even if individual entries were skipped;
// manifest-level failures exit with code 1.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wallfeed/internal/infra/adapter/persistence/postgres"
	"wallfeed/internal/infra/adapter/persistence/sqlite"
	"wallfeed/internal/infra/db"
	"wallfeed/internal/infra/importer"
	"wallfeed/internal/repository"
)

func main() {
	_ = godotenv.Load()

	var (
		source      = flag.String("source", "", "manifest URL or file path (required)")
		dryRun      = flag.Bool("dry-run", false, "report what would change without writing")
		parallelism = flag.Int("parallelism", 4, "concurrent media probes")
		noProbe     = flag.Bool("no-probe", false, "skip media URL probes")
		timeout     = flag.Duration("timeout", 30*time.Second, "per-request timeout")
		output      = flag.String("output", "text", "output format: text or json")
	)
	flag.Parse()

	logger := initLogger()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "error: -source is required")
		flag.Usage()
		os.Exit(1)
	}
	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: invalid -output %q (want text or json)\n", *output)
		os.Exit(1)
	}

	cfg := importer.DefaultConfig()
	cfg.Source = *source
	cfg.DryRun = *dryRun
	cfg.Parallelism = *parallelism
	cfg.ProbeMedia = !*noProbe
	cfg.Timeout = *timeout

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	var wallpapers repository.WallpaperRepository
	var categories repository.CategoryRepository
	if db.Driver() == "sqlite" {
		wallpapers = sqlite.NewWallpaperRepo(database)
		categories = sqlite.NewCategoryRepo(database)
	} else {
		wallpapers = postgres.NewWallpaperRepo(database)
		categories = postgres.NewCategoryRepo(database)
	}

	imp := importer.New(wallpapers, categories, cfg, logger)
	stats, err := imp.Run(context.Background())
	if err != nil {
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}

	printStats(stats, *output, *dryRun)
}

// initLogger initializes a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func printStats(stats *importer.Stats, format string, dryRun bool) {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(stats)
		return
	}

	if dryRun {
		fmt.Println("dry run: no changes were written")
	}
	fmt.Printf("total:      %d\n", stats.Total)
	fmt.Printf("created:    %d\n", stats.Created)
	fmt.Printf("updated:    %d\n", stats.Updated)
	fmt.Printf("skipped:    %d\n", stats.Skipped)
	fmt.Printf("invalid:    %d\n", stats.Invalid)
	fmt.Printf("duplicated: %d\n", stats.Duplicated)
	fmt.Printf("duration:   %s\n", stats.Duration.Round(time.Millisecond))
}
