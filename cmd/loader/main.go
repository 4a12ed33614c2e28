// The loader is the morning pipeline: it reads the scraper's odds feed,
// replaces today's games in the database, and loads their odds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fourplay/platform/internal/infra"
	"github.com/fourplay/platform/internal/ingest"
	"github.com/fourplay/platform/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	feedPath := flag.String("feed", "", "path to the scraped odds feed JSON (required)")
	matchedPath := flag.String("matched", "", "path to the matched games JSON (optional)")
	flag.Parse()

	if err := run(logger, *feedPath, *matchedPath); err != nil {
		logger.Error("loader failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, feedPath, matchedPath string) error {
	if feedPath == "" {
		return fmt.Errorf("-feed is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	rows, err := ingest.LoadFeed(feedPath)
	if err != nil {
		return err
	}
	logger.Info("odds feed loaded", "rows", len(rows))

	var matched []ingest.MatchedGame
	if matchedPath != "" {
		if matched, err = ingest.LoadMatchedGames(matchedPath); err != nil {
			return err
		}
		logger.Info("matched games loaded", "count", len(matched))
	}

	now := time.Now()
	events := ingest.GroupToday(rows, now)
	logger.Info("feed grouped", "events", len(events))

	loader := ingest.NewLoader(repository.NewPgGameRepository(), pool, logger)
	summary, err := loader.Run(ctx, now, events, matched)
	if err != nil {
		return err
	}

	logger.Info("pipeline complete",
		"games", summary.GamesInserted,
		"skipped", summary.GamesSkipped,
		"odds", summary.OddsInserted)
	return nil
}
