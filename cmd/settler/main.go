// The settler is the evening pipeline: it loads the scraper's evaluated bet
// results and settles every pending parlay whose games have finished.
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
	"github.com/fourplay/platform/internal/repository"
	"github.com/fourplay/platform/internal/settlement"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	resultsPath := flag.String("results", "", "path to the evaluated bets JSON (required)")
	flag.Parse()

	if err := run(logger, *resultsPath); err != nil {
		logger.Error("settler failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, resultsPath string) error {
	if resultsPath == "" {
		return fmt.Errorf("-results is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	results, err := settlement.LoadBetResults(resultsPath)
	if err != nil {
		return err
	}
	logger.Info("bet results loaded", "count", len(results))

	settler := settlement.NewSettler(repository.NewPgParlayRepository(), pool, logger)
	summary, err := settler.Run(ctx, time.Now(), results)
	if err != nil {
		return err
	}

	logger.Info("pipeline complete",
		"won", summary.Won, "lost", summary.Lost, "still_pending", summary.StillPending)
	return nil
}
