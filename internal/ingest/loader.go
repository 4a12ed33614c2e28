package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/repository"
)

const (
	oddsBatchSize = 100
	maxRetries    = 3
)

// Loader replaces a day's games and odds in the database.
type Loader struct {
	games     repository.GameRepository
	db        repository.DBTX
	logger    *slog.Logger
	retryWait time.Duration
}

// NewLoader creates a Loader.
func NewLoader(games repository.GameRepository, db repository.DBTX, logger *slog.Logger) *Loader {
	return &Loader{games: games, db: db, logger: logger, retryWait: 2 * time.Second}
}

// Summary reports what one loader run did.
type Summary struct {
	GamesDeleted  int64
	GamesInserted int
	GamesSkipped  int
	OddsInserted  int
}

// Run clears today's games and loads the given events. Games without a
// results URL are skipped, since they could never be settled. A failed game
// insert skips that game; a failed odds batch retries with a pause before
// giving up on the batch.
func (l *Loader) Run(ctx context.Context, now time.Time, events []Event, matched []MatchedGame) (*Summary, error) {
	deleted, err := l.games.DeleteByDate(ctx, l.db, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	l.logger.Info("cleared existing games for today", "deleted", deleted)

	summary := &Summary{GamesDeleted: deleted}
	for _, event := range events {
		resultsURL := ResultsURLFor(event.Match, matched)
		if resultsURL == "" {
			summary.GamesSkipped++
			l.logger.Info("skipped game without results url", "sport", event.Sport, "match", event.Match)
			continue
		}

		game := &domain.Game{
			EventID:     event.EventID,
			Date:        event.Date,
			Time:        event.Time,
			Sport:       domain.Sport(event.Sport),
			League:      event.League,
			Match:       event.Match,
			ResultsURL:  &resultsURL,
			IsAvailable: Available(event.Time, now),
		}

		gameID, err := l.games.Insert(ctx, l.db, game)
		if err != nil {
			l.logger.Error("game insert failed", "match", event.Match, "error", err)
			continue
		}
		summary.GamesInserted++

		odds := make([]domain.Odd, 0, len(event.Odds))
		for _, row := range event.Odds {
			odds = append(odds, domain.Odd{
				GameID:  gameID,
				EventID: event.EventID,
				Market:  row.Market,
				Option:  row.Option,
				Odd:     float64(row.Odd),
			})
		}
		summary.OddsInserted += l.insertOdds(ctx, event.Match, odds)

		l.logger.Info("game loaded",
			"sport", event.Sport, "match", event.Match,
			"odds", len(odds), "available", game.IsAvailable)
	}

	l.logger.Info("load complete",
		"games", summary.GamesInserted, "skipped", summary.GamesSkipped,
		"odds", summary.OddsInserted)
	return summary, nil
}

// insertOdds writes odds in batches, retrying each batch before dropping it.
func (l *Loader) insertOdds(ctx context.Context, match string, odds []domain.Odd) int {
	inserted := 0
	for start := 0; start < len(odds); start += oddsBatchSize {
		end := start + oddsBatchSize
		if end > len(odds) {
			end = len(odds)
		}
		batch := odds[start:end]

		var err error
		for attempt := 1; attempt <= maxRetries; attempt++ {
			if err = l.games.InsertOddsBatch(ctx, l.db, batch); err == nil {
				inserted += len(batch)
				break
			}
			if attempt < maxRetries {
				l.logger.Warn("odds batch retry", "match", match, "attempt", attempt, "error", err)
				select {
				case <-time.After(l.retryWait):
				case <-ctx.Done():
					return inserted
				}
			}
		}
		if err != nil {
			l.logger.Error("odds batch dropped", "match", match, "size", len(batch), "error", err)
		}
	}
	return inserted
}
