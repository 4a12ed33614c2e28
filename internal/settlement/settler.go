package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settler applies parlay evaluations to the database.
type Settler struct {
	parlays repository.ParlayRepository
	pool    *pgxpool.Pool
	logger  *slog.Logger
}

// NewSettler creates a Settler.
func NewSettler(parlays repository.ParlayRepository, pool *pgxpool.Pool, logger *slog.Logger) *Settler {
	return &Settler{parlays: parlays, pool: pool, logger: logger}
}

// Summary reports what one settlement run did.
type Summary struct {
	Won          int
	Lost         int
	StillPending int
}

// Run evaluates every pending parlay against the results and writes the
// settled ones. Parlays whose games have not all finished stay untouched.
func (s *Settler) Run(ctx context.Context, now time.Time, results []BetResult) (*Summary, error) {
	pending, err := s.parlays.ListPendingWithPicks(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pending parlays loaded", "count", len(pending))

	summary := &Summary{}
	for _, parlay := range pending {
		evaluation := Evaluate(parlay, results)
		if !evaluation.Settled() {
			summary.StillPending++
			continue
		}

		if err := s.settle(ctx, parlay.ID, evaluation, now); err != nil {
			return summary, fmt.Errorf("settle parlay %s: %w", parlay.ID, err)
		}

		if evaluation.Status == domain.ParlayWon {
			summary.Won++
			s.logger.Info("parlay won", "parlay_id", parlay.ID, "total_odds", parlay.TotalOdds)
		} else {
			summary.Lost++
			s.logger.Info("parlay lost", "parlay_id", parlay.ID)
		}
	}

	s.logger.Info("settlement complete",
		"won", summary.Won, "lost", summary.Lost, "still_pending", summary.StillPending)
	return summary, nil
}

func (s *Settler) settle(ctx context.Context, parlayID uuid.UUID, evaluation Evaluation, now time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.parlays.SettleParlay(ctx, tx, parlayID, evaluation.Status, now, evaluation.PickResults); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
