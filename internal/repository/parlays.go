package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgParlayRepository implements ParlayRepository using pgx.
type PgParlayRepository struct{}

// NewPgParlayRepository creates a new PgParlayRepository.
func NewPgParlayRepository() *PgParlayRepository {
	return &PgParlayRepository{}
}

// ListPendingWithPicks returns every pending parlay, each with its picks and
// the game behind each pick.
func (r *PgParlayRepository) ListPendingWithPicks(ctx context.Context, db DBTX) ([]domain.ParlayWithPicks, error) {
	rows, err := db.Query(ctx,
		`SELECT p.id, p.user_id, p.status, p.total_odds, p.created_at, p.evaluated_at,
		        pk.id, pk.parlay_id, pk.game_id, pk.event_id, pk.odds_id,
		        pk.market, pk.option, pk.odd, pk.result,
		        g.id, g.event_id, g.date, g.time, g.sport, g.league, g.match,
		        g.results_url, g.is_available, g.created_at
		 FROM parlays p
		 JOIN parlay_picks pk ON pk.parlay_id = p.id
		 JOIN games g ON g.id = pk.game_id
		 WHERE p.status = 'pending'
		 ORDER BY p.created_at, pk.id`)
	if err != nil {
		return nil, fmt.Errorf("list pending parlays: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.ParlayWithPicks
		index = map[uuid.UUID]int{}
	)
	for rows.Next() {
		var (
			parlay domain.Parlay
			pick   domain.ParlayPick
			game   domain.Game
		)
		err := rows.Scan(
			&parlay.ID, &parlay.UserID, &parlay.Status, &parlay.TotalOdds,
			&parlay.CreatedAt, &parlay.EvaluatedAt,
			&pick.ID, &pick.ParlayID, &pick.GameID, &pick.EventID, &pick.OddsID,
			&pick.Market, &pick.Option, &pick.Odd, &pick.Result,
			&game.ID, &game.EventID, &game.Date, &game.Time, &game.Sport,
			&game.League, &game.Match, &game.ResultsURL, &game.IsAvailable, &game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending parlay row: %w", err)
		}

		i, ok := index[parlay.ID]
		if !ok {
			i = len(out)
			index[parlay.ID] = i
			out = append(out, domain.ParlayWithPicks{Parlay: parlay})
		}
		out[i].Picks = append(out[i].Picks, domain.PickWithGame{ParlayPick: pick, Game: game})
	}
	return out, rows.Err()
}

// SettleParlay writes the parlay's final status and each pick's result in
// one transaction.
func (r *PgParlayRepository) SettleParlay(ctx context.Context, tx pgx.Tx, parlayID uuid.UUID, status domain.ParlayStatus, evaluatedAt time.Time, pickResults map[uuid.UUID]domain.ParlayStatus) error {
	_, err := tx.Exec(ctx,
		`UPDATE parlays SET status = $2, evaluated_at = $3 WHERE id = $1`,
		parlayID, status, evaluatedAt)
	if err != nil {
		return fmt.Errorf("update parlay %s: %w", parlayID, err)
	}

	for pickID, result := range pickResults {
		_, err := tx.Exec(ctx,
			`UPDATE parlay_picks SET result = $2 WHERE id = $1`,
			pickID, result)
		if err != nil {
			return fmt.Errorf("update pick %s: %w", pickID, err)
		}
	}
	return nil
}
