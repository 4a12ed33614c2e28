package repository

import (
	"context"
	"fmt"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgGameRepository implements GameRepository using pgx.
type PgGameRepository struct{}

// NewPgGameRepository creates a new PgGameRepository.
func NewPgGameRepository() *PgGameRepository {
	return &PgGameRepository{}
}

// DeleteByDate removes all games for the given date. The odds foreign key
// cascades, so the day's odds go with them.
func (r *PgGameRepository) DeleteByDate(ctx context.Context, db DBTX, date string) (int64, error) {
	tag, err := db.Exec(ctx, `DELETE FROM games WHERE date = $1`, date)
	if err != nil {
		return 0, fmt.Errorf("delete games for %s: %w", date, err)
	}
	return tag.RowsAffected(), nil
}

// Insert creates a game row and returns its generated id.
func (r *PgGameRepository) Insert(ctx context.Context, db DBTX, game *domain.Game) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO games (event_id, date, time, sport, league, match, results_url, is_available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		game.EventID, game.Date, game.Time, game.Sport, game.League, game.Match,
		game.ResultsURL, game.IsAvailable,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert game %s: %w", game.Match, err)
	}
	return id, nil
}

// InsertOddsBatch bulk-inserts odds rows with a single batched round trip.
func (r *PgGameRepository) InsertOddsBatch(ctx context.Context, db DBTX, odds []domain.Odd) error {
	if len(odds) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, o := range odds {
		batch.Queue(
			`INSERT INTO odds (game_id, event_id, market, option, odd)
			 VALUES ($1, $2, $3, $4, $5)`,
			o.GameID, o.EventID, o.Market, o.Option, o.Odd,
		)
	}

	results := db.SendBatch(ctx, batch)
	defer results.Close()

	for range odds {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert odds batch: %w", err)
		}
	}
	return nil
}
