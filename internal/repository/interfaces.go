// Package repository holds the direct-Postgres data access used by the
// batch pipelines. The API server never touches the database itself; it goes
// through the backend's row API instead.
package repository

import (
	"context"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// GameRepository provides write access to games and odds for the loader.
type GameRepository interface {
	// DeleteByDate removes a day's games; odds cascade with them.
	DeleteByDate(ctx context.Context, db DBTX, date string) (int64, error)

	// Insert creates a game row and returns its generated id.
	Insert(ctx context.Context, db DBTX, game *domain.Game) (uuid.UUID, error)

	// InsertOddsBatch bulk-inserts one batch of odds rows.
	InsertOddsBatch(ctx context.Context, db DBTX, odds []domain.Odd) error
}

// ParlayRepository provides access to parlays for the settler.
type ParlayRepository interface {
	// ListPendingWithPicks returns every pending parlay with its picks,
	// each pick joined to its game.
	ListPendingWithPicks(ctx context.Context, db DBTX) ([]domain.ParlayWithPicks, error)

	// SettleParlay writes the final status, stamps evaluated_at, and
	// records each pick's result in one transaction.
	SettleParlay(ctx context.Context, tx pgx.Tx, parlayID uuid.UUID, status domain.ParlayStatus, evaluatedAt time.Time, pickResults map[uuid.UUID]domain.ParlayStatus) error
}
