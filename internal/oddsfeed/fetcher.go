// Package oddsfeed retrieves the day's games and their full odds catalog
// from the hosted data API.
package oddsfeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
)

// OddsSource is the subset of the data API the fetcher needs.
type OddsSource interface {
	ListGames(ctx context.Context, date string) ([]domain.Game, error)
	ListOddsRange(ctx context.Context, from, limit int) ([]domain.Odd, error)
}

// Catalog is the result of one fetch: the day's still-open games in start
// order plus every odd indexed by game id. Partial is set when odds paging
// stopped early on an error; the index then holds whatever pages arrived.
type Catalog struct {
	Games   []domain.Game
	OddsFor map[uuid.UUID][]domain.Odd
	Partial bool
}

// Fetcher loads the daily catalog.
type Fetcher struct {
	source   OddsSource
	pageSize int
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher paging at the backend's row cap.
func NewFetcher(source OddsSource, logger *slog.Logger) *Fetcher {
	return &Fetcher{source: source, pageSize: 1000, logger: logger}
}

// FetchToday returns the catalog for the given instant's date. Games that
// have already kicked off are dropped. Odds pages are requested one at a
// time; paging continues while a page comes back full and stops on the first
// short or empty page. A page error keeps the rows accumulated so far rather
// than failing the whole fetch: partial odds beat no odds.
func (f *Fetcher) FetchToday(ctx context.Context, now time.Time) (*Catalog, error) {
	date := now.Format("2006-01-02")

	games, err := f.source.ListGames(ctx, date)
	if err != nil {
		return nil, domain.ErrUpstream("fetch games", err)
	}

	open := games[:0:0]
	for _, g := range games {
		if !g.Started(now) {
			open = append(open, g)
		}
	}

	catalog := &Catalog{Games: open, OddsFor: map[uuid.UUID][]domain.Odd{}}
	if len(open) == 0 {
		return catalog, nil
	}

	gameSet := make(map[uuid.UUID]bool, len(open))
	for _, g := range open {
		gameSet[g.ID] = true
	}

	var all []domain.Odd
	for from := 0; ; from += f.pageSize {
		page, err := f.source.ListOddsRange(ctx, from, f.pageSize)
		if err != nil {
			f.logger.Warn("odds page fetch failed, keeping partial catalog",
				"offset", from, "rows_so_far", len(all), "error", err)
			catalog.Partial = true
			break
		}
		all = append(all, page...)
		if len(page) < f.pageSize {
			break
		}
	}

	dropped := 0
	for _, o := range all {
		if !gameSet[o.GameID] {
			dropped++
			continue
		}
		catalog.OddsFor[o.GameID] = append(catalog.OddsFor[o.GameID], o)
	}

	f.logger.Info("odds catalog fetched",
		"date", date,
		"games", len(open),
		"odds", len(all)-dropped,
		"orphan_odds", dropped,
		"partial", catalog.Partial,
	)
	return catalog, nil
}
