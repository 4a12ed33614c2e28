package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/markets"
	"github.com/fourplay/platform/internal/oddsfeed"
	"github.com/google/uuid"
)

// catalogTTL bounds how long a fetched odds catalog is served before the
// backend is asked again.
const catalogTTL = 30 * time.Second

// CatalogService serves the browsable daily game catalog and per-game market
// views. It keeps the last fetched catalog for a short window, standing in
// for the browsing session that held it before.
type CatalogService struct {
	fetcher *oddsfeed.Fetcher
	logger  *slog.Logger

	mu        sync.Mutex
	cached    *oddsfeed.Catalog
	fetchedAt time.Time
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(fetcher *oddsfeed.Fetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{fetcher: fetcher, logger: logger}
}

// catalog returns the cached odds catalog, refetching when stale. Partial
// catalogs are not cached so the next request retries the odds pages.
func (s *CatalogService) catalog(ctx context.Context, now time.Time) (*oddsfeed.Catalog, error) {
	s.mu.Lock()
	if s.cached != nil && now.Sub(s.fetchedAt) < catalogTTL {
		c := s.cached
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	c, err := s.fetcher.FetchToday(ctx, now)
	if err != nil {
		return nil, err
	}

	if !c.Partial {
		s.mu.Lock()
		s.cached, s.fetchedAt = c, now
		s.mu.Unlock()
	}
	return c, nil
}

// TodayResult is the catalog response: open games with their odds, plus a
// flag marking the odds index as incomplete after a mid-paging failure.
type TodayResult struct {
	Games   []domain.GameWithOdds `json:"games"`
	Partial bool                  `json:"partial"`
}

// Today returns the day's open games, optionally filtered by sport, each
// with its full odds list.
func (s *CatalogService) Today(ctx context.Context, now time.Time, sport domain.Sport) (*TodayResult, error) {
	catalog, err := s.catalog(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &TodayResult{Games: []domain.GameWithOdds{}, Partial: catalog.Partial}
	for _, g := range catalog.Games {
		if sport != "" && g.Sport != sport {
			continue
		}
		if g.Started(now) {
			continue
		}
		result.Games = append(result.Games, domain.GameWithOdds{
			Game: g,
			Odds: catalog.OddsFor[g.ID],
		})
	}
	return result, nil
}

// GameMarkets recomputes the tabbed market view for one game. pinned is the
// session's pin set for that game; the projection is pure, so calling it
// again after any odds or pin change yields the fresh view.
func (s *CatalogService) GameMarkets(ctx context.Context, now time.Time, gameID uuid.UUID, pinned map[string]bool) (domain.Game, map[markets.Category][]markets.Market, error) {
	catalog, err := s.catalog(ctx, now)
	if err != nil {
		return domain.Game{}, nil, err
	}

	for _, g := range catalog.Games {
		if g.ID == gameID {
			built := markets.Build(g, catalog.OddsFor[g.ID], pinned)
			return g, markets.Tabs(built), nil
		}
	}
	return domain.Game{}, nil, domain.ErrNotFound("game", gameID.String())
}

// FindOdd resolves a game and one of its odds by id, for pick selection.
func (s *CatalogService) FindOdd(ctx context.Context, now time.Time, gameID, oddID uuid.UUID) (domain.Game, domain.Odd, error) {
	catalog, err := s.catalog(ctx, now)
	if err != nil {
		return domain.Game{}, domain.Odd{}, err
	}

	for _, g := range catalog.Games {
		if g.ID != gameID {
			continue
		}
		for _, o := range catalog.OddsFor[g.ID] {
			if o.ID == oddID {
				return g, o, nil
			}
		}
		return domain.Game{}, domain.Odd{}, domain.ErrNotFound("odd", oddID.String())
	}
	return domain.Game{}, domain.Odd{}, domain.ErrNotFound("game", gameID.String())
}
