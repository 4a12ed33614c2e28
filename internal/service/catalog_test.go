package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/markets"
	"github.com/fourplay/platform/internal/oddsfeed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogSource serves a fixed game list and a single odds page.
type catalogSource struct {
	games        []domain.Game
	odds         []domain.Odd
	gameRequests int
}

func (s *catalogSource) ListGames(_ context.Context, _ string) ([]domain.Game, error) {
	s.gameRequests++
	return s.games, nil
}

func (s *catalogSource) ListOddsRange(_ context.Context, from, _ int) ([]domain.Odd, error) {
	if from > 0 {
		return nil, nil
	}
	return s.odds, nil
}

func upcomingGame(now time.Time, sport domain.Sport, match string) domain.Game {
	start := now.Add(3 * time.Hour)
	return domain.Game{
		ID:          uuid.New(),
		EventID:     uuid.NewString(),
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04"),
		Sport:       sport,
		Match:       match,
		IsAvailable: true,
	}
}

func TestCatalogService_Today_FiltersBySport(t *testing.T) {
	now := time.Now()
	football := upcomingGame(now, domain.SportFootball, "Arsenal - Chelsea")
	hockey := upcomingGame(now, domain.SportIceHockey, "HIFK - Tappara")

	source := &catalogSource{games: []domain.Game{football, hockey}}
	svc := NewCatalogService(oddsfeed.NewFetcher(source, slog.Default()), slog.Default())

	all, err := svc.Today(context.Background(), now, "")
	require.NoError(t, err)
	assert.Len(t, all.Games, 2)

	onlyHockey, err := svc.Today(context.Background(), now, domain.SportIceHockey)
	require.NoError(t, err)
	require.Len(t, onlyHockey.Games, 1)
	assert.Equal(t, hockey.ID, onlyHockey.Games[0].Game.ID)
}

func TestCatalogService_Today_ReusesCatalogWithinTTL(t *testing.T) {
	now := time.Now()
	source := &catalogSource{games: []domain.Game{upcomingGame(now, domain.SportFootball, "A - B")}}
	svc := NewCatalogService(oddsfeed.NewFetcher(source, slog.Default()), slog.Default())

	for i := 0; i < 3; i++ {
		_, err := svc.Today(context.Background(), now, "")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, source.gameRequests)

	_, err := svc.Today(context.Background(), now.Add(catalogTTL+time.Second), "")
	require.NoError(t, err)
	assert.Equal(t, 2, source.gameRequests, "stale catalog refetches")
}

func TestCatalogService_GameMarkets(t *testing.T) {
	now := time.Now()
	game := upcomingGame(now, domain.SportFootball, "Arsenal - Chelsea")
	odds := []domain.Odd{
		{ID: uuid.New(), GameID: game.ID, EventID: game.EventID, Market: "Full Time", Option: "1", Odd: 1.80},
		{ID: uuid.New(), GameID: game.ID, EventID: game.EventID, Market: "Full Time", Option: "X", Odd: 3.40},
		{ID: uuid.New(), GameID: game.ID, EventID: game.EventID, Market: "Total Goals Over/Under 2.5", Option: "Over", Odd: 1.95},
	}

	source := &catalogSource{games: []domain.Game{game}, odds: odds}
	svc := NewCatalogService(oddsfeed.NewFetcher(source, slog.Default()), slog.Default())

	found, tabs, err := svc.GameMarkets(context.Background(), now, game.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, game.ID, found.ID)

	require.NotEmpty(t, tabs[markets.CategoryMain])
	assert.Equal(t, "Full Time", tabs[markets.CategoryMain][0].Name)
	require.Len(t, tabs[markets.CategoryGoals], 1)
}

func TestCatalogService_GameMarkets_UnknownGame(t *testing.T) {
	now := time.Now()
	source := &catalogSource{games: []domain.Game{upcomingGame(now, domain.SportFootball, "A - B")}}
	svc := NewCatalogService(oddsfeed.NewFetcher(source, slog.Default()), slog.Default())

	_, _, err := svc.GameMarkets(context.Background(), now, uuid.New(), nil)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCatalogService_FindOdd(t *testing.T) {
	now := time.Now()
	game := upcomingGame(now, domain.SportFootball, "A - B")
	odd := domain.Odd{ID: uuid.New(), GameID: game.ID, EventID: game.EventID, Market: "Full Time", Option: "2", Odd: 2.40}

	source := &catalogSource{games: []domain.Game{game}, odds: []domain.Odd{odd}}
	svc := NewCatalogService(oddsfeed.NewFetcher(source, slog.Default()), slog.Default())

	foundGame, foundOdd, err := svc.FindOdd(context.Background(), now, game.ID, odd.ID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, foundGame.ID)
	assert.Equal(t, odd.ID, foundOdd.ID)

	_, _, err = svc.FindOdd(context.Background(), now, game.ID, uuid.New())
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
