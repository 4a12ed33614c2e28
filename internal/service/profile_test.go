package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileReader struct {
	profile *domain.UserProfile
	parlays []domain.ParlayWithPicks
	entries []domain.LeaderboardEntry

	gotSort  domain.LeaderboardSort
	gotLimit int
}

func (f *fakeProfileReader) GetProfile(_ context.Context, _ string, _ uuid.UUID) (*domain.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeProfileReader) ListParlays(_ context.Context, _ string, _ uuid.UUID) ([]domain.ParlayWithPicks, error) {
	return f.parlays, nil
}

func (f *fakeProfileReader) Leaderboard(_ context.Context, sort domain.LeaderboardSort, limit int) ([]domain.LeaderboardEntry, error) {
	f.gotSort, f.gotLimit = sort, limit
	return f.entries, nil
}

func parlayWith(status domain.ParlayStatus) domain.ParlayWithPicks {
	return domain.ParlayWithPicks{Parlay: domain.Parlay{ID: uuid.New(), Status: status}}
}

func TestProfileService_View_Stats(t *testing.T) {
	reader := &fakeProfileReader{
		profile: &domain.UserProfile{ID: uuid.New(), Username: "punter"},
		parlays: []domain.ParlayWithPicks{
			parlayWith(domain.ParlayWon),
			parlayWith(domain.ParlayLost),
			parlayWith(domain.ParlayWon),
			parlayWith(domain.ParlayPending),
		},
	}
	svc := NewProfileService(reader, slog.Default())

	view, err := svc.View(context.Background(), testUser())
	require.NoError(t, err)

	assert.Equal(t, "punter", view.Profile.Username)
	assert.Equal(t, 4, view.Stats.Total)
	assert.Equal(t, 2, view.Stats.Won)
	assert.Equal(t, 1, view.Stats.Lost)
	assert.Equal(t, 1, view.Stats.Pending)
	assert.InDelta(t, 2.0/3.0*100, view.Stats.WinRate, 1e-9, "pending bets stay out of the win rate")
}

func TestProfileService_View_NoProfileRow(t *testing.T) {
	svc := NewProfileService(&fakeProfileReader{}, slog.Default())

	view, err := svc.View(context.Background(), testUser())
	require.NoError(t, err)

	assert.Nil(t, view.Profile)
	assert.Empty(t, view.Parlays)
	assert.Zero(t, view.Stats.Total)
}

func TestProfileService_Leaderboard_Defaults(t *testing.T) {
	reader := &fakeProfileReader{}
	svc := NewProfileService(reader, slog.Default())

	entries, err := svc.Leaderboard(context.Background(), "garbage", 0)
	require.NoError(t, err)

	assert.NotNil(t, entries)
	assert.Equal(t, domain.SortByWins, reader.gotSort)
	assert.Equal(t, maxLeaderboardLimit, reader.gotLimit)
}

func TestProfileService_Leaderboard_ClampsOversizedLimit(t *testing.T) {
	reader := &fakeProfileReader{}
	svc := NewProfileService(reader, slog.Default())

	_, err := svc.Leaderboard(context.Background(), domain.SortByWins, 500)
	require.NoError(t, err)

	assert.Equal(t, maxLeaderboardLimit, reader.gotLimit)
}

func TestProfileService_Leaderboard_PassesSort(t *testing.T) {
	reader := &fakeProfileReader{entries: []domain.LeaderboardEntry{{Username: "top"}}}
	svc := NewProfileService(reader, slog.Default())

	entries, err := svc.Leaderboard(context.Background(), domain.SortByWinRate, 10)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, domain.SortByWinRate, reader.gotSort)
	assert.Equal(t, 10, reader.gotLimit)
}
