package service

import (
	"context"
	"log/slog"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
)

// ProfileReader is the backend surface ProfileService reads through.
type ProfileReader interface {
	GetProfile(ctx context.Context, token string, userID uuid.UUID) (*domain.UserProfile, error)
	ListParlays(ctx context.Context, token string, userID uuid.UUID) ([]domain.ParlayWithPicks, error)
	Leaderboard(ctx context.Context, sort domain.LeaderboardSort, limit int) ([]domain.LeaderboardEntry, error)
}

// ProfileService assembles the profile page: identity, bet history and
// aggregate stats.
type ProfileService struct {
	reader ProfileReader
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(reader ProfileReader, logger *slog.Logger) *ProfileService {
	return &ProfileService{reader: reader, logger: logger}
}

// ProfileView is the assembled profile response.
type ProfileView struct {
	Profile *domain.UserProfile      `json:"profile"`
	Parlays []domain.ParlayWithPicks `json:"parlays"`
	Stats   domain.ParlayStats       `json:"stats"`
}

// View loads the caller's profile row and full parlay history, newest first,
// and derives the stats from the history. A missing profile row yields a nil
// Profile with empty history, not an error.
func (s *ProfileService) View(ctx context.Context, user auth.Authenticated) (*ProfileView, error) {
	profile, err := s.reader.GetProfile(ctx, user.Token, user.UserID)
	if err != nil {
		return nil, err
	}

	parlays, err := s.reader.ListParlays(ctx, user.Token, user.UserID)
	if err != nil {
		return nil, err
	}
	if parlays == nil {
		parlays = []domain.ParlayWithPicks{}
	}

	statuses := make([]domain.ParlayStatus, 0, len(parlays))
	for _, p := range parlays {
		statuses = append(statuses, p.Status)
	}

	return &ProfileView{
		Profile: profile,
		Parlays: parlays,
		Stats:   domain.ComputeParlayStats(statuses),
	}, nil
}

// maxLeaderboardLimit bounds leaderboard reads. Callers asking for more, or
// giving no limit, get the full board.
const maxLeaderboardLimit = 100

// Leaderboard returns the ranked standings. An invalid sort key falls back
// to wins.
func (s *ProfileService) Leaderboard(ctx context.Context, sort domain.LeaderboardSort, limit int) ([]domain.LeaderboardEntry, error) {
	if !sort.Valid() {
		sort = domain.SortByWins
	}
	if limit <= 0 || limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := s.reader.Leaderboard(ctx, sort, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}
