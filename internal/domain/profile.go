package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile represents a user_profiles row. The ID equals the auth user id.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardEntry is one row of the leaderboard view, aggregated over
// settled parlays by the backend.
type LeaderboardEntry struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	TotalParlays int       `json:"total_parlays"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	WinRate      float64   `json:"win_rate"`
}

// LeaderboardSort is a permitted leaderboard ordering key.
type LeaderboardSort string

const (
	SortByWins    LeaderboardSort = "wins"
	SortByWinRate LeaderboardSort = "win_rate"
)

// Valid reports whether the sort key is one the backend accepts.
func (s LeaderboardSort) Valid() bool {
	return s == SortByWins || s == SortByWinRate
}
