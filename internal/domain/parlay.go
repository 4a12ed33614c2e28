package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParlayStatus is the settlement state of a ticket or one of its legs.
type ParlayStatus string

const (
	ParlayPending ParlayStatus = "pending"
	ParlayWon     ParlayStatus = "won"
	ParlayLost    ParlayStatus = "lost"
)

// ParlaySize is the number of picks a ticket must carry.
const ParlaySize = 4

// Parlay represents a parlays row. Status and EvaluatedAt are mutated only by
// the settlement pipeline.
type Parlay struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Status      ParlayStatus `json:"status"`
	TotalOdds   float64      `json:"total_odds"`
	EvaluatedAt *time.Time   `json:"evaluated_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ParlayPick represents a persisted ticket leg. Immutable after creation
// except for Result, written once by settlement.
type ParlayPick struct {
	ID        uuid.UUID     `json:"id"`
	ParlayID  uuid.UUID     `json:"parlay_id"`
	GameID    uuid.UUID     `json:"game_id"`
	EventID   string        `json:"event_id"`
	OddsID    uuid.UUID     `json:"odds_id"`
	Market    string        `json:"market"`
	Option    string        `json:"option"`
	Odd       float64       `json:"odd"`
	Result    *ParlayStatus `json:"result,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// PickWithGame is a leg joined with its game for history views. The json
// name mirrors the backend's embedded-resource key.
type PickWithGame struct {
	ParlayPick
	Game Game `json:"games"`
}

// ParlayWithPicks is a parlay eagerly joined with its legs and their games.
type ParlayWithPicks struct {
	Parlay
	Picks []PickWithGame `json:"parlay_picks"`
}

// ParlayStats aggregates a user's ticket history. WinRate counts only
// settled parlays.
type ParlayStats struct {
	Total   int     `json:"total"`
	Pending int     `json:"pending"`
	Won     int     `json:"won"`
	Lost    int     `json:"lost"`
	WinRate float64 `json:"win_rate"`
}

// ComputeParlayStats tallies parlays by status.
func ComputeParlayStats(statuses []ParlayStatus) ParlayStats {
	var s ParlayStats
	s.Total = len(statuses)
	for _, st := range statuses {
		switch st {
		case ParlayWon:
			s.Won++
		case ParlayLost:
			s.Lost++
		default:
			s.Pending++
		}
	}
	if settled := s.Won + s.Lost; settled > 0 {
		s.WinRate = float64(s.Won) / float64(settled) * 100
	}
	return s
}
