package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sport identifies a supported sports category.
type Sport string

const (
	SportIceHockey Sport = "Ice Hockey"
	SportFootball  Sport = "Football"
)

// Valid reports whether the sport is one of the supported categories.
func (s Sport) Valid() bool {
	return s == SportIceHockey || s == SportFootball
}

// PrimaryMarket returns the market name that carries the 1x2 result for the
// sport. Football feeds label it "Full Time", ice hockey feeds
// "Match Odds - Regular Time".
func (s Sport) PrimaryMarket() string {
	if s == SportIceHockey {
		return "Match Odds - Regular Time"
	}
	return "Full Time"
}

// Game represents a games row. Date and Time keep the backend's wire format
// ("2006-01-02" and "15:04"); StartTime combines them.
type Game struct {
	ID            uuid.UUID `json:"id"`
	EventID       string    `json:"event_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Sport         Sport     `json:"sport"`
	League        string    `json:"league"`
	Match         string    `json:"match"`
	ResultsURL    *string   `json:"results_url,omitempty"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
}

// StartTime parses the game's kickoff instant in the given location.
func (g Game) StartTime(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", g.Date+" "+g.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse game start %q %q: %w", g.Date, g.Time, err)
	}
	return t, nil
}

// Started reports whether the game has kicked off relative to now.
// Unparseable start times count as started so they are never selectable.
func (g Game) Started(now time.Time) bool {
	start, err := g.StartTime(now.Location())
	if err != nil {
		return true
	}
	return !start.After(now)
}

// Selectable reports whether picks may still be added for this game.
func (g Game) Selectable(now time.Time) bool {
	return g.IsAvailable && !g.Started(now)
}

// HomeAway splits the display label ("Home - Away") into its team names.
// The away side is empty when the label has no separator.
func (g Game) HomeAway() (home, away string) {
	for i := 0; i+2 < len(g.Match); i++ {
		if g.Match[i] == ' ' && g.Match[i+1] == '-' && g.Match[i+2] == ' ' {
			return g.Match[:i], g.Match[i+3:]
		}
	}
	return g.Match, ""
}

// Odd represents an odds row: one priced outcome within one market of a game.
// Rows are produced by the ingest pipeline and read-only afterwards.
type Odd struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"game_id"`
	EventID   string    `json:"event_id"`
	Market    string    `json:"market"`
	Option    string    `json:"option"`
	Odd       float64   `json:"odd"`
	CreatedAt time.Time `json:"created_at"`
}

// GameWithOdds pairs a game with its full odds list for catalog responses.
type GameWithOdds struct {
	Game
	Odds []Odd `json:"odds"`
}
