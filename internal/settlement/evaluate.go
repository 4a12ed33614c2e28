// Package settlement evaluates pending parlays against scraped game
// results. A parlay settles only when every one of its picks has a definite
// result; all won means won, anything else means lost.
package settlement

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
)

// BetResult is one evaluated bet from the results scraper. Result is WON,
// LOST or UNKNOWN.
type BetResult struct {
	Match  string `json:"match"`
	Market string `json:"market"`
	Option string `json:"option"`
	Result string `json:"result"`
}

// LoadBetResults reads the scraper's evaluated bets JSON.
func LoadBetResults(path string) ([]BetResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bet results: %w", err)
	}
	var results []BetResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("decode bet results: %w", err)
	}
	return results, nil
}

// Evaluation is the outcome of evaluating one parlay.
type Evaluation struct {
	Status      domain.ParlayStatus
	PickResults map[uuid.UUID]domain.ParlayStatus
}

// Settled reports whether the parlay reached a final status.
func (e Evaluation) Settled() bool {
	return e.Status != domain.ParlayPending
}

// matchResult finds the result for one pick by match name, market and
// option. Returns "" when the bet has no result yet.
func matchResult(pick domain.PickWithGame, results []BetResult) string {
	for _, r := range results {
		if pick.Game.Match == r.Match && pick.Market == r.Market && pick.Option == r.Option {
			return r.Result
		}
	}
	return ""
}

// Evaluate scores one parlay against the results. A pick with no matching
// result, or an UNKNOWN one, leaves the whole parlay pending; a lost result
// on any pick loses the ticket.
func Evaluate(parlay domain.ParlayWithPicks, results []BetResult) Evaluation {
	pickResults := make(map[uuid.UUID]domain.ParlayStatus, len(parlay.Picks))

	allWon := true
	for _, pick := range parlay.Picks {
		switch strings.ToUpper(matchResult(pick, results)) {
		case "WON":
			pickResults[pick.ID] = domain.ParlayWon
		case "LOST":
			pickResults[pick.ID] = domain.ParlayLost
			allWon = false
		default:
			// not played out yet
			return Evaluation{Status: domain.ParlayPending}
		}
	}

	status := domain.ParlayLost
	if allWon {
		status = domain.ParlayWon
	}
	return Evaluation{Status: status, PickResults: pickResults}
}
