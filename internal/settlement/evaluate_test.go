package settlement

import (
	"testing"

	"github.com/fourplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pick(match, market, option string) domain.PickWithGame {
	return domain.PickWithGame{
		ParlayPick: domain.ParlayPick{ID: uuid.New(), Market: market, Option: option},
		Game:       domain.Game{ID: uuid.New(), Match: match},
	}
}

func parlayOf(picks ...domain.PickWithGame) domain.ParlayWithPicks {
	return domain.ParlayWithPicks{
		Parlay: domain.Parlay{ID: uuid.New(), Status: domain.ParlayPending},
		Picks:  picks,
	}
}

func TestEvaluate_AllWon(t *testing.T) {
	p := parlayOf(
		pick("Arsenal - Chelsea", "Full Time", "1"),
		pick("HIFK - Tappara", "Match Odds - Regular Time", "2"),
	)
	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "1", Result: "WON"},
		{Match: "HIFK - Tappara", Market: "Match Odds - Regular Time", Option: "2", Result: "WON"},
	}

	eval := Evaluate(p, results)
	require.True(t, eval.Settled())
	assert.Equal(t, domain.ParlayWon, eval.Status)
	require.Len(t, eval.PickResults, 2)
	for _, result := range eval.PickResults {
		assert.Equal(t, domain.ParlayWon, result)
	}
}

func TestEvaluate_OneLostLosesTicket(t *testing.T) {
	winner := pick("Arsenal - Chelsea", "Full Time", "1")
	loser := pick("Liverpool - Spurs", "Full Time", "X")
	p := parlayOf(winner, loser)

	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "1", Result: "WON"},
		{Match: "Liverpool - Spurs", Market: "Full Time", Option: "X", Result: "LOST"},
	}

	eval := Evaluate(p, results)
	assert.Equal(t, domain.ParlayLost, eval.Status)
	assert.Equal(t, domain.ParlayWon, eval.PickResults[winner.ID])
	assert.Equal(t, domain.ParlayLost, eval.PickResults[loser.ID])
}

func TestEvaluate_UnmatchedPickStaysPending(t *testing.T) {
	p := parlayOf(
		pick("Arsenal - Chelsea", "Full Time", "1"),
		pick("Late - Game", "Full Time", "2"),
	)
	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "1", Result: "WON"},
	}

	eval := Evaluate(p, results)
	assert.False(t, eval.Settled())
	assert.Empty(t, eval.PickResults)
}

func TestEvaluate_UnknownResultStaysPending(t *testing.T) {
	p := parlayOf(pick("Arsenal - Chelsea", "Full Time", "1"))
	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "1", Result: "UNKNOWN"},
	}

	eval := Evaluate(p, results)
	assert.False(t, eval.Settled(), "an unreadable result must not lose the ticket")
}

func TestEvaluate_MatchesOnAllThreeFields(t *testing.T) {
	p := parlayOf(pick("Arsenal - Chelsea", "Full Time", "1"))

	// same match and market, different option
	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "X", Result: "WON"},
	}

	eval := Evaluate(p, results)
	assert.False(t, eval.Settled())
}

func TestEvaluate_ResultCaseInsensitive(t *testing.T) {
	p := parlayOf(pick("Arsenal - Chelsea", "Full Time", "1"))
	results := []BetResult{
		{Match: "Arsenal - Chelsea", Market: "Full Time", Option: "1", Result: "won"},
	}

	eval := Evaluate(p, results)
	assert.Equal(t, domain.ParlayWon, eval.Status)
}
