// Package slip implements the in-progress ticket: an ordered list of up to
// four picks, at most one per event, mutated only through pure transitions.
package slip

import (
	"time"

	"github.com/fourplay/platform/internal/domain"
)

// Pick pairs one game with one selected odd.
type Pick struct {
	Game domain.Game `json:"game"`
	Odd  domain.Odd  `json:"odd"`
}

// Transition describes what a Select call did to the slip.
type Transition string

const (
	Added    Transition = "added"
	Replaced Transition = "replaced"
	Removed  Transition = "removed"
)

// Slip is the selection state. The zero value is an empty slip. All methods
// are value-semantic: they return the next state and never mutate the
// receiver, so callers can treat Slip as a reducer accumulator.
type Slip struct {
	Picks []Pick `json:"picks"`
}

// find returns the index of the pick for the given event id, or -1.
func (s Slip) find(eventID string) int {
	for i, p := range s.Picks {
		if p.Game.EventID == eventID {
			return i
		}
	}
	return -1
}

func (s Slip) clone() Slip {
	next := Slip{Picks: make([]Pick, len(s.Picks))}
	copy(next.Picks, s.Picks)
	return next
}

// Select applies the pick-selection transition:
//
//   - same game, same odd      → remove (toggle off)
//   - same game, different odd → replace in place
//   - slip already full        → reject
//   - otherwise                → append
//
// Games that are locked or have started reject every selection, including
// toggles.
func (s Slip) Select(now time.Time, pick Pick) (Slip, Transition, error) {
	if !pick.Game.Selectable(now) {
		return s, "", domain.ErrGameClosed(pick.Game.Match)
	}

	if i := s.find(pick.Game.EventID); i >= 0 {
		next := s.clone()
		if next.Picks[i].Odd.ID == pick.Odd.ID {
			next.Picks = append(next.Picks[:i], next.Picks[i+1:]...)
			return next, Removed, nil
		}
		next.Picks[i] = pick
		return next, Replaced, nil
	}

	if len(s.Picks) >= domain.ParlaySize {
		return s, "", domain.ErrSlipFull()
	}

	next := s.clone()
	next.Picks = append(next.Picks, pick)
	return next, Added, nil
}

// Remove drops the pick for the given event id, if present.
func (s Slip) Remove(eventID string) Slip {
	i := s.find(eventID)
	if i < 0 {
		return s
	}
	next := s.clone()
	next.Picks = append(next.Picks[:i], next.Picks[i+1:]...)
	return next
}

// Clear resets the slip to empty.
func (s Slip) Clear() Slip {
	return Slip{}
}

// Has reports whether the slip holds a pick for the event.
func (s Slip) Has(eventID string) bool {
	return s.find(eventID) >= 0
}

// TotalScore is the product of the picked odd values. An empty slip scores 1.
func (s Slip) TotalScore() float64 {
	score := 1.0
	for _, p := range s.Picks {
		score *= p.Odd.Odd
	}
	return score
}

// Complete reports whether the slip holds exactly the required pick count.
func (s Slip) Complete() bool {
	return len(s.Picks) == domain.ParlaySize
}

// Missing is the number of picks still needed to submit.
func (s Slip) Missing() int {
	return domain.ParlaySize - len(s.Picks)
}
