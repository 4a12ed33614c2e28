package markets

import "github.com/google/uuid"

// PinBoard tracks which markets a user has favorited, per game. The zero
// value is not usable; call NewPinBoard. PinBoard is not safe for concurrent
// use; the owning session serializes access.
type PinBoard struct {
	byGame map[uuid.UUID]map[string]bool
}

// NewPinBoard creates an empty pin board.
func NewPinBoard() *PinBoard {
	return &PinBoard{byGame: map[uuid.UUID]map[string]bool{}}
}

// Toggle flips the pinned state of the market and reports the new state.
func (b *PinBoard) Toggle(gameID uuid.UUID, marketID string) bool {
	set := b.byGame[gameID]
	if set == nil {
		set = map[string]bool{}
		b.byGame[gameID] = set
	}
	if set[marketID] {
		delete(set, marketID)
		return false
	}
	set[marketID] = true
	return true
}

// Pinned returns the pinned market ids for a game. The returned map is a
// copy; mutating it does not affect the board.
func (b *PinBoard) Pinned(gameID uuid.UUID) map[string]bool {
	out := map[string]bool{}
	for id := range b.byGame[gameID] {
		out[id] = true
	}
	return out
}
