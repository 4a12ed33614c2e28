// Package session owns the per-user browsing state: the ticket slip and the
// pinned-market board. This is the only state the service holds itself; all
// rows of record live in the hosted backend.
package session

import (
	"sync"
	"time"

	"github.com/fourplay/platform/internal/markets"
	"github.com/fourplay/platform/internal/slip"
	"github.com/google/uuid"
)

// Session is one user's mutable browsing state. All access goes through the
// store's methods, which serialize on the session mutex, so handlers never
// observe a half-applied transition.
type Session struct {
	mu       sync.Mutex
	slip     slip.Slip
	pins     *markets.PinBoard
	lastSeen time.Time
}

// Store holds sessions keyed by user id.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewStore creates a session store. Sessions idle longer than ttl are
// dropped on the next lookup sweep.
func NewStore(ttl time.Duration) *Store {
	return &Store{sessions: map[uuid.UUID]*Session{}, ttl: ttl}
}

// get returns the user's session, creating it if needed.
func (st *Store) get(userID uuid.UUID, now time.Time) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
		}
	}

	s := st.sessions[userID]
	if s == nil {
		s = &Session{pins: markets.NewPinBoard(), lastSeen: now}
		st.sessions[userID] = s
	}
	return s
}

// Slip returns a snapshot of the user's current slip.
func (st *Store) Slip(userID uuid.UUID, now time.Time) slip.Slip {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return s.slip
}

// Select applies the selection transition to the user's slip and returns the
// new state.
func (st *Store) Select(userID uuid.UUID, now time.Time, pick slip.Pick) (slip.Slip, slip.Transition, error) {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now

	next, tr, err := s.slip.Select(now, pick)
	if err != nil {
		return s.slip, "", err
	}
	s.slip = next
	return next, tr, nil
}

// Remove drops the pick for the event id and returns the new slip.
func (st *Store) Remove(userID uuid.UUID, now time.Time, eventID string) slip.Slip {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	s.slip = s.slip.Remove(eventID)
	return s.slip
}

// Clear empties the user's slip.
func (st *Store) Clear(userID uuid.UUID, now time.Time) slip.Slip {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	s.slip = s.slip.Clear()
	return s.slip
}

// ClearIf empties the slip only if it still equals the snapshot the caller
// acted on. Submission uses this so picks added during the network round
// trip survive a stale clear.
func (st *Store) ClearIf(userID uuid.UUID, now time.Time, snapshot slip.Slip) {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if sameSlip(s.slip, snapshot) {
		s.slip = s.slip.Clear()
	}
}

// TogglePin flips a market pin for the user and reports the new state.
func (st *Store) TogglePin(userID uuid.UUID, now time.Time, gameID uuid.UUID, marketID string) bool {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return s.pins.Toggle(gameID, marketID)
}

// Pinned returns the user's pinned market ids for a game.
func (st *Store) Pinned(userID uuid.UUID, now time.Time, gameID uuid.UUID) map[string]bool {
	s := st.get(userID, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return s.pins.Pinned(gameID)
}

func sameSlip(a, b slip.Slip) bool {
	if len(a.Picks) != len(b.Picks) {
		return false
	}
	for i := range a.Picks {
		if a.Picks[i].Odd.ID != b.Picks[i].Odd.ID {
			return false
		}
	}
	return true
}
