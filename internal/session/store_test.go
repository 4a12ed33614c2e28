package session

import (
	"testing"
	"time"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/markets"
	"github.com/fourplay/platform/internal/slip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func testPick(event string) slip.Pick {
	game := domain.Game{
		ID:          uuid.New(),
		EventID:     event,
		Date:        "2025-01-10",
		Time:        "19:00",
		Sport:       domain.SportFootball,
		IsAvailable: true,
	}
	return slip.Pick{
		Game: game,
		Odd:  domain.Odd{ID: uuid.New(), GameID: game.ID, Market: "Full Time", Option: "1", Odd: 1.8},
	}
}

func TestStore_SlipsAreIsolatedPerUser(t *testing.T) {
	store := NewStore(time.Hour)
	alice, bob := uuid.New(), uuid.New()

	_, _, err := store.Select(alice, testNow, testPick("ev-1"))
	require.NoError(t, err)

	assert.Len(t, store.Slip(alice, testNow).Picks, 1)
	assert.Empty(t, store.Slip(bob, testNow).Picks)
}

func TestStore_SelectRemoveClear(t *testing.T) {
	store := NewStore(time.Hour)
	user := uuid.New()

	s, tr, err := store.Select(user, testNow, testPick("ev-1"))
	require.NoError(t, err)
	assert.Equal(t, slip.Added, tr)
	require.Len(t, s.Picks, 1)

	s = store.Remove(user, testNow, "ev-1")
	assert.Empty(t, s.Picks)

	store.Select(user, testNow, testPick("ev-2"))
	s = store.Clear(user, testNow)
	assert.Empty(t, s.Picks)
}

func TestStore_RejectedSelectLeavesStateUntouched(t *testing.T) {
	store := NewStore(time.Hour)
	user := uuid.New()
	pick := testPick("ev-closed")
	pick.Game.IsAvailable = false

	_, _, err := store.Select(user, testNow, pick)
	require.Error(t, err)
	assert.Empty(t, store.Slip(user, testNow).Picks)
}

func TestStore_ClearIf(t *testing.T) {
	store := NewStore(time.Hour)
	user := uuid.New()

	snapshot, _, _ := store.Select(user, testNow, testPick("ev-1"))

	t.Run("clears when unchanged", func(t *testing.T) {
		store.ClearIf(user, testNow, snapshot)
		assert.Empty(t, store.Slip(user, testNow).Picks)
	})

	t.Run("keeps picks added after the snapshot", func(t *testing.T) {
		snapshot, _, _ := store.Select(user, testNow, testPick("ev-2"))
		store.Select(user, testNow, testPick("ev-3"))

		store.ClearIf(user, testNow, snapshot)
		assert.Len(t, store.Slip(user, testNow).Picks, 2, "slip changed since snapshot, clear skipped")
	})
}

func TestStore_PinsAreScopedToUserAndGame(t *testing.T) {
	store := NewStore(time.Hour)
	alice, bob := uuid.New(), uuid.New()
	gameID := uuid.New()
	marketID := markets.MarketID(gameID, "Over/Under 2.5")

	assert.True(t, store.TogglePin(alice, testNow, gameID, marketID))
	assert.True(t, store.Pinned(alice, testNow, gameID)[marketID])
	assert.Empty(t, store.Pinned(bob, testNow, gameID))

	assert.False(t, store.TogglePin(alice, testNow, gameID, marketID))
	assert.Empty(t, store.Pinned(alice, testNow, gameID))
}

func TestStore_IdleSessionsExpire(t *testing.T) {
	store := NewStore(time.Minute)
	user := uuid.New()

	store.Select(user, testNow, testPick("ev-1"))

	later := testNow.Add(2 * time.Minute)
	// any lookup sweeps idle sessions
	store.Slip(uuid.New(), later)

	assert.Empty(t, store.Slip(user, later).Picks, "expired session starts fresh")
}
