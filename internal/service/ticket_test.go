package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/provider"
	"github.com/fourplay/platform/internal/slip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketWriter struct {
	parlayErr error
	picksErr  error

	insertedParlay *provider.NewParlayRow
	insertedPicks  []provider.NewPickRow
}

func (f *fakeTicketWriter) InsertParlay(_ context.Context, _ string, row provider.NewParlayRow) (*domain.Parlay, error) {
	if f.parlayErr != nil {
		return nil, f.parlayErr
	}
	f.insertedParlay = &row
	return &domain.Parlay{
		ID:        uuid.New(),
		UserID:    row.UserID,
		Status:    row.Status,
		TotalOdds: row.TotalOdds,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeTicketWriter) InsertParlayPicks(_ context.Context, _ string, rows []provider.NewPickRow) error {
	if f.picksErr != nil {
		return f.picksErr
	}
	f.insertedPicks = rows
	return nil
}

type fakePublisher struct {
	topic string
	key   []byte
	value []byte
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key, value []byte) error {
	f.topic, f.key, f.value = topic, key, value
	return nil
}

func fullSlip(t *testing.T) slip.Slip {
	t.Helper()

	var s slip.Slip
	now := time.Now()
	start := now.Add(2 * time.Hour)
	odds := []float64{1.50, 2.00, 1.80, 3.10}
	for i, o := range odds {
		game := domain.Game{
			ID:          uuid.New(),
			EventID:     uuid.NewString(),
			Date:        start.Format("2006-01-02"),
			Time:        start.Format("15:04"),
			Sport:       domain.SportFootball,
			Match:       "Home - Away",
			IsAvailable: true,
		}
		next, tr, err := s.Select(now, slip.Pick{
			Game: game,
			Odd:  domain.Odd{ID: uuid.New(), GameID: game.ID, EventID: game.EventID, Market: "Full Time", Option: "1", Odd: o},
		})
		require.NoError(t, err)
		require.Equal(t, slip.Added, tr, "pick %d", i)
		s = next
	}
	require.True(t, s.Complete())
	return s
}

func testUser() auth.Authenticated {
	return auth.Authenticated{UserID: uuid.New(), Email: "punter@example.com", Token: "token"}
}

func TestTicketService_Submit(t *testing.T) {
	writer := &fakeTicketWriter{}
	publisher := &fakePublisher{}
	svc := NewTicketService(writer, publisher, slog.Default())

	user := testUser()
	s := fullSlip(t)

	parlay, err := svc.Submit(context.Background(), user, s)
	require.NoError(t, err)
	require.NotNil(t, parlay)

	assert.Equal(t, user.UserID, writer.insertedParlay.UserID)
	assert.Equal(t, domain.ParlayPending, writer.insertedParlay.Status)
	assert.InDelta(t, s.TotalScore(), writer.insertedParlay.TotalOdds, 1e-9)

	require.Len(t, writer.insertedPicks, 4)
	for i, row := range writer.insertedPicks {
		assert.Equal(t, parlay.ID, row.ParlayID)
		assert.Equal(t, s.Picks[i].Odd.ID, row.OddsID)
		assert.Equal(t, domain.ParlayPending, row.Result)
	}
}

func TestTicketService_Submit_IncompleteSlip(t *testing.T) {
	writer := &fakeTicketWriter{}
	svc := NewTicketService(writer, nil, slog.Default())

	var s slip.Slip
	_, err := svc.Submit(context.Background(), testUser(), s)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SLIP_INCOMPLETE", appErr.Code)
	assert.Nil(t, writer.insertedParlay, "no write for an incomplete slip")
}

func TestTicketService_Submit_ParlayWriteFails(t *testing.T) {
	writer := &fakeTicketWriter{parlayErr: domain.ErrUpstream("datastore", errors.New("boom"))}
	svc := NewTicketService(writer, nil, slog.Default())

	_, err := svc.Submit(context.Background(), testUser(), fullSlip(t))

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Nil(t, writer.insertedPicks)
}

func TestTicketService_Submit_PickWriteFails(t *testing.T) {
	writer := &fakeTicketWriter{picksErr: domain.ErrUpstream("datastore", errors.New("boom"))}
	svc := NewTicketService(writer, nil, slog.Default())

	_, err := svc.Submit(context.Background(), testUser(), fullSlip(t))
	require.Error(t, err, "pick-write failure must surface so the caller keeps the slip")
}

func TestTicketService_Submit_PublishesEvent(t *testing.T) {
	writer := &fakeTicketWriter{}
	publisher := &fakePublisher{}
	svc := NewTicketService(writer, publisher, slog.Default())

	user := testUser()
	parlay, err := svc.Submit(context.Background(), user, fullSlip(t))
	require.NoError(t, err)

	assert.Equal(t, TopicParlaySubmitted, publisher.topic)
	assert.Equal(t, user.UserID.String(), string(publisher.key))

	var event parlaySubmittedEvent
	require.NoError(t, json.Unmarshal(publisher.value, &event))
	assert.Equal(t, parlay.ID, event.ParlayID)
	assert.Equal(t, 4, event.Picks)
}

func TestTicketService_Submit_NilPublisher(t *testing.T) {
	svc := NewTicketService(&fakeTicketWriter{}, nil, slog.Default())

	_, err := svc.Submit(context.Background(), testUser(), fullSlip(t))
	require.NoError(t, err)
}
