package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/provider"
	"github.com/fourplay/platform/internal/slip"
	"github.com/google/uuid"
)

// TopicParlaySubmitted carries accepted parlay tickets for downstream
// consumers.
const TopicParlaySubmitted = "parlay.submitted"

// TicketWriter is the backend surface TicketService writes through.
type TicketWriter interface {
	InsertParlay(ctx context.Context, token string, row provider.NewParlayRow) (*domain.Parlay, error)
	InsertParlayPicks(ctx context.Context, token string, rows []provider.NewPickRow) error
}

// EventPublisher publishes domain events. A disabled producer satisfies it
// with no-ops.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// TicketService turns a complete slip into a stored parlay ticket.
type TicketService struct {
	writer    TicketWriter
	publisher EventPublisher
	logger    *slog.Logger
}

// NewTicketService creates a TicketService.
func NewTicketService(writer TicketWriter, publisher EventPublisher, logger *slog.Logger) *TicketService {
	return &TicketService{writer: writer, publisher: publisher, logger: logger}
}

// parlaySubmittedEvent is the payload published after a ticket is accepted.
type parlaySubmittedEvent struct {
	ParlayID  uuid.UUID `json:"parlay_id"`
	UserID    uuid.UUID `json:"user_id"`
	TotalOdds float64   `json:"total_odds"`
	Picks     int       `json:"picks"`
	CreatedAt time.Time `json:"created_at"`
}

// Submit stores the slip as a pending parlay under the caller's identity.
// The parlay row is written first, then its picks; the two writes are not
// atomic, and a pick-write failure surfaces as an upstream error while the
// caller keeps the slip for retry.
func (s *TicketService) Submit(ctx context.Context, user auth.Authenticated, sl slip.Slip) (*domain.Parlay, error) {
	if !sl.Complete() {
		return nil, domain.ErrSlipIncomplete(len(sl.Picks))
	}

	parlay, err := s.writer.InsertParlay(ctx, user.Token, provider.NewParlayRow{
		UserID:    user.UserID,
		Status:    domain.ParlayPending,
		TotalOdds: sl.TotalScore(),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]provider.NewPickRow, 0, len(sl.Picks))
	for _, p := range sl.Picks {
		rows = append(rows, provider.NewPickRow{
			ParlayID: parlay.ID,
			GameID:   p.Game.ID,
			EventID:  p.Game.EventID,
			OddsID:   p.Odd.ID,
			Market:   p.Odd.Market,
			Option:   p.Odd.Option,
			Odd:      p.Odd.Odd,
			Result:   domain.ParlayPending,
		})
	}
	if err := s.writer.InsertParlayPicks(ctx, user.Token, rows); err != nil {
		s.logger.Error("parlay picks write failed after parlay row",
			"parlay_id", parlay.ID, "user_id", user.UserID, "error", err)
		return nil, err
	}

	s.logger.Info("parlay submitted",
		"parlay_id", parlay.ID, "user_id", user.UserID,
		"total_odds", parlay.TotalOdds, "picks", len(rows))

	s.publishSubmitted(ctx, parlay, len(rows))
	return parlay, nil
}

// publishSubmitted emits the parlay.submitted event. Publish failures are
// logged, never surfaced; the ticket is already stored.
func (s *TicketService) publishSubmitted(ctx context.Context, parlay *domain.Parlay, picks int) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(parlaySubmittedEvent{
		ParlayID:  parlay.ID,
		UserID:    parlay.UserID,
		TotalOdds: parlay.TotalOdds,
		Picks:     picks,
		CreatedAt: parlay.CreatedAt,
	})
	if err != nil {
		s.logger.Error("marshal parlay event", "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, TopicParlaySubmitted, []byte(parlay.UserID.String()), payload); err != nil {
		s.logger.Error("publish parlay event", "parlay_id", parlay.ID, "error", err)
	}
}
