package handler

import (
	"net/http"
	"time"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/service"
	"github.com/fourplay/platform/internal/session"
	"github.com/fourplay/platform/internal/slip"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SlipHandler manages the caller's ticket-in-progress.
type SlipHandler struct {
	catalog  *service.CatalogService
	tickets  *service.TicketService
	sessions *session.Store
}

// NewSlipHandler creates a new SlipHandler.
func NewSlipHandler(catalog *service.CatalogService, tickets *service.TicketService, sessions *session.Store) *SlipHandler {
	return &SlipHandler{catalog: catalog, tickets: tickets, sessions: sessions}
}

// slipView is the slip response shape.
type slipView struct {
	Picks      []slip.Pick `json:"picks"`
	TotalOdds  float64     `json:"total_odds"`
	Complete   bool        `json:"complete"`
	Missing    int         `json:"missing"`
	Transition string      `json:"transition,omitempty"`
}

func viewOf(s slip.Slip) slipView {
	picks := s.Picks
	if picks == nil {
		picks = []slip.Pick{}
	}
	return slipView{
		Picks:     picks,
		TotalOdds: s.TotalScore(),
		Complete:  s.Complete(),
		Missing:   s.Missing(),
	}
}

func transitionName(tr slip.Transition) string {
	switch tr {
	case slip.Added:
		return "added"
	case slip.Replaced:
		return "replaced"
	case slip.Removed:
		return "removed"
	}
	return ""
}

// Get handles GET /slip.
func (h *SlipHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	RespondJSON(w, http.StatusOK, viewOf(h.sessions.Slip(user.UserID, time.Now())))
}

// selectInput names an odd on a game.
type selectInput struct {
	GameID uuid.UUID `json:"game_id"`
	OddID  uuid.UUID `json:"odd_id"`
}

// Select handles POST /slip/picks. Picking a selected odd again removes it;
// picking a different market on a held game swaps the pick in place.
func (h *SlipHandler) Select(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var input selectInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code": "VALIDATION_ERROR", "message": "invalid request body",
		})
		return
	}

	now := time.Now()
	game, odd, err := h.catalog.FindOdd(r.Context(), now, input.GameID, input.OddID)
	if err != nil {
		RespondError(w, err)
		return
	}

	next, tr, err := h.sessions.Select(user.UserID, now, slip.Pick{Game: game, Odd: odd})
	if err != nil {
		RespondError(w, err)
		return
	}

	view := viewOf(next)
	view.Transition = transitionName(tr)
	RespondJSON(w, http.StatusOK, view)
}

// Remove handles DELETE /slip/picks/{eventID}.
func (h *SlipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		RespondError(w, domain.ErrValidation("invalid event id"))
		return
	}

	RespondJSON(w, http.StatusOK, viewOf(h.sessions.Remove(user.UserID, time.Now(), eventID)))
}

// Clear handles DELETE /slip.
func (h *SlipHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	h.sessions.Clear(user.UserID, time.Now())
	RespondJSON(w, http.StatusNoContent, nil)
}

// Submit handles POST /slip/submit. The slip survives a failed submission
// so the caller can retry; it is cleared only once the ticket is stored.
func (h *SlipHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, domain.ErrUnauthorized("sign in to submit a ticket"))
		return
	}

	now := time.Now()
	snapshot := h.sessions.Slip(user.UserID, now)

	parlay, err := h.tickets.Submit(r.Context(), user, snapshot)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.sessions.ClearIf(user.UserID, time.Now(), snapshot)
	RespondJSON(w, http.StatusCreated, parlay)
}
