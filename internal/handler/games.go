package handler

import (
	"net/http"
	"time"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/markets"
	"github.com/fourplay/platform/internal/service"
	"github.com/fourplay/platform/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GamesHandler serves the daily catalog and per-game market views.
type GamesHandler struct {
	catalog  *service.CatalogService
	sessions *session.Store
}

// NewGamesHandler creates a new GamesHandler.
func NewGamesHandler(catalog *service.CatalogService, sessions *session.Store) *GamesHandler {
	return &GamesHandler{catalog: catalog, sessions: sessions}
}

// Today handles GET /games. The optional sport query narrows the list.
func (h *GamesHandler) Today(w http.ResponseWriter, r *http.Request) {
	sport := domain.Sport(r.URL.Query().Get("sport"))
	if sport != "" && !sport.Valid() {
		RespondError(w, domain.ErrValidation("unknown sport"))
		return
	}

	result, err := h.catalog.Today(r.Context(), time.Now(), sport)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// marketsView is the tabbed market response for one game.
type marketsView struct {
	Game domain.Game                           `json:"game"`
	Tabs map[markets.Category][]markets.Market `json:"tabs"`
}

// Markets handles GET /games/{gameID}/markets. Signed-in callers see their
// pinned markets surface in the popular tab.
func (h *GamesHandler) Markets(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game id"))
		return
	}

	now := time.Now()
	var pinned map[string]bool
	if user, ok := auth.UserFromContext(r.Context()); ok {
		pinned = h.sessions.Pinned(user.UserID, now, gameID)
	}

	game, tabs, err := h.catalog.GameMarkets(r.Context(), now, gameID, pinned)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, marketsView{Game: game, Tabs: tabs})
}

// TogglePin handles POST /games/{gameID}/markets/{marketID}/pin.
func (h *GamesHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondError(w, domain.ErrUnauthorized("sign in to pin markets"))
		return
	}

	gameID, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid game id"))
		return
	}
	marketID := chi.URLParam(r, "marketID")
	if marketID == "" {
		RespondError(w, domain.ErrValidation("invalid market id"))
		return
	}

	pinned := h.sessions.TogglePin(user.UserID, time.Now(), gameID, marketID)
	RespondJSON(w, http.StatusOK, map[string]bool{"pinned": pinned})
}
