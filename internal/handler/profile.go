package handler

import (
	"net/http"
	"strconv"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/service"
)

// ProfileHandler serves the profile page and the leaderboard.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Me handles GET /profile. The optional status query filters the bet
// history after stats are computed, so stats always cover every ticket.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	view, err := h.profiles.View(r.Context(), user)
	if err != nil {
		RespondError(w, err)
		return
	}

	if status := domain.ParlayStatus(r.URL.Query().Get("status")); status != "" {
		filtered := make([]domain.ParlayWithPicks, 0, len(view.Parlays))
		for _, p := range view.Parlays {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		view.Parlays = filtered
	}

	RespondJSON(w, http.StatusOK, view)
}

// Leaderboard handles GET /leaderboard.
func (h *ProfileHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	sort := domain.LeaderboardSort(r.URL.Query().Get("sort"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.profiles.Leaderboard(r.Context(), sort, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, entries)
}
