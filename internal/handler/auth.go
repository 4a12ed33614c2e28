package handler

import (
	"net/http"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/service"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	session, err := h.authSvc.SignUp(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, session)
}

// SignIn handles POST /auth/login.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input service.SignInInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	session, err := h.authSvc.SignIn(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, session)
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusUnauthorized, map[string]string{
			"code": "UNAUTHORIZED", "message": "authentication required",
		})
		return
	}

	account, err := h.authSvc.Me(r.Context(), user.Token)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, account)
}

// SignOut handles POST /auth/logout.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		RespondJSON(w, http.StatusNoContent, nil)
		return
	}

	if err := h.authSvc.SignOut(r.Context(), user.Token); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
