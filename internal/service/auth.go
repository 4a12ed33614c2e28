package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/fourplay/platform/internal/domain"
	"github.com/fourplay/platform/internal/provider"
)

// AuthService fronts the hosted auth API, validating input locally before
// any network call.
type AuthService struct {
	api        *provider.AuthAPI
	redirectTo string
}

// NewAuthService creates an AuthService. redirectTo is where the backend's
// signup confirmation link should land.
func NewAuthService(api *provider.AuthAPI, redirectTo string) *AuthService {
	return &AuthService{api: api, redirectTo: redirectTo}
}

// SignUpInput holds the signup request fields.
type SignUpInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignInInput holds the login request fields.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account with the backend.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*provider.AuthSession, error) {
	if err := domain.ValidateSignup(input.Email, input.Password, input.ConfirmPassword); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	session, err := s.api.SignUp(ctx, input.Email, input.Password, s.redirectTo)
	if err != nil {
		// the backend rejects duplicate accounts with 422
		var reqErr *provider.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusUnprocessableEntity {
			return nil, domain.ErrConflict("email already registered")
		}
		return nil, domain.ErrUpstream("sign up", err)
	}
	return session, nil
}

// SignIn exchanges credentials for a session.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*provider.AuthSession, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if input.Password == "" {
		return nil, domain.ErrValidation("password is required")
	}

	session, err := s.api.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid login credentials")
	}
	return session, nil
}

// Me fetches the caller's account from the backend.
func (s *AuthService) Me(ctx context.Context, accessToken string) (*provider.AuthUser, error) {
	user, err := s.api.GetUser(ctx, accessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized("session expired")
	}
	return user, nil
}

// SignOut revokes the user's backend session.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if err := s.api.SignOut(ctx, accessToken); err != nil {
		return domain.ErrUpstream("sign out", err)
	}
	return nil
}
