package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// AuthUser is the backend's view of an authenticated account.
type AuthUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession is returned by sign-up and sign-in.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// authError is the backend's error envelope.
type authError struct {
	Message     string `json:"msg"`
	Description string `json:"error_description"`
}

// RequestError is a non-2xx reply from the auth service. Callers branch on
// Status to tell duplicate accounts and bad credentials from outages.
type RequestError struct {
	Path    string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("auth api %s: %s", e.Path, e.Message)
}

// AuthAPI is a client for the backend's token auth service.
type AuthAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAuthAPI creates an auth client.
func NewAuthAPI(baseURL, apiKey string) *AuthAPI {
	return &AuthAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *AuthAPI) post(ctx context.Context, path string, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode auth request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth api %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return &RequestError{Path: path, Status: resp.StatusCode, Message: authErrMessage(resp.StatusCode, raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode auth response: %w", err)
		}
	}
	return nil
}

// SignUp registers a new account. redirectTo is the confirmation-link target
// the backend embeds in its verification email.
func (a *AuthAPI) SignUp(ctx context.Context, email, password, redirectTo string) (*AuthSession, error) {
	path := "/auth/v1/signup"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	var session AuthSession
	err := a.post(ctx, path, "", map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SignIn exchanges credentials for a session using the password grant.
func (a *AuthAPI) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	var session AuthSession
	err := a.post(ctx, "/auth/v1/token?grant_type=password", "",
		map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser resolves the account behind an access token.
func (a *AuthAPI) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth api /user: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, &RequestError{Path: "/auth/v1/user", Status: resp.StatusCode, Message: authErrMessage(resp.StatusCode, raw)}
	}

	var user AuthUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}
	return &user, nil
}

// SignOut revokes the session behind the access token.
func (a *AuthAPI) SignOut(ctx context.Context, accessToken string) error {
	return a.post(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

func authErrMessage(status int, raw []byte) string {
	var e authError
	if json.Unmarshal(raw, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Description != "" {
			return e.Description
		}
	}
	return fmt.Sprintf("status %d: %s", status, excerpt(raw))
}
