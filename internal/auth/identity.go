// Package auth resolves the hosted backend's access tokens into an explicit
// request identity.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the result of resolving a request's credentials exactly once.
// It is either Authenticated or Anonymous.
type Identity interface {
	isIdentity()
}

// Authenticated carries the verified account and the raw access token, which
// downstream calls forward to the backend so row-level permissions apply.
type Authenticated struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

// Anonymous is a request with no (or an invalid) access token.
type Anonymous struct{}

func (Authenticated) isIdentity() {}
func (Anonymous) isIdentity()     {}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the resolved identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the request identity, defaulting to Anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey).(Identity); ok {
		return id
	}
	return Anonymous{}
}

// UserFromContext returns the authenticated user, or ok=false for anonymous
// requests.
func UserFromContext(ctx context.Context) (Authenticated, bool) {
	user, ok := IdentityFromContext(ctx).(Authenticated)
	return user, ok
}
