package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the fields we read from the backend's access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier validates backend access tokens locally. The backend signs its
// tokens with HS256 and a project-wide secret, so verification needs no
// network round trip.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the backend's JWT secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the token's signature and expiry and returns the account it
// identifies.
func (v *Verifier) Verify(token string) (Authenticated, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Authenticated{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return Authenticated{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Authenticated{}, fmt.Errorf("token subject is not a user id: %w", err)
	}

	return Authenticated{UserID: userID, Email: claims.Email, Token: token}, nil
}
