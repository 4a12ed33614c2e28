package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, sub string, email string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: email,
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, userID.String(), "pat@example.com", time.Now().Add(time.Hour))

	user, err := NewVerifier(testSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, user.UserID)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Equal(t, token, user.Token)
}

func TestVerify_Rejections(t *testing.T) {
	verifier := NewVerifier(testSecret)
	userID := uuid.New().String()

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "another-secret-that-is-also-long-enough", userID, "", time.Now().Add(time.Hour))
		_, err := verifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, userID, "", time.Now().Add(-time.Minute))
		_, err := verifier.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("non-uuid subject", func(t *testing.T) {
		token := signToken(t, testSecret, "service-role", "", time.Now().Add(time.Hour))
		_, err := verifier.Verify(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a user id")
	})
}
