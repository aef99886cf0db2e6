package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintner/backend/internal/infrastructure/config"
)

const testSecret = "test-secret-key-for-jwt-validation-32ch"

func newTestVerifier() *TokenVerifier {
	return NewTokenVerifier(config.JWTConfig{
		Secret: testSecret,
		Issuer: "vintner-backend",
	})
}

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "vintner-backend",
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scopes: []string{"catalog:write"},
	}
}

func TestTokenVerifier_Verify(t *testing.T) {
	v := newTestVerifier()

	tokenString := signToken(t, validClaims(), testSecret)

	claims, err := v.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.True(t, claims.HasScope("catalog:write"))
	assert.False(t, claims.HasScope("catalog:admin"))
}

func TestTokenVerifier_Verify_WrongSecret(t *testing.T) {
	v := newTestVerifier()

	tokenString := signToken(t, validClaims(), "a-completely-different-signing-secret")

	_, err := v.Verify(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenVerifier_Verify_Expired(t *testing.T) {
	v := newTestVerifier()

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := v.Verify(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenVerifier_Verify_NotYetValid(t *testing.T) {
	v := newTestVerifier()

	claims := validClaims()
	claims.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))

	_, err := v.Verify(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestTokenVerifier_Verify_WrongIssuer(t *testing.T) {
	v := newTestVerifier()

	claims := validClaims()
	claims.Issuer = "someone-else"

	_, err := v.Verify(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenVerifier_Verify_MissingSubject(t *testing.T) {
	v := newTestVerifier()

	claims := validClaims()
	claims.Subject = ""

	_, err := v.Verify(signToken(t, claims, testSecret))
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestTokenVerifier_Verify_Garbage(t *testing.T) {
	v := newTestVerifier()

	_, err := v.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
