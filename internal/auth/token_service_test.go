package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Generate(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Generate(1, "user")
	require.NoError(t, err)

	claims, err := NewTokenService("secret-b").Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenService_Expired(t *testing.T) {
	expired := &Claims{
		UserID: 1,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := NewTokenService("test-secret").Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenService_Garbage(t *testing.T) {
	claims, err := NewTokenService("test-secret").Validate("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
