package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken("u-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), RemainingTTL(claims).Seconds(), 5)
}

func TestJWTService_DefaultExpiry(t *testing.T) {
	assert.Equal(t, DefaultTokenExpiry, NewJWTService("secret", 0).Expiry())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	valid, err := svc.GenerateToken("u-1")
	require.NoError(t, err)

	expired, err := NewJWTService("secret", -time.Minute).GenerateToken("u-1")
	require.NoError(t, err)

	otherKey, err := NewJWTService("other-secret", time.Hour).GenerateToken("u-1")
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not.a.token",
		"tampered":     valid[:len(valid)-2] + "xx",
		"expired":      expired,
		"wrong secret": otherKey,
		"no expiry":    noExpiry,
		"no user id":   noUser,
		"empty":        "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
