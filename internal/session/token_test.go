package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1001",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	got, ok := PeekExpiry(signed)
	assert.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestPeekExpiryOpaqueToken(t *testing.T) {
	_, ok := PeekExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestPeekExpiryNoExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u-1001"})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	_, ok := PeekExpiry(signed)
	assert.False(t, ok)
}
