package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "coffee-order-backend", time.Hour)

	token, err := tm.Generate("u1")
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "coffee-order-backend", claims.Issuer)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", "iss", time.Hour)
	other := NewTokenManager("different", "iss", time.Hour)

	token, err := tm.Generate("u1")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", "iss", -time.Minute)

	token, err := tm.Generate("u1")
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestTokenWrongIssuer(t *testing.T) {
	a := NewTokenManager("secret", "a", time.Hour)
	b := NewTokenManager("secret", "b", time.Hour)

	token, err := a.Generate("u1")
	require.NoError(t, err)

	_, err = b.Parse(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1234", hash)

	assert.NoError(t, VerifyPassword("pw1234", hash))
	assert.Error(t, VerifyPassword("wrong", hash))
}
