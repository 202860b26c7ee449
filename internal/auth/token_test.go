package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, ok := tm.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyForgedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := other.Issue("user-1")
	require.NoError(t, err)

	_, ok := tm.Verify(token)
	assert.False(t, ok)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := tm.Verify(expired)
	assert.False(t, ok)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, ok := tm.Verify(token)
		assert.False(t, ok, "token %q should be invalid", token)
	}
}

func TestMissingSecretFailsClosed(t *testing.T) {
	tm := NewTokenManager("", 60)

	_, _, err := tm.Issue("user-1")
	assert.Error(t, err)

	// Even a token signed with an empty secret must not verify.
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	_, ok := tm.Verify(token)
	assert.False(t, ok)
}
