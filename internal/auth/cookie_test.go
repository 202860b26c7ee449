package auth

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestSessionCookie(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)
	cookie := SessionCookie("token-value", expiresAt, true)

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, expiresAt, cookie.Expires)
	assert.True(t, cookie.HTTPOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, fiber.CookieSameSiteLaxMode, cookie.SameSite)
}

func TestClearSessionCookie(t *testing.T) {
	cookie := ClearSessionCookie(true)

	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.Expires.Before(time.Now()))
	assert.True(t, cookie.HTTPOnly)
}
