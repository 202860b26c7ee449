package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/supportdesk/internal/api/dto"
	"github.com/supportdesk/supportdesk/internal/auth"
	"github.com/supportdesk/supportdesk/internal/service"
	apperrors "github.com/supportdesk/supportdesk/pkg/util"
)

// AuthHandler exposes registration, login and logout endpoints. It owns
// the cookie exchange: workflows only return tokens, never touch the
// request.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: authService, cookieSecure: cookieSecure}
}

// Register handles POST /auth/register. Success auto-authenticates by
// setting the session cookie.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, session := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if session != nil {
		c.Cookie(auth.SessionCookie(session.Token, session.ExpiresAt, h.cookieSecure))
	}
	return c.Status(result.Status).JSON(result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, session := h.auth.Login(c.Context(), req.Email, req.Password)
	if session != nil {
		c.Cookie(auth.SessionCookie(session.Token, session.ExpiresAt, h.cookieSecure))
	}
	return c.Status(result.Status).JSON(result)
}

// Logout handles POST /auth/logout. The cookie is cleared unconditionally.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	result := h.auth.Logout(c.Context())
	c.Cookie(auth.ClearSessionCookie(h.cookieSecure))
	return c.Status(result.Status).JSON(result)
}
