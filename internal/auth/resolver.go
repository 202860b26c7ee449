package auth

import (
	"context"

	"github.com/supportdesk/supportdesk/internal/domain"
	"github.com/supportdesk/supportdesk/internal/repository"
)

// Resolver maps a presented session cookie value to the acting user. The
// transport layer extracts the cookie; workflows hand the raw value here.
type Resolver struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewResolver constructs a resolver.
func NewResolver(tokens *TokenManager, users repository.UserRepository) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve returns the user bound to the cookie value, or nil when the
// request is anonymous: missing cookie, invalid or expired token, or a
// user deleted out-of-band. It never returns an error; store failures
// degrade to anonymous.
func (r *Resolver) Resolve(ctx context.Context, cookieValue string) *domain.User {
	if cookieValue == "" {
		return nil
	}
	userID, ok := r.tokens.Verify(cookieValue)
	if !ok {
		return nil
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}
