package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportdesk/supportdesk/internal/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestResolveValidSession(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Ada", Email: "ada@example.com"},
	}}
	resolver := NewResolver(tm, repo)

	token, _, err := tm.Issue("user-1")
	require.NoError(t, err)

	user := resolver.Resolve(context.Background(), token)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
}

func TestResolveMissingCookie(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	resolver := NewResolver(tm, &stubUserRepo{users: map[string]*domain.User{}})

	assert.Nil(t, resolver.Resolve(context.Background(), ""))
}

func TestResolveInvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	forger := NewTokenManager("other-secret", 60)
	resolver := NewResolver(tm, &stubUserRepo{users: map[string]*domain.User{
		"user-1": {ID: "user-1"},
	}})

	forged, _, err := forger.Issue("user-1")
	require.NoError(t, err)

	assert.Nil(t, resolver.Resolve(context.Background(), forged))
	assert.Nil(t, resolver.Resolve(context.Background(), "garbage"))
}

func TestResolveDeletedUser(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	resolver := NewResolver(tm, &stubUserRepo{users: map[string]*domain.User{}})

	token, _, err := tm.Issue("gone-user")
	require.NoError(t, err)

	assert.Nil(t, resolver.Resolve(context.Background(), token))
}
