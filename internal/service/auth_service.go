package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/supportdesk/supportdesk/internal/auth"
	"github.com/supportdesk/supportdesk/internal/config"
	"github.com/supportdesk/supportdesk/internal/domain"
	"github.com/supportdesk/supportdesk/internal/events"
	"github.com/supportdesk/supportdesk/internal/observability"
	"github.com/supportdesk/supportdesk/internal/repository"
)

// User-facing messages. Unknown email and wrong password deliberately
// share msgInvalidCredentials so the response does not disclose whether an
// account exists.
const (
	msgFieldsRequired     = "All fields are required"
	msgUserExists         = "user already exists"
	msgRegistered         = "User registered successfully"
	msgLoggedIn           = "Logged in successfully"
	msgLoggedOut          = "User logged out successfully"
	msgInvalidCredentials = "invalid email or password"
	msgGenericFailure     = "Something went wrong, please try again"
)

// AuthService coordinates registration, login and logout. Every workflow
// returns a Result; unexpected store or crypto failures are recorded and
// collapsed into a generic failure, never surfaced to the caller.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	recorder   *observability.Recorder
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Recorder   *observability.Recorder
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		recorder:   deps.Recorder,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and authenticates it in one step. The
// returned Session is non-nil only on success; the transport layer turns
// it into the session cookie.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.Result, *auth.Session) {
	if name == "" || email == "" || password == "" {
		s.recorder.Event(ctx, "registration_validation_failed", "auth",
			map[string]any{"name": name, "email": email}, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusBadRequest, msgFieldsRequired), nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.recorder.Event(ctx, "registration_duplicate_email", "auth",
			map[string]any{"email": email}, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusConflict, msgUserExists), nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.recorder.Event(ctx, "registration_lookup_failed", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.recorder.Event(ctx, "registration_hash_failed", "auth", nil, observability.SeverityError, err)
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: &hash}
	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registrations race on the email uniqueness constraint;
		// the loser observes the same outcome as a plain duplicate.
		if isUniqueViolation(err) {
			s.recorder.Event(ctx, "registration_duplicate_email", "auth",
				map[string]any{"email": email}, observability.SeverityWarning, nil)
			return domain.Fail(http.StatusConflict, msgUserExists), nil
		}
		s.recorder.Event(ctx, "registration_store_failed", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	session, ok := s.issueSession(ctx, user.ID)
	if !ok {
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	s.recorder.Event(ctx, "user_registered", "auth",
		map[string]any{"user_id": user.ID, "email": email}, observability.SeverityInfo, nil)
	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Email: email},
	})
	return domain.Ok(http.StatusCreated, msgRegistered), session
}

// Login authenticates by email and password. Unknown email, an account
// without a usable password and a wrong password all fail with the same
// message.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Result, *auth.Session) {
	if email == "" || password == "" {
		s.recorder.Event(ctx, "login_validation_failed", "auth",
			map[string]any{"email": email}, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusBadRequest, msgFieldsRequired), nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recorder.Event(ctx, "login_unknown_email", "auth",
				map[string]any{"email": email}, observability.SeverityWarning, nil)
			return domain.Fail(http.StatusUnauthorized, msgInvalidCredentials), nil
		}
		s.recorder.Event(ctx, "login_lookup_failed", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	if user.PasswordHash == nil || !auth.VerifyPassword(*user.PasswordHash, password) {
		s.recorder.Event(ctx, "login_invalid_password", "auth",
			map[string]any{"user_id": user.ID}, observability.SeverityWarning, nil)
		return domain.Fail(http.StatusUnauthorized, msgInvalidCredentials), nil
	}

	session, ok := s.issueSession(ctx, user.ID)
	if !ok {
		return domain.Fail(http.StatusInternalServerError, msgGenericFailure), nil
	}

	s.recorder.Event(ctx, "user_logged_in", "auth",
		map[string]any{"user_id": user.ID}, observability.SeverityInfo, nil)
	return domain.Ok(http.StatusOK, msgLoggedIn), session
}

// Logout always succeeds; the session token is stateless, so ending the
// session is the transport clearing the cookie.
func (s *AuthService) Logout(ctx context.Context) domain.Result {
	s.recorder.Event(ctx, "user_logged_out", "auth", nil, observability.SeverityInfo, nil)
	return domain.Ok(http.StatusOK, msgLoggedOut)
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (*auth.Session, bool) {
	token, expiresAt, err := s.tokens.Issue(userID)
	if err != nil {
		s.recorder.Event(ctx, "session_issue_failed", "auth",
			map[string]any{"user_id": userID}, observability.SeverityError, err)
		return nil, false
	}
	return &auth.Session{Token: token, ExpiresAt: expiresAt}, true
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, stampEvent(event))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
