package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// PasswordVerifier checks a candidate password against a stored hash.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService authenticates users and manages their sessions. Every login
// attempt, successful or not, is logged with the username and timestamp.
type AuthService struct {
	users          persistence.UserRepository
	sessions       persistence.SessionRepository
	verify         PasswordVerifier
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService wires dependencies for authentication. Nil verify, now and
// logger fall back to defaults; sessionTTL zero means 24 hours.
func NewAuthService(
	users persistence.UserRepository,
	sessions persistence.SessionRepository,
	verify PasswordVerifier,
	tokenGenerator func() string,
	now func() time.Time,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		verify:         verify,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate checks the credentials and opens a session. Expired sessions
// are pruned as a side effect of each successful login.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		return AuthenticateResult{}, fmt.Errorf("AuthService is nil")
	}
	if s.tokenGenerator == nil {
		return AuthenticateResult{}, fmt.Errorf("AuthService has no token generator")
	}

	now := s.now()
	logger := s.loggerWith(ctx, "Authenticate", "username", params.Username, "attempted_at", now.UTC().Format(time.RFC3339))
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "login attempt failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "login succeeded")
	}()

	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verify(user.PasswordHash, params.Password); err != nil {
		return
	}

	session := persistence.Session{
		Token:     s.tokenGenerator(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	stored, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return
	}

	if pruneErr := s.sessions.DeleteExpiredSessions(ctx, now); pruneErr != nil {
		logger.WarnContext(ctx, "expired session cleanup failed", "error", pruneErr)
	}

	result = AuthenticateResult{
		User:    userFromPersistence(user),
		Session: sessionFromPersistence(stored),
	}
	return
}

// ValidateSession resolves a session token to the acting principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil {
		return Principal{}, fmt.Errorf("AuthService is nil")
	}
	if token == "" {
		return Principal{}, ErrUnauthorized
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}
	if session.RevokedAt != nil {
		return Principal{}, ErrSessionRevoked
	}
	if !s.now().Before(session.ExpiresAt) {
		return Principal{}, ErrSessionExpired
	}

	user, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}
	return Principal{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

// RevokeSession ends a session. Revoking an unknown token is reported as
// ErrUnauthorized so callers cannot probe for valid tokens.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	logger := s.loggerWith(ctx, "RevokeSession")

	_, err := s.sessions.RevokeSession(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		logger.WarnContext(ctx, "session revocation failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "session revoked")
	return nil
}
