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

// UserService manages staff accounts. Every mutating operation requires an
// admin principal.
type UserService struct {
	users  persistence.UserRepository
	hash   func(password string) (string, error)
	now    func() time.Time
	logger *slog.Logger
}

// NewUserService wires dependencies for user management. hash defaults to
// HashPassword with the default argon2id parameters.
func NewUserService(users persistence.UserRepository, hash func(string) (string, error), now func() time.Time, logger *slog.Logger) *UserService {
	if hash == nil {
		hash = func(password string) (string, error) {
			return HashPassword(password, DefaultArgon2idParams)
		}
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{
		users:  users,
		hash:   hash,
		now:    now,
		logger: defaultLogger(logger),
	}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// CreateUser validates and stores a new staff account.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	logger := s.loggerWith(ctx, "CreateUser", "username", params.Input.Username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "user creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	input := params.Input
	vErr := &ValidationError{}
	validateUserCore(input, vErr)
	if strings.TrimSpace(input.Password) == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	hashed, err := s.hash(input.Password)
	if err != nil {
		return
	}

	now := s.now()
	record := persistence.User{
		Username:     strings.TrimSpace(input.Username),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		IsAdmin:      input.IsAdmin,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	persisted, err := s.users.CreateUser(ctx, record)
	if err != nil {
		err = mapUserRepoError(err)
		return
	}
	user = userFromPersistence(persisted)
	return
}

// UpdateUser replaces the mutable fields of a staff account. An empty password
// keeps the stored hash.
func (s *UserService) UpdateUser(ctx context.Context, params UpdateUserParams) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	logger := s.loggerWith(ctx, "UpdateUser", "user_id", params.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "user update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	existing, err := s.users.GetUser(ctx, params.UserID)
	if err != nil {
		err = mapUserRepoError(err)
		return
	}

	input := params.Input
	vErr := &ValidationError{}
	validateUserCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Username = strings.TrimSpace(input.Username)
	updated.DisplayName = strings.TrimSpace(input.DisplayName)
	updated.IsAdmin = input.IsAdmin
	updated.UpdatedAt = s.now()
	if strings.TrimSpace(input.Password) != "" {
		updated.PasswordHash, err = s.hash(input.Password)
		if err != nil {
			return
		}
	}

	if err = s.users.UpdateUser(ctx, updated); err != nil {
		err = mapUserRepoError(err)
		return
	}
	user = userFromPersistence(updated)
	return
}

// DeleteUser removes a staff account. A user cannot delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, principal Principal, userID int64) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteUser", "user_id", userID)

	if !principal.IsAdmin {
		logger.ErrorContext(ctx, "user deletion failed", "error", ErrUnauthorized, "error_kind", ErrorKind(ErrUnauthorized))
		return ErrUnauthorized
	}
	if principal.UserID == userID {
		vErr := &ValidationError{}
		vErr.add("user_id", "cannot delete your own account")
		logger.ErrorContext(ctx, "user deletion failed", "error", vErr, "error_kind", ErrorKind(vErr))
		return vErr
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		mapped := mapUserRepoError(err)
		logger.ErrorContext(ctx, "user deletion failed", "error", mapped, "error_kind", ErrorKind(mapped))
		return mapped
	}
	logger.InfoContext(ctx, "user deleted", "deleted_by", principal.Username)
	return nil
}

// GetUser fetches one staff account.
func (s *UserService) GetUser(ctx context.Context, userID int64) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}
	record, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return User{}, mapUserRepoError(err)
	}
	return userFromPersistence(record), nil
}

// ListUsers enumerates all staff accounts ordered by username.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}
	records, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	users := make([]User, 0, len(records))
	for _, record := range records {
		users = append(users, userFromPersistence(record))
	}
	return users, nil
}

func validateUserCore(input UserInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Username) == "" {
		vErr.add("username", "username is required")
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		vErr.add("display_name", "display name is required")
	}
}

func mapUserRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		vErr := &ValidationError{}
		vErr.add("username", "username is already taken")
		return vErr
	}
	return err
}
