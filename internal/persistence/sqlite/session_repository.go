package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/basic-scheduler/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository using SQLite.
type SessionRepository struct {
	pool *ConnectionPool
}

func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (token, user_id, expires_at, created_at, revoked_at)
			VALUES (?, ?, ?, ?, NULL)`,
			session.Token,
			session.UserID,
			formatTime(session.ExpiresAt),
			formatTime(session.CreatedAt),
		)
		return mapError(err)
	})
	if err != nil {
		return persistence.Session{}, err
	}
	return r.GetSession(ctx, session.Token)
}

func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := r.pool.DB().QueryRowContext(ctx, `
		SELECT token, user_id, expires_at, created_at, revoked_at
		FROM sessions WHERE token = ?`, token)

	var session persistence.Session
	var expiresAt, createdAt string
	var revokedAt sql.NullString

	err := row.Scan(&session.Token, &session.UserID, &expiresAt, &createdAt, &revokedAt)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt.Valid {
		t, err := parseTime(revokedAt.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &t
	}
	return session, nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE sessions SET revoked_at = ? WHERE token = ?`,
			formatTime(revokedAt), token)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
	if err != nil {
		return persistence.Session{}, err
	}
	return r.GetSession(ctx, token)
}

// DeleteExpiredSessions prunes sessions that expired at or before the
// reference instant, revoked or not.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM sessions WHERE expires_at <= ?`, formatTime(reference))
		return mapError(err)
	})
}
