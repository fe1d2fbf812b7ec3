package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/basic-scheduler/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, display_name, is_admin, password_hash, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) (persistence.User, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO users (username, display_name, is_admin, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			user.Username,
			user.DisplayName,
			user.IsAdmin,
			user.PasswordHash,
			formatTime(user.CreatedAt),
			formatTime(user.UpdatedAt),
		)
		if err != nil {
			return mapError(err)
		}
		user.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return persistence.User{}, err
	}
	return r.GetUser(ctx, user.ID)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE users
			SET username = ?, display_name = ?, is_admin = ?, password_hash = ?, updated_at = ?
			WHERE id = ?`,
			user.Username,
			user.DisplayName,
			user.IsAdmin,
			user.PasswordHash,
			formatTime(user.UpdatedAt),
			user.ID,
		)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (persistence.User, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername looks a user up by username. The username column is
// declared COLLATE NOCASE, so the lookup is case-insensitive.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (persistence.User, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	rows, err := r.pool.DB().QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []persistence.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

func scanUser(row rowScanner) (persistence.User, error) {
	var user persistence.User
	var createdAt, updatedAt string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.IsAdmin,
		&user.PasswordHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.User{}, mapError(err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.User{}, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.User{}, err
	}
	return user, nil
}
