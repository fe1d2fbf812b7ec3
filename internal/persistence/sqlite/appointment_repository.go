package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/basic-scheduler/internal/persistence"
)

// AppointmentRepository implements persistence.AppointmentRepository using
// SQLite.
type AppointmentRepository struct {
	pool *ConnectionPool
}

func NewAppointmentRepository(pool *ConnectionPool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, title, description, location, type, start_at, end_at,
	customer_id, user_id, contact_id, created_at, created_by, updated_at, updated_by`

// CreateAppointment inserts a new appointment and returns it with the
// database-assigned identifier.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment persistence.Appointment) (persistence.Appointment, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO appointments (title, description, location, type, start_at, end_at,
				customer_id, user_id, contact_id, created_at, created_by, updated_at, updated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			appointment.Title,
			appointment.Description,
			appointment.Location,
			appointment.Type,
			formatTime(appointment.Start),
			formatTime(appointment.End),
			appointment.CustomerID,
			appointment.UserID,
			appointment.ContactID,
			formatTime(appointment.CreatedAt),
			appointment.CreatedBy,
			formatTime(appointment.UpdatedAt),
			appointment.UpdatedBy,
		)
		if err != nil {
			return mapError(err)
		}
		appointment.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return persistence.Appointment{}, err
	}
	return r.GetAppointment(ctx, appointment.ID)
}

// UpdateAppointment replaces the mutable fields of a stored appointment. The
// creation audit fields are left untouched.
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment persistence.Appointment) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE appointments
			SET title = ?, description = ?, location = ?, type = ?, start_at = ?, end_at = ?,
				customer_id = ?, user_id = ?, contact_id = ?, updated_at = ?, updated_by = ?
			WHERE id = ?`,
			appointment.Title,
			appointment.Description,
			appointment.Location,
			appointment.Type,
			formatTime(appointment.Start),
			formatTime(appointment.End),
			appointment.CustomerID,
			appointment.UserID,
			appointment.ContactID,
			formatTime(appointment.UpdatedAt),
			appointment.UpdatedBy,
			appointment.ID,
		)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id int64) (persistence.Appointment, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

// ListAppointments returns appointments matching the filter ordered by start
// time, then id.
func (r *AppointmentRepository) ListAppointments(ctx context.Context, filter persistence.AppointmentFilter) ([]persistence.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	var clauses []string
	var args []any

	if filter.CustomerID != 0 {
		clauses = append(clauses, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.StartsAfter != nil {
		clauses = append(clauses, "start_at >= ?")
		args = append(args, formatTime(*filter.StartsAfter))
	}
	if filter.EndsBefore != nil {
		clauses = append(clauses, "end_at <= ?")
		args = append(args, formatTime(*filter.EndsBefore))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY start_at ASC, id ASC"

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var appointments []persistence.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, rows.Err()
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

// DeleteAppointmentsForCustomer removes all of a customer's appointments.
// Zero deletions is not an error: the customer may simply have none.
func (r *AppointmentRepository) DeleteAppointmentsForCustomer(ctx context.Context, customerID int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE customer_id = ?`, customerID)
		return mapError(err)
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (persistence.Appointment, error) {
	var appointment persistence.Appointment
	var start, end, createdAt, updatedAt string

	err := row.Scan(
		&appointment.ID,
		&appointment.Title,
		&appointment.Description,
		&appointment.Location,
		&appointment.Type,
		&start,
		&end,
		&appointment.CustomerID,
		&appointment.UserID,
		&appointment.ContactID,
		&createdAt,
		&appointment.CreatedBy,
		&updatedAt,
		&appointment.UpdatedBy,
	)
	if err != nil {
		return persistence.Appointment{}, mapError(err)
	}

	if appointment.Start, err = parseTime(start); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.End, err = parseTime(end); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Appointment{}, err
	}
	if appointment.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Appointment{}, err
	}
	return appointment, nil
}

// requireRowAffected converts a zero-row write into ErrNotFound.
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
