package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/basic-scheduler/internal/persistence"
)

// CustomerRepository implements persistence.CustomerRepository using SQLite.
type CustomerRepository struct {
	pool *ConnectionPool
}

func NewCustomerRepository(pool *ConnectionPool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, name, address, postal_code, phone, division_id,
	created_at, created_by, updated_at, updated_by`

func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer persistence.Customer) (persistence.Customer, error) {
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO customers (name, address, postal_code, phone, division_id,
				created_at, created_by, updated_at, updated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			customer.Name,
			customer.Address,
			customer.PostalCode,
			customer.Phone,
			customer.DivisionID,
			formatTime(customer.CreatedAt),
			customer.CreatedBy,
			formatTime(customer.UpdatedAt),
			customer.UpdatedBy,
		)
		if err != nil {
			return mapError(err)
		}
		customer.ID, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return persistence.Customer{}, err
	}
	return r.GetCustomer(ctx, customer.ID)
}

func (r *CustomerRepository) UpdateCustomer(ctx context.Context, customer persistence.Customer) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE customers
			SET name = ?, address = ?, postal_code = ?, phone = ?, division_id = ?,
				updated_at = ?, updated_by = ?
			WHERE id = ?`,
			customer.Name,
			customer.Address,
			customer.PostalCode,
			customer.Phone,
			customer.DivisionID,
			formatTime(customer.UpdatedAt),
			customer.UpdatedBy,
			customer.ID,
		)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

func (r *CustomerRepository) GetCustomer(ctx context.Context, id int64) (persistence.Customer, error) {
	row := r.pool.DB().QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]persistence.Customer, error) {
	rows, err := r.pool.DB().QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var customers []persistence.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// DeleteCustomer removes a customer row. Callers delete the customer's
// appointments first; a remaining reference surfaces as a foreign key
// violation.
func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id int64) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		return requireRowAffected(result)
	})
}

func scanCustomer(row rowScanner) (persistence.Customer, error) {
	var customer persistence.Customer
	var createdAt, updatedAt string

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Address,
		&customer.PostalCode,
		&customer.Phone,
		&customer.DivisionID,
		&createdAt,
		&customer.CreatedBy,
		&updatedAt,
		&customer.UpdatedBy,
	)
	if err != nil {
		return persistence.Customer{}, mapError(err)
	}
	if customer.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Customer{}, err
	}
	if customer.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Customer{}, err
	}
	return customer, nil
}
