package sqlite

import (
	"context"

	"github.com/example/basic-scheduler/internal/persistence"
)

// ContactRepository implements persistence.ContactRepository over the seeded
// contact directory.
type ContactRepository struct {
	pool *ConnectionPool
}

func NewContactRepository(pool *ConnectionPool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) GetContact(ctx context.Context, id int64) (persistence.Contact, error) {
	var contact persistence.Contact
	err := r.pool.DB().QueryRowContext(ctx,
		`SELECT id, name, email FROM contacts WHERE id = ?`, id).
		Scan(&contact.ID, &contact.Name, &contact.Email)
	if err != nil {
		return persistence.Contact{}, mapError(err)
	}
	return contact, nil
}

func (r *ContactRepository) ListContacts(ctx context.Context) ([]persistence.Contact, error) {
	rows, err := r.pool.DB().QueryContext(ctx,
		`SELECT id, name, email FROM contacts ORDER BY name ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var contacts []persistence.Contact
	for rows.Next() {
		var contact persistence.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email); err != nil {
			return nil, mapError(err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

// RegionRepository implements persistence.RegionRepository over the seeded
// country and division tables.
type RegionRepository struct {
	pool *ConnectionPool
}

func NewRegionRepository(pool *ConnectionPool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

func (r *RegionRepository) ListCountries(ctx context.Context) ([]persistence.Country, error) {
	rows, err := r.pool.DB().QueryContext(ctx,
		`SELECT id, name FROM countries ORDER BY id ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var countries []persistence.Country
	for rows.Next() {
		var country persistence.Country
		if err := rows.Scan(&country.ID, &country.Name); err != nil {
			return nil, mapError(err)
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

func (r *RegionRepository) GetDivision(ctx context.Context, id int64) (persistence.Division, error) {
	var division persistence.Division
	err := r.pool.DB().QueryRowContext(ctx,
		`SELECT id, name, country_id FROM divisions WHERE id = ?`, id).
		Scan(&division.ID, &division.Name, &division.CountryID)
	if err != nil {
		return persistence.Division{}, mapError(err)
	}
	return division, nil
}

func (r *RegionRepository) ListDivisions(ctx context.Context, countryID int64) ([]persistence.Division, error) {
	query := `SELECT id, name, country_id FROM divisions`
	var args []any
	if countryID != 0 {
		query += ` WHERE country_id = ?`
		args = append(args, countryID)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var divisions []persistence.Division
	for rows.Next() {
		var division persistence.Division
		if err := rows.Scan(&division.ID, &division.Name, &division.CountryID); err != nil {
			return nil, mapError(err)
		}
		divisions = append(divisions, division)
	}
	return divisions, rows.Err()
}
