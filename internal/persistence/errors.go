package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")

	// ErrDuplicate is returned when an insert or update violates a
	// uniqueness constraint, e.g. reusing a username.
	ErrDuplicate = errors.New("persistence: duplicate record")

	// ErrForeignKeyViolation is returned when a record references a row
	// that does not exist, or a delete would orphan dependent rows.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")

	// ErrConstraintViolation is returned for any other constraint failure.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
