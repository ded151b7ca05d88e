package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUniqueViolation marks an insert rejected by a unique constraint.
// Services map it to their domain conflict errors (already voted,
// already registered, phone taken).
var ErrUniqueViolation = errors.New("unique constraint violation")

// ErrForeignKeyViolation marks a write rejected by a foreign key, such as
// deleting a candidate that already received ballots.
var ErrForeignKeyViolation = errors.New("foreign key constraint violation")

const (
	pqUniqueViolationCode     = "23505"
	pqForeignKeyViolationCode = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolationCode
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqForeignKeyViolationCode
	}
	return false
}
