// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. Uniqueness is checked at the use case layer first; this catches
// the race where two requests pass the check concurrently.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
