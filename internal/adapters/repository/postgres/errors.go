package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique_violation on
// the named constraint. Constraint names are part of the schema contract, so
// matching on them is stable across migrations.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" { // unique_violation
		return false
	}
	return pqErr.Constraint == constraint
}
