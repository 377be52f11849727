package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes we translate into domain errors.
const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// isUniqueViolation reports whether err is a unique index violation, e.g. a
// concurrent insert winning the slug race.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// isInvalidID reports whether err is a uuid cast failure. Lookups by a
// non-uuid path segment, e.g. a slug sent to an id-only route, land here and
// are treated as not found rather than as a server error.
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}
