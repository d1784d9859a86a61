package database

import (
	"errors"

	"github.com/lib/pq"
)

const (
	sqlStateUniqueViolation = "23505"
)

// UniqueViolation reports whether err is a Postgres unique violation and
// returns the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if string(pqErr.Code) != sqlStateUniqueViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

// IsUniqueViolation reports whether err violates the named constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	name, ok := UniqueViolation(err)
	if !ok {
		return false
	}
	return constraint == "" || name == constraint
}
