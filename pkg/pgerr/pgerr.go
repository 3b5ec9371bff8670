// Package pgerr classifies postgres driver errors that signal a lost concurrent write.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeExclusionViolation   = "23P01"
	CodeUniqueViolation      = "23505"
)

// IsConcurrencyConflict reports whether err means another transaction won the race:
// a serialization failure, a deadlock, or a violated exclusion constraint.
func IsConcurrencyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeExclusionViolation:
		return true
	default:
		return false
	}
}

// IsUniqueViolation reports a duplicate key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == CodeUniqueViolation
}
