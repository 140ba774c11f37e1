package orm

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a query expects exactly one row but finds none.
var ErrNotFound = errors.New("orm: not found")

var errInvalidHandle = errors.New("orm: nil or uninitialized store handle")

// StorageError reports that the store could not be reached or refused a
// structural change (connection, ping, CREATE TABLE). It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("orm: storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IntegrityError reports a rejected write: a duplicate unique value, a
// dangling reference, or input that would violate a constraint. The
// enclosing transaction has been rolled back when this is returned.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("orm: integrity error: %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// QueryError reports a failed read. No partial results accompany it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("orm: query error: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// IsStorageError reports whether err (or anything it wraps) is a *StorageError.
func IsStorageError(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// IsIntegrityError reports whether err (or anything it wraps) is an *IntegrityError.
func IsIntegrityError(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}

// IsQueryError reports whether err (or anything it wraps) is a *QueryError.
func IsQueryError(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}
