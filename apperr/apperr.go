// Package apperr defines the error taxonomy shared by the store, blob and
// handler layers. Handlers map these onto HTTP status codes in one place
// instead of each call site picking its own string and code.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means no valid session accompanied the request.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound means the record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the record exists but belongs to another user.
	// Externally it renders the same as ErrNotFound so ownership of an id
	// is never leaked.
	ErrForbidden = errors.New("record not owned by caller")
)

// ValidationError rejects input before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError wraps a failure from an external collaborator. Op distinguishes
// the blob store from the database so the two are reported separately.
type RemoteError struct {
	Op  string // "storage" or "database"
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Remote wraps err as a RemoteError for the given collaborator.
func Remote(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}
