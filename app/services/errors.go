// Package services holds the business rules between controllers and
// repositories.
package services

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password
	// logins so the response does not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled is returned when a soft-disabled user logs in.
	ErrAccountDisabled = errors.New("account has been deactivated")

	// ErrNotFound covers missing categories/products on lookups and writes.
	ErrNotFound = errors.New("resource not found")

	// ErrCategoryMissing is returned when a product references a category
	// that does not exist.
	ErrCategoryMissing = errors.New("category does not exist")
)

// ConflictError reports a uniqueness violation on a named field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AsConflict extracts a ConflictError if err is one.
func AsConflict(err error) (*ConflictError, bool) {
	var c *ConflictError
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}
