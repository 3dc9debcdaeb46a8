// Package repositories contains the Mongo persistence layer.
package repositories

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoDocument is returned when a lookup matches nothing.
var ErrNoDocument = errors.New("repositories: document not found")

// DuplicateKeyError reports a unique-index violation, carrying the field
// whose constraint was hit so callers can produce a field-scoped error.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "repositories: duplicate value for field " + e.Field
}

// Unique indexes are created with names of the form uniq_<field>
// (see pkg/database.EnsureIndexes); the server echoes the index name
// inside the E11000 message.
var dupIndexRe = regexp.MustCompile(`uniq_([a-z_]+)`)

// translateErr maps driver errors to repository-level errors.
// A duplicate-key write becomes a *DuplicateKeyError naming the field;
// mongo.ErrNoDocuments becomes ErrNoDocument; anything else passes through.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	if mongo.IsDuplicateKeyError(err) {
		field := "unknown"
		if m := dupIndexRe.FindStringSubmatch(err.Error()); m != nil {
			field = m[1]
		}
		return &DuplicateKeyError{Field: field}
	}
	return err
}

// IsDuplicate reports whether err is a unique-constraint violation and
// returns the offending field.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field, true
	}
	return "", false
}
