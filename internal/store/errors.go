package store

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a document with the given ID does not exist
// in the named collection.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ValidationError indicates malformed input, e.g. a profile referencing an
// unknown vehicle.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// CorruptError indicates a document that exists on disk but cannot be
// parsed. Callers that want "empty on corruption" semantics must catch
// this explicitly; the store never hides the condition.
type CorruptError struct {
	Document string
	Err      error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("document %s is corrupt: %v", e.Document, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsCorrupt reports whether err is a CorruptError.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
