package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction Errors.

	// ErrInvalidArgument indicates a missing or empty argument, such as the export path.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDocument indicates the export could not be loaded or is not well-formed XML.
	ErrDocument = errors.New("document could not be loaded")

	// ErrValidation indicates an issue item breaks a structural invariant,
	// such as a missing or repeated reporter.
	ErrValidation = errors.New("validation failed")

	// ErrNullAttribute indicates a required attribute is missing from an element.
	ErrNullAttribute = errors.New("required attribute missing")

	// ErrDateFormat indicates a date field does not match the export date format.
	ErrDateFormat = errors.New("unparsable date")
)

// ItemError reports a failure while mapping a single issue item.
// It unwraps to the underlying domain error.
type ItemError struct {
	// Position is the 1-based position of the item in document order.
	Position int

	// Key is the issue key when it could be read.
	Key string

	// Err is the underlying failure.
	Err error
}

// Error implements error.
func (e *ItemError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("item %d (%s): %v", e.Position, e.Key, e.Err)
	}
	return fmt.Sprintf("item %d: %v", e.Position, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ItemError) Unwrap() error {
	return e.Err
}
