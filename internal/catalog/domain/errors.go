package domain

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrInvalidFilter      = errors.New("invalid filter parameters")
	ErrRepository         = errors.New("repository failure")
)

// ValidationError reports which field of a listing payload was rejected.
// It unwraps to ErrInvalidListingData so callers can match the whole class
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidListingData
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
