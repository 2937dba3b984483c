// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a validation failure on a named field. It
// carries an optional wrapped sentinel so callers can classify the failure
// with errors.Is while still surfacing a field-level message.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message describes how the field is invalid, phrased for clients.
	Message string

	// Err is an optional underlying sentinel, e.g. ErrValidation.
	Err error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Invalid request: %s", e.Message)
	}
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
