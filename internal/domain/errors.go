package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError, which lists the failing fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrInsufficientStock is returned when a stock adjustment would leave
	// a product with negative stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInactiveUser is returned when a deactivated account tries to list
	// a product.
	ErrInactiveUser = errors.New("user is inactive")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Fields []FieldError
	base   error
}

// NewValidationError creates a ValidationError for a single field.
// If base is nil, ErrValidation is used.
func NewValidationError(field, message string, base error) *ValidationError {
	ve := &ValidationError{base: base}
	ve.Add(field, message)
	return ve
}

// Add records another failing field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field has been recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Err returns e as an error if it holds any field errors, otherwise nil.
// It avoids the typed-nil interface trap when returning from Validate.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return e.Unwrap().Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap returns the base error so errors.Is(err, ErrValidation) holds.
func (e *ValidationError) Unwrap() error {
	if e.base == nil {
		return ErrValidation
	}
	return e.base
}

// Is lets any ValidationError match ErrValidation, even with a custom base.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
