package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation signals a request that failed field validation.
	ErrValidation = errors.New("invalid request format")
	// ErrInternal signals an unexpected failure while answering.
	ErrInternal = errors.New("internal error")
	// ErrStorage signals a question log failure.
	ErrStorage = errors.New("question log unavailable")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationError wraps ErrValidation with the per-field messages.
type ValidationError struct {
	Fields []FieldError
}

// Details joins the field messages into a single human-readable line.
func (e *ValidationError) Details() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Details()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for one or more fields.
func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}
