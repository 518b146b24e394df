package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	// ErrNoConversionPath means the requested unit pair has no direct
	// conversion edge. Callers treat this as "skip", never as fatal.
	ErrNoConversionPath = errors.New("no conversion path")

	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrSessionFinished = errors.New("session already finished")
)

// ValidationError rejects invalid input at the boundary, before it can reach
// the engines. The engines themselves never receive invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
