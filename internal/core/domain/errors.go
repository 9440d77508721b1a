package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrForbidden              = errors.New("forbidden")
	ErrDependencyNotFound     = errors.New("dependency not found")
	ErrDependencyNotSatisfied = errors.New("dependency not satisfied")
)

// ValidationError reports a malformed or missing field. Always locally
// recoverable; the HTTP layer maps it to a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
