package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation signals invalid record fields.
var ErrValidation = errors.New("validation failed")

// ValidationError wraps ErrValidation with the names of the offending fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fields: %s",
		ErrValidation.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for the given field names.
func NewValidationError(fields []string) error {
	return &ValidationError{Fields: fields}
}
