package askdex

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
)

// APIError carries the structured error body returned by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("askdex: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Unwrap maps well-known API error codes to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "record_not_found":
		return ErrRecordNotFound
	case "validation_failed":
		return ErrValidation
	case "invalid_argument":
		return ErrInvalidArgument
	}
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return nil
}
