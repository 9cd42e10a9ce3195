package domain

import (
	"errors"

	"github.com/kailas-cloud/askdex/internal/domain/record"
)

var (
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidArgument signals a malformed caller argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrGenerationFailed signals a text-generation provider failure.
	// Absorbed inside the answer composer, never surfaces to API callers.
	ErrGenerationFailed = errors.New("generation failed")
)

// Validation errors are defined in the record package, next to the schema
// that produces them. Re-exported here so upper layers keep working in
// domain terms.
var (
	ErrValidation      = record.ErrValidation
	NewValidationError = record.NewValidationError
)

// ValidationError lists the offending field names behind ErrValidation.
type ValidationError = record.ValidationError
