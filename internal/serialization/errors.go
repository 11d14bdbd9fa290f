package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrIO       = errors.New("serialization: i/o failure")
	ErrCorrupt  = errors.New("serialization: corrupt model data")
	ErrTooLarge = errors.New("serialization: model exceeds size limits")
)

// FormatError provides detailed information about malformed model data.
// It unwraps to ErrCorrupt or ErrTooLarge.
type FormatError struct {
	Field   string // Field being decoded (e.g. "rows", "weights")
	Layer   int    // Layer index, or -1 for header fields
	Details string // Additional details
	Err     error  // Sentinel the error matches
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Layer >= 0 {
		return fmt.Sprintf("%v: layer %d %s: %s", e.Err, e.Layer, e.Field, e.Details)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Details)
}

// Unwrap returns the sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func corrupt(field string, layer int, format string, args ...any) error {
	return &FormatError{Field: field, Layer: layer, Details: fmt.Sprintf(format, args...), Err: ErrCorrupt}
}

func tooLarge(field string, layer int, format string, args ...any) error {
	return &FormatError{Field: field, Layer: layer, Details: fmt.Sprintf(format, args...), Err: ErrTooLarge}
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
