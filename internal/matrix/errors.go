package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch   = errors.New("matrix: shape mismatch")
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	ErrInvalidShape    = errors.New("matrix: invalid shape")
)

// ShapeError describes operands whose dimensions are incompatible for an
// operation. It matches ErrShapeMismatch with errors.Is.
type ShapeError struct {
	Op    string // Operation name (e.g. "Add", "Mul")
	Left  Shape  // Receiver or left operand
	Right Shape  // Right operand
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("matrix: %s: incompatible shapes %s and %s", e.Op, e.Left, e.Right)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func shapeError(op string, left, right Shape) error {
	return &ShapeError{Op: op, Left: left, Right: right}
}

func indexError(op string, i, j int, s Shape) error {
	return fmt.Errorf("%s(%d,%d) on %s: %w", op, i, j, s, ErrIndexOutOfRange)
}
