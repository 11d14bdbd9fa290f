package matrix

import "fmt"

// Shape is the (rows, cols) pair of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns Rows*Cols.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate reports whether the shape can back a matrix.
//
// Negative dimensions are rejected, as is any shape where exactly one
// dimension is zero (0×n and m×0). 0×0 is the empty matrix.
func (s Shape) Validate() error {
	if s.Rows < 0 || s.Cols < 0 {
		return fmt.Errorf("%w: negative dimension in %s", ErrInvalidShape, s)
	}
	if (s.Rows == 0) != (s.Cols == 0) {
		return fmt.Errorf("%w: degenerate %s", ErrInvalidShape, s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// IsSquare reports whether Rows == Cols.
func (s Shape) IsSquare() bool {
	return s.Rows == s.Cols
}

// String returns "RxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}
