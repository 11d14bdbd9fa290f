package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix of T values.
// Element (i, j) lives at data[i*cols+j] and len(data) == rows*cols always.
type Dense[T Float] struct {
	rows, cols int
	data       []T
}

// Zeros creates an all-zero rows×cols matrix.
//
// Zeros(0, 0) returns the empty matrix. Shapes with exactly one zero
// dimension or a negative dimension fail with ErrInvalidShape.
func Zeros[T Float](rows, cols int) (*Dense[T], error) {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Dense[T]{rows: rows, cols: cols, data: make([]T, s.NumElements())}, nil
}

// FromValues creates a rows×cols matrix from values in row-major order.
// The slice is copied.
func FromValues[T Float](rows, cols int, values []T) (*Dense[T], error) {
	m, err := Zeros[T](rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != len(m.data) {
		return nil, fmt.Errorf("%w: %dx%d requires %d values, got %d",
			ErrInvalidShape, rows, cols, len(m.data), len(values))
	}
	copy(m.data, values)
	return m, nil
}

// FromRows creates a matrix from nested rows. All rows must have the same
// length; the number of rows and the row length give the shape.
func FromRows[T Float](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 {
		return &Dense[T]{}, nil
	}
	cols := len(rows[0])
	m, err := Zeros[T](len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidShape, i, len(row), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Vector creates a len(values)×1 column vector.
func Vector[T Float](values []T) (*Dense[T], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrInvalidShape)
	}
	return FromValues(len(values), 1, values)
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int {
	return m.cols
}

// Dims returns the number of rows and columns.
func (m *Dense[T]) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// Len returns the number of elements.
func (m *Dense[T]) Len() int {
	return len(m.data)
}

// Shape returns the matrix shape.
func (m *Dense[T]) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// IsEmpty reports whether m is the 0×0 matrix.
func (m *Dense[T]) IsEmpty() bool {
	return len(m.data) == 0
}

func (m *Dense[T]) indexOf(op string, i, j int) (int, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, indexError(op, i, j, m.Shape())
	}
	return i*m.cols + j, nil
}

// At returns the element at (i, j).
func (m *Dense[T]) At(i, j int) (T, error) {
	idx, err := m.indexOf("At", i, j)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v to the element at (i, j).
func (m *Dense[T]) Set(i, j int, v T) error {
	idx, err := m.indexOf("Set", i, j)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Row returns a copy of row i.
func (m *Dense[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= m.rows {
		return nil, indexError("Row", i, 0, m.Shape())
	}
	row := make([]T, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row, nil
}

// Values returns a copy of the elements in row-major order.
func (m *Dense[T]) Values() []T {
	values := make([]T, len(m.data))
	copy(values, m.data)
	return values
}

// RawData returns the owned buffer.
// WARNING: writes through the slice mutate the matrix.
func (m *Dense[T]) RawData() []T {
	return m.data
}

// Fill sets every element to v.
func (m *Dense[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// ApplyInPlace replaces every element x with fn(x).
func (m *Dense[T]) ApplyInPlace(fn func(T) T) {
	for i, v := range m.data {
		m.data[i] = fn(v)
	}
}

// Clone returns a deep copy.
func (m *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{rows: m.rows, cols: m.cols, data: m.Values()}
}

// Move transfers ownership of the buffer to a new matrix and leaves m as
// the empty 0×0 matrix.
func (m *Dense[T]) Move() *Dense[T] {
	moved := &Dense[T]{rows: m.rows, cols: m.cols, data: m.data}
	m.rows, m.cols, m.data = 0, 0, nil
	return moved
}

// String renders one row per line.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
