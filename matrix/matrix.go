// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/parallel"
)

// Float is the element type constraint: ~float32 or ~float64.
type Float = matrix.Float

// Dense is a row-major dense matrix.
type Dense[T Float] = matrix.Dense[T]

// Shape holds the dimensions of a matrix.
type Shape = matrix.Shape

// ShapeError reports the operands of a shape-mismatched operation.
type ShapeError = matrix.ShapeError

// Iterator is a mutable bounds-checked cursor over a matrix.
type Iterator[T Float] = matrix.Iterator[T]

// ConstIterator is a read-only bounds-checked cursor over a matrix.
type ConstIterator[T Float] = matrix.ConstIterator[T]

// ParallelConfig controls how matrix multiplication is split across
// goroutines.
type ParallelConfig = parallel.Config

// Errors.
var (
	ErrShapeMismatch   = matrix.ErrShapeMismatch
	ErrIndexOutOfRange = matrix.ErrIndexOutOfRange
	ErrInvalidShape    = matrix.ErrInvalidShape
)

// Zeros returns a rows x cols matrix of zeros. Zeros(0, 0) is the empty
// matrix.
func Zeros[T Float](rows, cols int) (*Dense[T], error) {
	return matrix.Zeros[T](rows, cols)
}

// FromValues returns a rows x cols matrix holding a copy of values in
// row-major order.
func FromValues[T Float](rows, cols int, values []T) (*Dense[T], error) {
	return matrix.FromValues(rows, cols, values)
}

// FromRows builds a matrix from equally long rows.
//
// Example:
//
//	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
func FromRows[T Float](rows [][]T) (*Dense[T], error) {
	return matrix.FromRows(rows)
}

// Vector returns a column vector (len(values) x 1).
func Vector[T Float](values []T) (*Dense[T], error) {
	return matrix.Vector(values)
}

// Add returns a + b.
func Add[T Float](a, b *Dense[T]) (*Dense[T], error) { return matrix.Add(a, b) }

// Sub returns a - b.
func Sub[T Float](a, b *Dense[T]) (*Dense[T], error) { return matrix.Sub(a, b) }

// Mul returns the matrix product a·b.
func Mul[T Float](a, b *Dense[T]) (*Dense[T], error) { return matrix.Mul(a, b) }

// ElemMul returns the elementwise product of a and b.
func ElemMul[T Float](a, b *Dense[T]) (*Dense[T], error) { return matrix.ElemMul(a, b) }

// Scale returns s·m.
func Scale[T Float](s T, m *Dense[T]) *Dense[T] { return matrix.Scale(s, m) }

// Div returns m/s.
func Div[T Float](m *Dense[T], s T) *Dense[T] { return matrix.Div(m, s) }

// ScalarSub returns s - m.
func ScalarSub[T Float](s T, m *Dense[T]) *Dense[T] { return matrix.ScalarSub(s, m) }

// Neg returns -m.
func Neg[T Float](m *Dense[T]) *Dense[T] { return matrix.Neg(m) }

// SetParallelism sets the worker configuration of matrix multiplication.
func SetParallelism(cfg ParallelConfig) { matrix.SetParallelism(cfg) }

// DefaultParallelism returns a configuration sized to the machine.
func DefaultParallelism() ParallelConfig { return parallel.DefaultConfig() }
