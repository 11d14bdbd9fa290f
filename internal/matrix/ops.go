package matrix

import (
	"sync/atomic"

	"github.com/born-ml/perceptron/internal/parallel"
)

var mulConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	mulConfig.Store(&cfg)
}

// SetParallelism sets the worker configuration used by MulInPlace.
// Results do not depend on it: every output element is accumulated by the
// same sequential loop whichever goroutine computes its row.
func SetParallelism(cfg parallel.Config) {
	mulConfig.Store(&cfg)
}

// Parallelism returns the worker configuration used by MulInPlace.
func Parallelism() parallel.Config {
	return *mulConfig.Load()
}

// AddInPlace adds o to m elementwise.
func (m *Dense[T]) AddInPlace(o *Dense[T]) error {
	if !m.Shape().Equal(o.Shape()) {
		return shapeError("Add", m.Shape(), o.Shape())
	}
	for i, v := range o.data {
		m.data[i] += v
	}
	return nil
}

// SubInPlace subtracts o from m elementwise.
func (m *Dense[T]) SubInPlace(o *Dense[T]) error {
	if !m.Shape().Equal(o.Shape()) {
		return shapeError("Sub", m.Shape(), o.Shape())
	}
	for i, v := range o.data {
		m.data[i] -= v
	}
	return nil
}

// ScaleInPlace multiplies every element by s.
func (m *Dense[T]) ScaleInPlace(s T) {
	for i := range m.data {
		m.data[i] *= s
	}
}

// DivInPlace divides every element by s. Division by zero follows IEEE 754.
func (m *Dense[T]) DivInPlace(s T) {
	for i := range m.data {
		m.data[i] /= s
	}
}

// MulInPlace replaces m (M×N) with the matrix product m·o (o is N×N2).
//
// The loop order is i-k-j: for each row i of m and each k, the scalar
// m[i,k] is reused across the contiguous row k of o, accumulating into row
// i of the result.
func (m *Dense[T]) MulInPlace(o *Dense[T]) error {
	if m.cols != o.rows {
		return shapeError("Mul", m.Shape(), o.Shape())
	}

	rows, inner, cols := m.rows, m.cols, o.cols
	out := make([]T, rows*cols)
	if rows == 0 || cols == 0 {
		// Product with an empty operand is the empty matrix.
		rows, cols, out = 0, 0, nil
	}

	parallel.Range(rows, inner*cols, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			c := out[i*cols : (i+1)*cols]
			a := m.data[i*inner : (i+1)*inner]
			for k, aik := range a {
				b := o.data[k*cols : (k+1)*cols]
				for j, bkj := range b {
					c[j] += aik * bkj
				}
			}
		}
	}, Parallelism())

	m.rows, m.cols, m.data = rows, cols, out
	return nil
}

// ElemMul returns the elementwise (Hadamard) product of m and o.
func (m *Dense[T]) ElemMul(o *Dense[T]) (*Dense[T], error) {
	if !m.Shape().Equal(o.Shape()) {
		return nil, shapeError("ElemMul", m.Shape(), o.Shape())
	}
	out := o.Clone()
	for i, v := range m.data {
		out.data[i] *= v
	}
	return out, nil
}

// Neg returns -m.
func (m *Dense[T]) Neg() *Dense[T] {
	out := m.Clone()
	for i := range out.data {
		out.data[i] = -out.data[i]
	}
	return out
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Dense[T]) Equal(o *Dense[T]) bool {
	if !m.Shape().Equal(o.Shape()) {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// EqualApprox is Equal with an absolute tolerance per element.
func (m *Dense[T]) EqualApprox(o *Dense[T], tol T) bool {
	if !m.Shape().Equal(o.Shape()) {
		return false
	}
	for i, v := range m.data {
		d := v - o.data[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}

// Add returns a + b.
func Add[T Float](a, b *Dense[T]) (*Dense[T], error) {
	out := a.Clone()
	if err := out.AddInPlace(b); err != nil {
		return nil, err
	}
	return out, nil
}

// Sub returns a - b.
func Sub[T Float](a, b *Dense[T]) (*Dense[T], error) {
	out := a.Clone()
	if err := out.SubInPlace(b); err != nil {
		return nil, err
	}
	return out, nil
}

// Mul returns the matrix product a·b.
func Mul[T Float](a, b *Dense[T]) (*Dense[T], error) {
	out := a.Clone()
	if err := out.MulInPlace(b); err != nil {
		return nil, err
	}
	return out, nil
}

// ElemMul returns the elementwise product of a and b.
func ElemMul[T Float](a, b *Dense[T]) (*Dense[T], error) {
	return a.ElemMul(b)
}

// Scale returns s·m.
func Scale[T Float](s T, m *Dense[T]) *Dense[T] {
	out := m.Clone()
	out.ScaleInPlace(s)
	return out
}

// Div returns m/s.
func Div[T Float](m *Dense[T], s T) *Dense[T] {
	out := m.Clone()
	out.DivInPlace(s)
	return out
}

// AddScalar returns m + s, adding s to every element.
func AddScalar[T Float](m *Dense[T], s T) *Dense[T] {
	out := m.Clone()
	out.ApplyInPlace(func(v T) T { return v + s })
	return out
}

// SubScalar returns m - s.
func SubScalar[T Float](m *Dense[T], s T) *Dense[T] {
	return AddScalar(m, -s)
}

// ScalarSub returns s - m, the matrix filled with s minus m.
func ScalarSub[T Float](s T, m *Dense[T]) *Dense[T] {
	out := m.Clone()
	out.ApplyInPlace(func(v T) T { return s - v })
	return out
}

// Neg returns -m.
func Neg[T Float](m *Dense[T]) *Dense[T] {
	return m.Neg()
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T Float](a, b *Dense[T]) bool {
	return a.Equal(b)
}
