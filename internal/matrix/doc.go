// Package matrix provides a generic, row-major dense matrix used by the
// perceptron engine.
//
// A Dense value exclusively owns its buffer. Clone produces an independent
// copy and Move transfers the buffer, leaving the source as an empty 0×0
// matrix. Every operation that depends on shapes or indices validates them
// and returns an error matching ErrShapeMismatch, ErrIndexOutOfRange or
// ErrInvalidShape instead of panicking.
//
// Compound operations (AddInPlace, MulInPlace, ...) mutate their receiver.
// The free functions (Add, Mul, Scale, ...) are built on top of them and
// always return a new matrix, leaving their operands untouched.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
//	b := a.Transposed()     // 3×2
//	c, err := matrix.Mul(a, b) // 2×2
package matrix
