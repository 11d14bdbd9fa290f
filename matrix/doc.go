// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the public API of the dense matrix engine.
//
// A Dense[T] owns a contiguous row-major buffer of float32 or float64
// values. Binary operations check shapes and return errors matching
// ErrShapeMismatch instead of panicking.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
//	a.Transpose()                 // now 3x2
//	b, _ := matrix.Mul(a, a.Transposed())
//	fmt.Println(b)
package matrix
