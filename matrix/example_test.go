// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix_test

import (
	"fmt"

	"github.com/born-ml/perceptron/matrix"
)

func ExampleDense_Transpose() {
	m, _ := matrix.FromRows([][]float32{{1, 2, 3}, {4, 5, 6}})
	m.Transpose()
	fmt.Println(m)
	// Output:
	// 1 4
	// 2 5
	// 3 6
}

func ExampleMul() {
	id, _ := matrix.FromRows([][]float64{{1, 0}, {0, 1}})
	m, _ := matrix.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	p, _ := matrix.Mul(id, m)
	fmt.Println(p.Equal(m))

	_, err := matrix.Mul(m, m)
	fmt.Println(err)
	// Output:
	// true
	// matrix: Mul: incompatible shapes 2x3 and 2x3
}
