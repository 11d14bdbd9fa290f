package matrix

import "github.com/born-ml/perceptron/internal/parallel"

// Transpose transposes m in place.
//
// Square matrices swap (i,j) with (j,i) for i<j without reallocating.
// Rectangular matrices are rewritten into a new N×M buffer. 0×0 and 1×1
// matrices are left untouched.
func (m *Dense[T]) Transpose() {
	switch {
	case m.rows <= 1 && m.cols <= 1:
		return
	case m.rows == m.cols:
		m.transposeSquare()
	default:
		m.transposeRect()
	}
}

// Transposed returns a transposed copy of m.
func (m *Dense[T]) Transposed() *Dense[T] {
	out := m.Clone()
	out.Transpose()
	return out
}

func (m *Dense[T]) transposeSquare() {
	n := m.cols
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			m.data[i*n+j], m.data[j*n+i] = m.data[j*n+i], m.data[i*n+j]
		}
	}
}

func (m *Dense[T]) transposeRect() {
	rows, cols := m.rows, m.cols
	out := make([]T, len(m.data))
	// Row i of m becomes column i of out; workers never share a column.
	parallel.For(rows, func(i int) {
		src := m.data[i*cols : (i+1)*cols]
		for j, v := range src {
			out[j*rows+i] = v
		}
	}, Parallelism())
	m.rows, m.cols, m.data = cols, rows, out
}
