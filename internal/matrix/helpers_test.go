package matrix

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func mustRows[T Float](t *testing.T, rows [][]T) *Dense[T] {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func randomDense(t *testing.T, rng *rand.Rand, rows, cols int) *Dense[float64] {
	t.Helper()
	values := make([]float64, rows*cols)
	for i := range values {
		values[i] = rng.Float64()*2 - 1
	}
	m, err := FromValues(rows, cols, values)
	require.NoError(t, err)
	return m
}

// toGonum copies m into a gonum matrix used as a reference implementation.
func toGonum(m *Dense[float64]) *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), m.Values())
}
