package matrix

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/internal/parallel"
)

func TestTransposed_Rectangular(t *testing.T) {
	m := mustRows(t, [][]float32{{1, 2, 3}, {4, 5, 6}})
	want := mustRows(t, [][]float32{{1, 4}, {2, 5}, {3, 6}})

	got := m.Transposed()
	assert.True(t, want.Equal(got), "got\n%s", got)
	// Transposed leaves the receiver alone.
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, m.Shape())
}

func TestTranspose_SquareInPlace(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	buf := m.RawData()

	m.Transpose()

	assert.Equal(t, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9}, m.Values())
	assert.Same(t, &buf[0], &m.RawData()[0], "square transpose must not reallocate")
}

func TestTranspose_NoOps(t *testing.T) {
	empty, err := Zeros[float32](0, 0)
	require.NoError(t, err)
	empty.Transpose()
	assert.True(t, empty.IsEmpty())

	one := mustRows(t, [][]float32{{5}})
	one.Transpose()
	assert.Equal(t, []float32{5}, one.Values())
}

func TestTranspose_Vector(t *testing.T) {
	v, err := Vector([]float64{1, 2, 3})
	require.NoError(t, err)

	v.Transpose()
	assert.Equal(t, Shape{Rows: 1, Cols: 3}, v.Shape())
	assert.Equal(t, []float64{1, 2, 3}, v.Values())
}

func TestTranspose_Involution(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for trial := 0; trial < 30; trial++ {
		m := randomDense(t, rng, 1+rng.IntN(8), 1+rng.IntN(8))
		assert.True(t, m.Equal(m.Transposed().Transposed()), "trial %d", trial)
	}
}

func TestTranspose_ElementMapping(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	m := randomDense(t, rng, 4, 7)
	tr := m.Transposed()

	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			want, err := m.At(i, j)
			require.NoError(t, err)
			got, err := tr.At(j, i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestTranspose_ParallelMatchesSequential(t *testing.T) {
	prev := Parallelism()
	defer SetParallelism(prev)

	rng := rand.New(rand.NewPCG(7, 8))
	m := randomDense(t, rng, 97, 41)

	SetParallelism(parallel.Sequential())
	seq := m.Transposed()

	SetParallelism(parallel.Config{Enabled: true, NumWorkers: 6, MinChunkSize: 1})
	par := m.Transposed()

	require.Equal(t, Shape{Rows: 41, Cols: 97}, par.Shape())
	assert.True(t, seq.Equal(par))
	for i := range 97 {
		for j := range 41 {
			want, err := m.At(i, j)
			require.NoError(t, err)
			got, err := par.At(j, i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}
