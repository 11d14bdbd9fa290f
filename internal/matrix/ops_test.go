package matrix

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/parallel"
)

func TestAddSubInPlace(t *testing.T) {
	a := mustRows(t, [][]float32{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float32{{10, 20}, {30, 40}})

	require.NoError(t, a.AddInPlace(b))
	assert.Equal(t, []float32{11, 22, 33, 44}, a.Values())

	require.NoError(t, a.SubInPlace(b))
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Values())
}

func TestShapeMismatch(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})   // 2×3
	b := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}) // 3×2
	before := a.Values()

	tests := []struct {
		name string
		op   func() error
	}{
		{"AddInPlace", func() error { return a.AddInPlace(b) }},
		{"SubInPlace", func() error { return a.SubInPlace(b) }},
		{"Add", func() error { _, err := Add(a, b); return err }},
		{"Sub", func() error { _, err := Sub(a, b); return err }},
		{"ElemMul", func() error { _, err := ElemMul(a, b); return err }},
		{"MulInPlace", func() error { return a.MulInPlace(a) }},
		{"Mul", func() error { _, err := Mul(b, b); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			require.ErrorIs(t, err, ErrShapeMismatch)

			var se *ShapeError
			require.True(t, errors.As(err, &se))
			assert.NotEmpty(t, se.Op)
		})
	}

	// Failed operations never truncate or pad the receiver.
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, a.Shape())
	assert.Equal(t, before, a.Values())
}

func TestScaleDiv(t *testing.T) {
	m := mustRows(t, [][]float64{{1, -2}, {4, 8}})

	assert.Equal(t, []float64{2, -4, 8, 16}, Scale(2, m).Values())
	assert.Equal(t, []float64{0.5, -1, 2, 4}, Div(m, 2).Values())
	// Free functions leave the operand untouched.
	assert.Equal(t, []float64{1, -2, 4, 8}, m.Values())
}

func TestScalarOperators(t *testing.T) {
	m := mustRows(t, [][]float32{{0.25, 0.5}, {0.75, 1}})

	assert.Equal(t, []float32{0.75, 0.5, 0.25, 0}, ScalarSub(1, m).Values())
	assert.Equal(t, []float32{1.25, 1.5, 1.75, 2}, AddScalar(m, 1).Values())
	assert.Equal(t, []float32{-0.75, -0.5, -0.25, 0}, SubScalar(m, 1).Values())
	assert.Equal(t, []float32{-0.25, -0.5, -0.75, -1}, Neg(m).Values())
}

func TestMul(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := Mul(a, b)
	require.NoError(t, err)

	want := mustRows(t, [][]float64{{58, 64}, {139, 154}})
	assert.True(t, want.Equal(c), "got\n%s", c)
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, a.Shape())
}

func TestMul_IdentityLeavesMatrixUnchanged(t *testing.T) {
	id := mustRows(t, [][]float32{{1, 0}, {0, 1}})
	for _, n := range []int{1, 2, 5} {
		values := make([]float32, 2*n)
		for i := range values {
			values[i] = float32(i) - 1.5
		}
		m, err := FromValues(2, n, values)
		require.NoError(t, err)

		got, err := Mul(id, m)
		require.NoError(t, err)
		assert.True(t, got.Equal(m), "2x%d", n)
	}
}

func TestMul_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	a := randomDense(t, rng, 7, 5)
	b := randomDense(t, rng, 5, 9)

	got, err := Mul(a, b)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(toGonum(a), toGonum(b))
	assert.True(t, floats.EqualApprox(want.RawMatrix().Data, got.Values(), 1e-12))
}

func TestMul_Associative(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 20; trial++ {
		m, k, n, p := 1+rng.IntN(6), 1+rng.IntN(6), 1+rng.IntN(6), 1+rng.IntN(6)
		a := randomDense(t, rng, m, k)
		b := randomDense(t, rng, k, n)
		c := randomDense(t, rng, n, p)

		ab, err := Mul(a, b)
		require.NoError(t, err)
		left, err := Mul(ab, c)
		require.NoError(t, err)

		bc, err := Mul(b, c)
		require.NoError(t, err)
		right, err := Mul(a, bc)
		require.NoError(t, err)

		assert.True(t, left.EqualApprox(right, 1e-9), "trial %d", trial)
	}
}

func TestMul_ParallelMatchesSequential(t *testing.T) {
	prev := Parallelism()
	defer SetParallelism(prev)

	rng := rand.New(rand.NewPCG(5, 6))
	a := randomDense(t, rng, 130, 70)
	b := randomDense(t, rng, 70, 3)

	SetParallelism(parallel.Sequential())
	seq, err := Mul(a, b)
	require.NoError(t, err)

	SetParallelism(parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})
	par, err := Mul(a, b)
	require.NoError(t, err)

	assert.True(t, seq.Equal(par), "parallel product must be bit-identical")
}

func TestMul_Empty(t *testing.T) {
	a, err := Zeros[float64](0, 0)
	require.NoError(t, err)
	b, err := Zeros[float64](0, 0)
	require.NoError(t, err)

	c, err := Mul(a, b)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestElemMul(t *testing.T) {
	a := mustRows(t, [][]float32{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float32{{5, 6}, {7, 8}})

	c, err := a.ElemMul(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 12, 21, 32}, c.Values())
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Values())
	assert.Equal(t, []float32{5, 6, 7, 8}, b.Values())
}

func TestElemMul_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for trial := 0; trial < 20; trial++ {
		rows, cols := 1+rng.IntN(5), 1+rng.IntN(5)
		a := randomDense(t, rng, rows, cols)
		b := randomDense(t, rng, rows, cols)
		c := randomDense(t, rng, rows, cols)

		ab, err := ElemMul(a, b)
		require.NoError(t, err)
		ba, err := ElemMul(b, a)
		require.NoError(t, err)
		assert.True(t, ab.EqualApprox(ba, 1e-12), "commutative, trial %d", trial)

		bPlusC, err := Add(b, c)
		require.NoError(t, err)
		lhs, err := ElemMul(a, bPlusC)
		require.NoError(t, err)
		ac, err := ElemMul(a, c)
		require.NoError(t, err)
		rhs, err := Add(ab, ac)
		require.NoError(t, err)
		assert.True(t, lhs.EqualApprox(rhs, 1e-12), "distributive, trial %d", trial)
	}
}

func TestEqual(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}})
	b := mustRows(t, [][]float64{{1}, {2}, {3}})

	assert.True(t, Equal(a, a.Clone()))
	assert.False(t, Equal(a, b), "same values, different shape")
	assert.True(t, a.EqualApprox(mustRows(t, [][]float64{{1, 2, 3.0000001}}), 1e-6))
	assert.False(t, a.EqualApprox(b, 1))
}
