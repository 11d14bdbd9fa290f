package nn

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Sigmoid returns a new matrix with σ(x) = 1 / (1 + exp(-x)) applied to
// every element of m.
//
// Results lie strictly inside (0, 1): values that would round to 0 or 1
// in the element type are clamped to the nearest representable value
// inside the interval.
func Sigmoid[T matrix.Float](m *matrix.Dense[T]) *matrix.Dense[T] {
	out := m.Clone()
	SigmoidInPlace(out)
	return out
}

// SigmoidInPlace applies σ to every element of m.
func SigmoidInPlace[T matrix.Float](m *matrix.Dense[T]) {
	m.ApplyInPlace(sigmoid[T])
}

func sigmoid[T matrix.Float](x T) T {
	if unsafe.Sizeof(x) == 4 {
		return T(sigmoid32(float32(x)))
	}
	return T(sigmoid64(float64(x)))
}

var (
	maxBelowOne32 = math32.Nextafter(1, 0)
	maxBelowOne64 = math.Nextafter(1, 0)
)

func sigmoid32(x float32) float32 {
	y := 1 / (1 + math32.Exp(-x))
	return min(max(y, math32.SmallestNonzeroFloat32), maxBelowOne32)
}

func sigmoid64(x float64) float64 {
	y := 1 / (1 + math.Exp(-x))
	return min(max(y, math.SmallestNonzeroFloat64), maxBelowOne64)
}
