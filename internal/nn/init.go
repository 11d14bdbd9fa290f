package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/perceptron/internal/matrix"
)

// NewSource returns a PCG source seeded from the runtime's random state,
// so every process draws different initial weights.
func NewSource() rand.Source {
	//nolint:gosec // G404: weight initialization is not security-sensitive
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// FanInNormal fills w with samples from N(0, fanIn^-0.5).
func FanInNormal(w *matrix.Dense[float32], fanIn int, src rand.Source) {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: math.Pow(float64(fanIn), -0.5),
		Src:   src,
	}
	w.ApplyInPlace(func(float32) float32 {
		return float32(dist.Rand())
	})
}
