package serialization

import (
	"github.com/born-ml/perceptron/internal/matrix"
)

// Validation limits for resource protection.
const (
	MaxLayerCount    = 1 << 12 // Maximum number of layers in a file
	MaxLayerElements = 1 << 28 // Maximum weights per layer (1 GiB of float32)
)

// Model is the persisted state of a perceptron.
type Model struct {
	LearningRate float32
	Layers       []*matrix.Dense[float32]
}

// Topology returns the layer widths implied by the weight shapes:
// the first layer's column count followed by every layer's row count.
func (m *Model) Topology() []int {
	if len(m.Layers) == 0 {
		return nil
	}
	topology := make([]int, 0, len(m.Layers)+1)
	topology = append(topology, m.Layers[0].Cols())
	for _, layer := range m.Layers {
		topology = append(topology, layer.Rows())
	}
	return topology
}
