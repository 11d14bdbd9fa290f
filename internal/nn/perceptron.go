package nn

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/serialization"
)

// Perceptron is a fully connected feedforward classifier with sigmoid
// activations and no biases.
//
// Layer i holds a (topology[i+1], topology[i]) weight matrix, so a column
// vector flows through the network as output = σ(layer · input).
//
// A Perceptron owns its layers. Train and Load mutate it; Forward and
// Predict only read. It is not safe for concurrent use while training.
//
// Example:
//
//	p, err := nn.New([]int{784, 150, 10}, nn.WithLearningRate(0.2))
//	for _, s := range samples {
//	    if err := p.Train(s.Input, s.Target); err != nil {
//	        return err
//	    }
//	}
//	pred, err := p.Predict(image)
type Perceptron struct {
	learningRate float32
	layers       []*matrix.Dense[float32]
	propagation  Propagation
	logger       *slog.Logger
}

// Prediction is the arg-max of the network output.
type Prediction struct {
	Label      int     // Index of the largest output
	Confidence float32 // Output value at Label
}

// New creates a perceptron for the given layer widths (input, hidden...,
// output). Every weight of layer i is drawn from N(0, topology[i]^-0.5).
func New(topology []int, opts ...Option) (*Perceptron, error) {
	if len(topology) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 widths, got %d", ErrInvalidTopology, len(topology))
	}
	for i, width := range topology {
		if width <= 0 {
			return nil, fmt.Errorf("%w: width %d at index %d", ErrInvalidTopology, width, i)
		}
	}

	o := buildOptions(opts)
	p := newPerceptron(o)

	p.layers = make([]*matrix.Dense[float32], 0, len(topology)-1)
	for i := 0; i+1 < len(topology); i++ {
		layer, err := matrix.Zeros[float32](topology[i+1], topology[i])
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrInvalidTopology, i, err)
		}
		FanInNormal(layer, topology[i], o.src)
		p.layers = append(p.layers, layer)
	}
	return p, nil
}

// NewEmpty creates a perceptron without layers, to be filled by Load or
// SetLayers.
func NewEmpty(opts ...Option) *Perceptron {
	return newPerceptron(buildOptions(opts))
}

func newPerceptron(o options) *Perceptron {
	return &Perceptron{
		learningRate: o.learningRate,
		propagation:  o.propagation,
		logger:       o.logger.With("component", "perceptron"),
	}
}

// LearningRate returns the learning rate used by Train.
func (p *Perceptron) LearningRate() float32 {
	return p.learningRate
}

// SetLearningRate changes the learning rate used by Train.
func (p *Perceptron) SetLearningRate(lr float32) {
	p.learningRate = lr
}

// Propagation returns the error propagation semantics used by Train.
func (p *Perceptron) Propagation() Propagation {
	return p.propagation
}

// Topology returns the layer widths, or nil when there are no layers.
func (p *Perceptron) Topology() []int {
	return (&serialization.Model{Layers: p.layers}).Topology()
}

// Layers returns deep copies of the weight matrices.
func (p *Perceptron) Layers() []*matrix.Dense[float32] {
	layers := make([]*matrix.Dense[float32], len(p.layers))
	for i, layer := range p.layers {
		layers[i] = layer.Clone()
	}
	return layers
}

// SetLayers replaces every layer with copies of layers. The layers must be
// non-empty and chain: layers[i].Cols() == layers[i-1].Rows().
func (p *Perceptron) SetLayers(layers []*matrix.Dense[float32]) error {
	if len(layers) == 0 {
		return ErrNoLayers
	}
	owned := make([]*matrix.Dense[float32], len(layers))
	for i, layer := range layers {
		if layer == nil || layer.IsEmpty() {
			return fmt.Errorf("%w: layer %d is empty", ErrInvalidTopology, i)
		}
		if i > 0 && layer.Cols() != layers[i-1].Rows() {
			return fmt.Errorf("%w: layer %d: %w", ErrInvalidTopology, i,
				&matrix.ShapeError{Op: "SetLayers", Left: layers[i-1].Shape(), Right: layer.Shape()})
		}
		owned[i] = layer.Clone()
	}
	p.layers = owned
	return nil
}

// Forward runs inference and returns the output layer activations.
// len(input) must equal the first layer's column count.
func (p *Perceptron) Forward(input []float32) ([]float32, error) {
	acts, err := p.activations("Forward", input)
	if err != nil {
		return nil, err
	}
	return acts[len(acts)-1].Values(), nil
}

// Predict returns the index and value of the largest output. Ties resolve
// to the lowest index.
func (p *Perceptron) Predict(input []float32) (Prediction, error) {
	out, err := p.Forward(input)
	if err != nil {
		return Prediction{}, err
	}
	best := Prediction{Label: 0, Confidence: out[0]}
	for i, v := range out[1:] {
		if v > best.Confidence {
			best = Prediction{Label: i + 1, Confidence: v}
		}
	}
	return best, nil
}

// activations returns the input followed by the output of every layer.
func (p *Perceptron) activations(op string, input []float32) ([]*matrix.Dense[float32], error) {
	if len(p.layers) == 0 {
		return nil, ErrNoLayers
	}
	if first := p.layers[0]; len(input) != first.Cols() {
		return nil, &matrix.ShapeError{Op: op, Left: first.Shape(), Right: matrix.Shape{Rows: len(input), Cols: 1}}
	}

	x, err := matrix.Vector(input)
	if err != nil {
		return nil, err
	}

	acts := make([]*matrix.Dense[float32], 0, len(p.layers)+1)
	acts = append(acts, x)
	for i, layer := range p.layers {
		out, err := matrix.Mul(layer, x)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		SigmoidInPlace(out)
		acts = append(acts, out)
		x = out
	}
	return acts, nil
}

// Train performs one stochastic gradient step on a single example.
//
// With a = activations (a[0] = input) and e = target - a[k], each layer
// from last to first is updated by
//
//	layer += lr * (e ⊙ a[i+1] ⊙ (1 - a[i+1])) · a[i]ᵀ
//
// and e becomes layerᵀ · e for the previous layer, using the weights
// selected by the Propagation option.
func (p *Perceptron) Train(input, target []float32) error {
	acts, err := p.activations("Train", input)
	if err != nil {
		return err
	}

	output := acts[len(acts)-1]
	if len(target) != output.Rows() {
		return &matrix.ShapeError{Op: "Train", Left: output.Shape(), Right: matrix.Shape{Rows: len(target), Cols: 1}}
	}
	t, err := matrix.Vector(target)
	if err != nil {
		return err
	}
	errs, err := matrix.Sub(t, output)
	if err != nil {
		return err
	}

	for i := len(p.layers) - 1; i >= 0; i-- {
		layer := p.layers[i]

		delta, err := p.delta(errs, acts[i], acts[i+1])
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		var next *matrix.Dense[float32]
		if i > 0 && p.propagation == PropagatePreUpdate {
			if next, err = matrix.Mul(layer.Transposed(), errs); err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
		}

		if err := layer.AddInPlace(delta); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		if i > 0 && p.propagation == PropagateUpdated {
			if next, err = matrix.Mul(layer.Transposed(), errs); err != nil {
				return fmt.Errorf("layer %d: %w", i, err)
			}
		}
		errs = next
	}
	return nil
}

// delta computes lr * (e ⊙ out ⊙ (1 - out)) · inᵀ.
func (p *Perceptron) delta(errs, in, out *matrix.Dense[float32]) (*matrix.Dense[float32], error) {
	grad, err := errs.ElemMul(out)
	if err != nil {
		return nil, err
	}
	if grad, err = grad.ElemMul(matrix.ScalarSub(1, out)); err != nil {
		return nil, err
	}
	grad.ScaleInPlace(p.learningRate)
	if err := grad.MulInPlace(in.Transposed()); err != nil {
		return nil, err
	}
	return grad, nil
}

// Save writes the learning rate and every layer to path.
// Failures are logged and returned; they match serialization.ErrIO when
// the file cannot be created or written.
func (p *Perceptron) Save(path string) error {
	model := &serialization.Model{LearningRate: p.learningRate, Layers: p.layers}
	if err := serialization.WriteFile(path, model); err != nil {
		p.logger.Error("save failed", "path", path, "error", err)
		return fmt.Errorf("nn: save: %w", err)
	}
	p.logger.Info("model saved", "path", path, "topology", model.Topology())
	return nil
}

// Load replaces the learning rate and the entire layer sequence with the
// model stored at path. On failure the perceptron is left unchanged.
func (p *Perceptron) Load(path string) error {
	model, err := serialization.ReadFile(path)
	if err != nil {
		p.logger.Error("load failed", "path", path, "error", err)
		return fmt.Errorf("nn: load: %w", err)
	}
	if len(model.Layers) == 0 {
		p.logger.Error("load failed", "path", path, "error", ErrNoLayers)
		return fmt.Errorf("nn: load %s: %w", path, ErrNoLayers)
	}

	p.learningRate = model.LearningRate
	p.layers = model.Layers
	p.logger.Info("model loaded", "path", path, "topology", model.Topology(), "learning_rate", p.learningRate)
	return nil
}
