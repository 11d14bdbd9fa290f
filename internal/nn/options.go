package nn

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// DefaultLearningRate is used when WithLearningRate is not given.
const DefaultLearningRate = 0.3

// Propagation selects which weights carry the error back to the previous
// layer during Train.
type Propagation int

const (
	// PropagateUpdated multiplies the error by the transpose of the layer
	// after its update has been applied. This is the historical behaviour
	// of the model format and the default.
	PropagateUpdated Propagation = iota

	// PropagatePreUpdate uses the weights as they were before the update,
	// which is textbook backpropagation. Models trained this way converge
	// along a slightly different path and are not bit-compatible with
	// PropagateUpdated training runs.
	PropagatePreUpdate
)

// String returns the flag spelling of p.
func (p Propagation) String() string {
	switch p {
	case PropagateUpdated:
		return "updated"
	case PropagatePreUpdate:
		return "pre-update"
	default:
		return fmt.Sprintf("Propagation(%d)", int(p))
	}
}

// ParsePropagation parses "updated" or "pre-update".
func ParsePropagation(s string) (Propagation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "updated", "":
		return PropagateUpdated, nil
	case "pre-update", "preupdate", "canonical":
		return PropagatePreUpdate, nil
	default:
		return 0, fmt.Errorf("nn: unknown propagation %q (want updated or pre-update)", s)
	}
}

type options struct {
	learningRate float32
	src          rand.Source
	logger       *slog.Logger
	propagation  Propagation
}

// Option configures a Perceptron.
type Option func(*options)

// WithLearningRate sets the learning rate.
func WithLearningRate(lr float32) Option {
	return func(o *options) { o.learningRate = lr }
}

// WithSource sets the random source used for weight initialization.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithLogger sets the logger for Save and Load. Nil discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPropagation selects the error propagation semantics of Train.
func WithPropagation(p Propagation) Option {
	return func(o *options) { o.propagation = p }
}

func buildOptions(opts []Option) options {
	o := options{learningRate: DefaultLearningRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.src == nil {
		o.src = NewSource()
	}
	return o
}
