package nn

import "errors"

// Common errors.
var (
	ErrInvalidTopology = errors.New("nn: invalid topology")
	ErrNoLayers        = errors.New("nn: perceptron has no layers")
)
