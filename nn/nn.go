// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

// Perceptron is a fully connected sigmoid classifier.
type Perceptron = nn.Perceptron

// Prediction is the arg-max label of an output vector with its value.
type Prediction = nn.Prediction

// Option configures a Perceptron.
type Option = nn.Option

// Propagation selects which weights carry the error backwards in Train.
type Propagation = nn.Propagation

// Propagation modes.
const (
	PropagateUpdated   = nn.PropagateUpdated
	PropagatePreUpdate = nn.PropagatePreUpdate
)

// DefaultLearningRate is used when WithLearningRate is not given.
const DefaultLearningRate = nn.DefaultLearningRate

// Errors.
var (
	ErrInvalidTopology = nn.ErrInvalidTopology
	ErrNoLayers        = nn.ErrNoLayers
)

// New creates a perceptron with randomly initialized weights.
//
// Example:
//
//	p, err := nn.New([]int{784, 150, 10})
func New(topology []int, opts ...Option) (*Perceptron, error) {
	return nn.New(topology, opts...)
}

// NewEmpty creates a perceptron without layers, ready for Load.
func NewEmpty(opts ...Option) *Perceptron {
	return nn.NewEmpty(opts...)
}

// Options.
var (
	WithLearningRate = nn.WithLearningRate
	WithSource       = nn.WithSource
	WithLogger       = nn.WithLogger
	WithPropagation  = nn.WithPropagation
)

// ParsePropagation parses "updated" or "pre-update".
func ParsePropagation(s string) (Propagation, error) {
	return nn.ParsePropagation(s)
}

// Sigmoid returns a new matrix with the logistic function applied to every
// element.
func Sigmoid[T matrix.Float](m *matrix.Dense[T]) *matrix.Dense[T] {
	return nn.Sigmoid(m)
}
