// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a multilayer sigmoid perceptron trained by
// per-example gradient descent.
//
// # Overview
//
// A Perceptron with topology [n0, n1, ..., nk] holds k weight matrices;
// layer i maps an n(i)-vector to an n(i+1)-vector followed by the logistic
// sigmoid. There are no biases.
//
// # Basic Usage
//
//	p, err := nn.New([]int{784, 150, 10}, nn.WithLearningRate(0.2))
//	if err != nil {
//	    return err
//	}
//	for _, s := range trainingSet {
//	    _ = p.Train(s.Input, s.Target) // one SGD step
//	}
//	_ = p.Save("model.bin")
//
//	q := nn.NewEmpty()
//	_ = q.Load("model.bin")
//	pred, _ := q.Predict(image)
//
// # Model Files
//
// Save writes a little-endian float32 learning rate, a uint64 layer count
// and, per layer, uint64 rows, uint64 cols and rows*cols float32 weights in
// row-major order. Load reads every layer back.
//
// # Error Propagation
//
// Train hands the error to the previous layer through the weights after
// they were updated (PropagateUpdated). WithPropagation(PropagatePreUpdate)
// selects classic backpropagation through the pre-update weights.
package nn
