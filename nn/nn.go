// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// Activation selects a layer nonlinearity.
type Activation = nn.Activation

// Activation constants.
const (
	Linear Activation = nn.Linear
	Tanh   Activation = nn.Tanh
	ReLU   Activation = nn.ReLU
)

// ParseActivation maps a lowercase name ("linear", "tanh", "relu") to its
// Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Layer is one fully connected layer: weights [out, in], bias [out, 1]
// and an activation.
type Layer = nn.Layer

// MLP is a stack of fully connected layers.
type MLP = nn.MLP

// Cache records the activations and pre-activations of one forward pass.
// A[0] is the input; Z[l] is the pre-activation of layer l.
type Cache = nn.Cache

// InitMLP builds a model from layer sizes and per-layer activations.
// Weights are drawn from a seeded normal scaled by 1/sqrt(fan-in); biases
// start at zero.
//
// Example:
//
//	model, err := nn.InitMLP(f, []int{784, 128, 10},
//	    []nn.Activation{nn.Tanh, nn.Linear}, 42)
func InitMLP(f tensor.Factory, sizes []int, acts []Activation, seed uint32) (*MLP, error) {
	return nn.InitMLP(f, sizes, acts, seed)
}

// MSE returns 0.5 * squared L2 distance between prediction and target.
func MSE(yHat, y *tensor.Tensor) float64 {
	return nn.MSE(yHat, y)
}

// MSEGrad returns the gradient of MSE with respect to the prediction.
func MSEGrad(yHat, y *tensor.Tensor) *tensor.Tensor {
	return nn.MSEGrad(yHat, y)
}
