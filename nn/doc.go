// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for feed-forward models.
//
// This package contains:
//   - MLP: a stack of fully connected layers with per-layer activations
//   - Cache: the recorded activations and pre-activations of one forward pass
//   - Activation: Linear, Tanh and ReLU nonlinearities
//   - MSE / MSEGrad: the mean-squared-error loss surface
//
// # Basic Usage
//
//	f := tensor.NewFactory()
//	model, err := nn.InitMLP(f, []int{4, 8, 2}, []nn.Activation{nn.Tanh, nn.Linear}, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	yHat, cache := model.Forward(x)
//	loss := nn.MSE(yHat, y)
//	_ = cache // hand the cache to a learner for credit assignment
package nn
