// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package learn provides the public API for the four credit-assignment
// rules: Feedback Alignment, Direct Feedback Alignment, Predictive Coding
// and Equilibrium Propagation.
//
// All four implement one contract: consume a forward cache and the loss
// gradient at the output, produce per-layer weight and bias gradients plus
// diagnostics. None of them propagate derivatives through the forward
// weights the way backpropagation does.
//
// # Basic Usage
//
//	l, err := learn.New(learn.DFA)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fb := learn.NewDirectFeedback(f, model.Sizes(), 7)
//	res, err := l.Step(model, cache, nn.MSEGrad(yHat, y), learn.Options{
//	    LR:       0.02,
//	    Feedback: fb,
//	})
//
// # Rules
//
// FA and DFA replace the transposed forward weights with fixed random
// feedback matrices; they require Options.Feedback. PC and EP run bounded
// relaxation dynamics; they require Options.Settle, and EP additionally
// requires Settle.Beta.
package learn
