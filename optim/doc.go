// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update step.
//
// Learners produce gradients; SGD applies them:
//
//	opt := optim.NewSGD(0.01)
//	res, err := l.Step(model, cache, dLdy, opts)
//	if err != nil {
//	    return err
//	}
//	if err := opt.Step(model, res.Grads); err != nil {
//	    return err
//	}
package optim
