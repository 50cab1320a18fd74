// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/loci-ml/loci/internal/optim"
)

// SGD applies plain stochastic gradient descent updates.
type SGD = optim.SGD

// NewSGD creates an SGD optimizer with the given learning rate.
//
// Example:
//
//	opt := optim.NewSGD(0.01)
//	err := opt.Step(model, res.Grads)
func NewSGD(lr float64) *SGD {
	return optim.NewSGD(lr)
}
