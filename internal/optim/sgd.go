// Package optim applies learner gradients to a model.
//
// The framework's update rule is plain gradient descent; credit assignment
// lives entirely in the learners, so there is deliberately no momentum or
// adaptive state here.
package optim

import (
	"fmt"

	"github.com/loci-ml/loci/internal/learner"
	"github.com/loci-ml/loci/internal/nn"
)

// SGD performs the update W -= lr*dW, b -= lr*db for every layer.
type SGD struct {
	lr float64
}

// NewSGD creates an optimizer with the given learning rate. A rate of 0 is
// valid and makes Step a no-op, which is how audit invocations are applied.
func NewSGD(lr float64) *SGD {
	return &SGD{lr: lr}
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Step applies one gradient-descent update in place. The gradients are not
// modified, so a caller may inspect them afterwards.
func (s *SGD) Step(m *nn.MLP, grads []learner.GradLayer) error {
	if len(grads) != len(m.Layers) {
		return fmt.Errorf("optim: got %d gradient layers for a %d-layer model",
			len(grads), len(m.Layers))
	}
	if s.lr == 0 {
		return nil
	}
	for l, g := range grads {
		m.Layers[l].W.SubInPlace(g.DW.Clone().ScaleInPlace(s.lr))
		m.Layers[l].B.SubInPlace(g.DB.Clone().ScaleInPlace(s.lr))
	}
	return nil
}
