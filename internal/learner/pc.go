package learner

import (
	"math"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// pcLearner implements Predictive Coding: inference as local iterative
// relaxation. The input stays clamped to the batch input and the output
// to the target implied by dL/dy; hidden activations settle for T steps
// under their local prediction errors, and gradients are read off the
// settled errors rather than a backpropagated chain.
type pcLearner struct{}

func (pcLearner) Kind() Kind {
	return PC
}

func (pcLearner) Step(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor, opts Options) (*Result, error) {
	if err := validateSettle("pc", opts.Settle, false); err != nil {
		return nil, err
	}

	nl := len(m.Layers)
	alpha := opts.Settle.Alpha

	// Activation state: x[0] clamped to the input, x[nl] clamped to the
	// target y = a_last - dL/dy (squared-error reading of the gradient).
	x := make([]*tensor.Tensor, nl+1)
	x[0] = cache.A[0]
	for i := 1; i < nl; i++ {
		x[i] = cache.A[i].Clone()
	}
	x[nl] = cache.A[nl].Clone().SubInPlace(dLdy)

	// errors recomputes each layer's top-down prediction and the local
	// error e_{l+1} = x_{l+1} - act(W_l x_l + b_l).
	errors := func() (z, e []*tensor.Tensor) {
		z = make([]*tensor.Tensor, nl)
		e = make([]*tensor.Tensor, nl+1)
		for l := 0; l < nl; l++ {
			z[l] = m.Layers[l].W.MatMul(x[l]).AddInPlace(m.Layers[l].B)
			mu := m.Layers[l].Act.Apply(z[l])
			e[l+1] = x[l+1].Clone().SubInPlace(mu)
		}
		return z, e
	}

	for t := 0; t < opts.Settle.T; t++ {
		z, e := errors()
		// Hidden nodes move down the local energy gradient:
		// x_i += alpha * (W_i^T (e_{i+1} ⊙ act'(z_i)) - e_i).
		for i := 1; i < nl; i++ {
			gated := e[i+1].Hadamard(m.Layers[i].Act.Derivative(z[i]))
			step := m.Layers[i].W.Transpose().MatMul(gated).
				SubInPlace(e[i]).
				ScaleInPlace(alpha)
			x[i].AddInPlace(step)
		}
	}

	// Read gradients off the settled errors. With T = 0 the hidden errors
	// are exactly zero and only the output layer carries a gradient.
	z, e := errors()
	grads := make([]GradLayer, nl)
	var residual float64
	for l := 0; l < nl; l++ {
		n := e[l+1].Norm2()
		residual += n * n
		delta := e[l+1].Hadamard(m.Layers[l].Act.Derivative(z[l])).ScaleInPlace(-1)
		grads[l] = GradLayer{
			DW: delta.MatMul(x[l].Transpose()),
			DB: delta,
		}
	}

	modulate(grads, opts)
	return &Result{
		Grads: grads,
		Diag: Diagnostics{
			GradNorm: gradNorm(grads),
			Detail: map[string]float64{
				"residual":   math.Sqrt(residual),
				"iterations": float64(opts.Settle.T),
			},
		},
	}, nil
}

// validateSettle checks the relaxation options shared by PC and EP.
// needBeta marks the nudging strength as required (EP).
func validateSettle(name string, s *Settle, needBeta bool) error {
	if s == nil {
		return &ConfigError{Learner: name, Field: "settle", Reason: "required"}
	}
	if s.T < 0 {
		return &ConfigError{Learner: name, Field: "settle.T", Reason: "must be >= 0"}
	}
	if s.Alpha < 0 {
		return &ConfigError{Learner: name, Field: "settle.alpha", Reason: "must be >= 0"}
	}
	if needBeta {
		if s.Beta == nil {
			return &ConfigError{Learner: name, Field: "settle.beta", Reason: "required"}
		}
		if *s.Beta == 0 {
			return &ConfigError{Learner: name, Field: "settle.beta", Reason: "must be non-zero"}
		}
	}
	return nil
}
