package learner

import (
	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// epLearner implements Equilibrium Propagation: a two-phase contrastive
// procedure. The network first relaxes to a free equilibrium; a second
// relaxation starts from the free state with the output nudged toward the
// target by beta, and the weight gradient is the finite difference of the
// two equilibria's activity correlations, divided by beta.
type epLearner struct{}

func (epLearner) Kind() Kind {
	return EP
}

func (epLearner) Step(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor, opts Options) (*Result, error) {
	if err := validateSettle("ep", opts.Settle, true); err != nil {
		return nil, err
	}

	nl := len(m.Layers)
	beta := *opts.Settle.Beta

	free := relax(m, cache.A, opts.Settle)

	// Nudged seed: the free equilibrium with only the output perturbed
	// toward the target.
	seed := make([]*tensor.Tensor, nl+1)
	copy(seed, free)
	seed[nl] = free[nl].Clone().SubInPlace(dLdy.Clone().ScaleInPlace(beta))
	nudged := relax(m, seed, opts.Settle)

	grads := make([]GradLayer, nl)
	for l := 0; l < nl; l++ {
		dw := nudged[l+1].MatMul(nudged[l].Transpose()).
			SubInPlace(free[l+1].MatMul(free[l].Transpose())).
			ScaleInPlace(1 / beta)
		db := nudged[l+1].Clone().SubInPlace(free[l+1]).ScaleInPlace(1 / beta)
		grads[l] = GradLayer{DW: dw, DB: db}
	}

	var gap float64
	for i := 1; i <= nl; i++ {
		gap += nudged[i].Clone().SubInPlace(free[i]).Norm2()
	}

	modulate(grads, opts)
	return &Result{
		Grads: grads,
		Diag: Diagnostics{
			GradNorm: gradNorm(grads),
			Detail: map[string]float64{
				"beta":            beta,
				"equilibrium_gap": gap,
				"iterations":      float64(opts.Settle.T),
			},
		},
	}, nil
}

// relax runs T local fixed-point updates with step alpha, starting from
// seed. Node i is driven by the bottom-up affine input plus, for
// non-output nodes, the top-down term W_i^T x_{i+1}; each update moves
// x_i a fraction alpha toward act(drive). seed[0] (the input) stays
// clamped and is shared, all other nodes are cloned.
func relax(m *nn.MLP, seed []*tensor.Tensor, s *Settle) []*tensor.Tensor {
	nl := len(m.Layers)
	x := make([]*tensor.Tensor, nl+1)
	x[0] = seed[0]
	for i := 1; i <= nl; i++ {
		x[i] = seed[i].Clone()
	}
	for t := 0; t < s.T; t++ {
		for i := 1; i <= nl; i++ {
			drive := m.Layers[i-1].W.MatMul(x[i-1]).AddInPlace(m.Layers[i-1].B)
			if i < nl {
				drive.AddInPlace(m.Layers[i].W.Transpose().MatMul(x[i+1]))
			}
			step := m.Layers[i-1].Act.Apply(drive).
				SubInPlace(x[i]).
				ScaleInPlace(s.Alpha)
			x[i].AddInPlace(step)
		}
	}
	return x
}
