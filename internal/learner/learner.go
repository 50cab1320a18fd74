// Package learner implements the four credit-assignment rules of the
// framework: Feedback Alignment, Direct Feedback Alignment, Predictive
// Coding and Equilibrium Propagation.
//
// All four share one contract: consume a forward cache and the loss
// gradient at the output, produce per-layer weight and bias gradients.
// Callers select a variant over the closed {FA, DFA, PC, EP} set and hold
// a Learner value; rules never read or mutate model weights outside what
// the contract hands them, and a rule invoked without its required options
// fails with a *ConfigError before touching any tensor.
package learner

import (
	"fmt"
	"math"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// Kind identifies a learning rule.
type Kind int

// The closed set of learning rules.
const (
	FA Kind = iota
	DFA
	PC
	EP
)

// String returns the rule's short name.
func (k Kind) String() string {
	switch k {
	case FA:
		return "fa"
	case DFA:
		return "dfa"
	case PC:
		return "pc"
	case EP:
		return "ep"
	default:
		return "unknown"
	}
}

// ParseKind maps a short name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "fa":
		return FA, nil
	case "dfa":
		return DFA, nil
	case "pc":
		return PC, nil
	case "ep":
		return EP, nil
	default:
		return 0, fmt.Errorf("learner: unknown kind %q (want fa, dfa, pc or ep)", name)
	}
}

// GradLayer holds the gradients for one layer, shape-matched to the
// layer's W and B. Produced by a learner, consumed immediately by the
// update step, then discarded.
type GradLayer struct {
	DW *tensor.Tensor
	DB *tensor.Tensor
}

// Diagnostics carries non-mutating per-step measurements a learner emits
// alongside its gradients.
type Diagnostics struct {
	// GradNorm is the Euclidean norm over all produced gradients.
	GradNorm float64
	// Detail holds rule-specific measurements, e.g. the settled residual
	// of predictive coding or the equilibrium gap of EP.
	Detail map[string]float64
}

// Result is the output of one learner invocation.
type Result struct {
	Grads []GradLayer
	Diag  Diagnostics
}

// Modulation is a three-factor neuromodulatory gate: a scalar (reward,
// novelty, confidence) multiplying the raw gradients.
type Modulation struct {
	Scalar float64
}

// Settle configures the relaxation dynamics of PC and EP: T bounded
// iterations with step size Alpha. Beta is the nudging strength and is
// required by EP only. T = 0 is valid and means the rule operates on the
// unsettled forward cache.
type Settle struct {
	T     int
	Alpha float64
	Beta  *float64
}

// Options carries per-invocation configuration. Each rule requires
// specific fields to be present; absence is a *ConfigError, never a
// silent default.
type Options struct {
	// LR is the learning rate the caller will apply the gradients at.
	// Learners themselves never scale by it.
	LR float64
	// Feedback holds one fixed random matrix per hidden layer, required
	// by FA and DFA. The matrices are never updated by training.
	Feedback []*tensor.Tensor
	// Modulation optionally gates the gradients; absent means scalar 1.
	Modulation *Modulation
	// Settle configures PC/EP relaxation; required by those rules.
	Settle *Settle
}

// Learner is the shared strategy contract.
type Learner interface {
	Kind() Kind
	Step(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor, opts Options) (*Result, error)
}

// New returns the learner implementing the given rule.
func New(kind Kind) (Learner, error) {
	switch kind {
	case FA:
		return faLearner{}, nil
	case DFA:
		return dfaLearner{}, nil
	case PC:
		return pcLearner{}, nil
	case EP:
		return epLearner{}, nil
	default:
		return nil, fmt.Errorf("learner: unknown kind %d", kind)
	}
}

// outputDelta computes the output-layer delta dL/dy ⊙ act'(z_last).
func outputDelta(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor) *tensor.Tensor {
	last := len(m.Layers) - 1
	return dLdy.Hadamard(m.Layers[last].Act.Derivative(cache.Z[last]))
}

// deltaGrads turns per-layer deltas into weight/bias gradients:
// dW_l = delta_l · a_l^T, db_l = delta_l.
func deltaGrads(cache *nn.Cache, deltas []*tensor.Tensor) []GradLayer {
	grads := make([]GradLayer, len(deltas))
	for l, delta := range deltas {
		grads[l] = GradLayer{
			DW: delta.MatMul(cache.A[l].Transpose()),
			DB: delta.Clone(),
		}
	}
	return grads
}

// modulate scales all gradients by the three-factor gate, defaulting to 1.
func modulate(grads []GradLayer, opts Options) {
	if opts.Modulation == nil || opts.Modulation.Scalar == 1 {
		return
	}
	s := opts.Modulation.Scalar
	for _, g := range grads {
		g.DW.ScaleInPlace(s)
		g.DB.ScaleInPlace(s)
	}
}

// gradNorm returns the Euclidean norm over every element of every gradient.
func gradNorm(grads []GradLayer) float64 {
	var sum float64
	for _, g := range grads {
		w := g.DW.Norm2()
		b := g.DB.Norm2()
		sum += w*w + b*b
	}
	return math.Sqrt(sum)
}
