package learner

import (
	"fmt"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// dfaLearner implements Direct Feedback Alignment. The output delta and
// the gradient formula match FA, but each hidden layer's delta is a
// single hop: the raw output error dL/dy projected through that layer's
// fixed matrix, never chained through intermediate layers.
type dfaLearner struct{}

func (dfaLearner) Kind() Kind {
	return DFA
}

func (dfaLearner) Step(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor, opts Options) (*Result, error) {
	if err := validateDirectFeedback(m, opts.Feedback); err != nil {
		return nil, err
	}

	nl := len(m.Layers)
	deltas := make([]*tensor.Tensor, nl)
	deltas[nl-1] = outputDelta(m, cache, dLdy)
	for l := 0; l < nl-1; l++ {
		deltas[l] = opts.Feedback[l].
			MatMul(dLdy).
			Hadamard(m.Layers[l].Act.Derivative(cache.Z[l]))
	}

	grads := deltaGrads(cache, deltas)
	modulate(grads, opts)
	return &Result{
		Grads: grads,
		Diag:  Diagnostics{GradNorm: gradNorm(grads)},
	}, nil
}

// validateDirectFeedback checks the DFA feedback matrices: one per hidden
// layer, each mapping output-error space directly into that layer's
// activation space.
func validateDirectFeedback(m *nn.MLP, feedback []*tensor.Tensor) error {
	hidden := len(m.Layers) - 1
	outDim := m.Layers[hidden].W.Rows()
	if feedback == nil {
		return &ConfigError{Learner: "dfa", Field: "feedback.B", Reason: "required"}
	}
	if len(feedback) != hidden {
		return &ConfigError{
			Learner: "dfa",
			Field:   "feedback.B",
			Reason:  fmt.Sprintf("want %d matrices (one per hidden layer), got %d", hidden, len(feedback)),
		}
	}
	for l, b := range feedback {
		want := tensor.Shape{Rows: m.Layers[l].W.Rows(), Cols: outDim}
		if !b.Shape().Equal(want) {
			return &ConfigError{
				Learner: "dfa",
				Field:   "feedback.B",
				Reason:  fmt.Sprintf("matrix %d has shape %s, want %s", l, b.Shape(), want),
			}
		}
	}
	return nil
}
