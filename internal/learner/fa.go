package learner

import (
	"fmt"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

// faLearner implements Feedback Alignment: the backward pass of
// backpropagation with the forward weights' transpose replaced by fixed
// random matrices, chained layer to layer. This removes the weight
// transport requirement; the forward weights align to the feedback over
// training.
type faLearner struct{}

func (faLearner) Kind() Kind {
	return FA
}

func (faLearner) Step(m *nn.MLP, cache *nn.Cache, dLdy *tensor.Tensor, opts Options) (*Result, error) {
	if err := validateChainedFeedback(m, opts.Feedback); err != nil {
		return nil, err
	}

	nl := len(m.Layers)
	deltas := make([]*tensor.Tensor, nl)
	deltas[nl-1] = outputDelta(m, cache, dLdy)
	// Walk backward, chaining the error through the fixed feedback
	// matrices instead of W^T.
	for l := nl - 2; l >= 0; l-- {
		deltas[l] = opts.Feedback[l].
			MatMul(deltas[l+1]).
			Hadamard(m.Layers[l].Act.Derivative(cache.Z[l]))
	}

	grads := deltaGrads(cache, deltas)
	modulate(grads, opts)
	return &Result{
		Grads: grads,
		Diag:  Diagnostics{GradNorm: gradNorm(grads)},
	}, nil
}

// validateChainedFeedback checks the FA feedback matrices: one per hidden
// layer, each mapping the next layer's delta space into this layer's.
func validateChainedFeedback(m *nn.MLP, feedback []*tensor.Tensor) error {
	hidden := len(m.Layers) - 1
	if feedback == nil {
		return &ConfigError{Learner: "fa", Field: "feedback.B", Reason: "required"}
	}
	if len(feedback) != hidden {
		return &ConfigError{
			Learner: "fa",
			Field:   "feedback.B",
			Reason:  fmt.Sprintf("want %d matrices (one per hidden layer), got %d", hidden, len(feedback)),
		}
	}
	for l, b := range feedback {
		want := tensor.Shape{Rows: m.Layers[l].W.Rows(), Cols: m.Layers[l+1].W.Rows()}
		if !b.Shape().Equal(want) {
			return &ConfigError{
				Learner: "fa",
				Field:   "feedback.B",
				Reason:  fmt.Sprintf("matrix %d has shape %s, want %s", l, b.Shape(), want),
			}
		}
	}
	return nil
}
