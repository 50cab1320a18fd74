package learner

import (
	"math"

	"github.com/loci-ml/loci/internal/tensor"
)

// NewChainedFeedback builds the fixed random feedback matrices FA needs:
// one per hidden layer, matrix l mapping layer l+1's delta space into
// layer l's, seeded standard-normal scaled by 1/sqrt(cols). The result is
// deterministic in (sizes, seed) and is never updated by training.
func NewChainedFeedback(f tensor.Factory, sizes []int, seed uint32) []*tensor.Tensor {
	nl := len(sizes) - 1
	feedback := make([]*tensor.Tensor, nl-1)
	for l := 0; l < nl-1; l++ {
		shape := tensor.Shape{Rows: sizes[l+1], Cols: sizes[l+2]}
		feedback[l] = f.Randn(shape, seed+uint32(l)).
			ScaleInPlace(1 / math.Sqrt(float64(shape.Cols)))
	}
	return feedback
}

// NewDirectFeedback builds the fixed random feedback matrices DFA needs:
// one per hidden layer, matrix l mapping output-error space directly into
// layer l's activation space.
func NewDirectFeedback(f tensor.Factory, sizes []int, seed uint32) []*tensor.Tensor {
	nl := len(sizes) - 1
	out := sizes[nl]
	feedback := make([]*tensor.Tensor, nl-1)
	for l := 0; l < nl-1; l++ {
		shape := tensor.Shape{Rows: sizes[l+1], Cols: out}
		feedback[l] = f.Randn(shape, seed+uint32(l)).
			ScaleInPlace(1 / math.Sqrt(float64(shape.Cols)))
	}
	return feedback
}
