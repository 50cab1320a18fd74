package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

func TestDFA_RequiresFeedback(t *testing.T) {
	m := buildModel(t, []int{3, 4, 2}, []nn.Activation{nn.Tanh, nn.Linear}, 1)
	x := col(t, 1, 2, 3)
	yHat, cache := m.Forward(x)
	dLdy := nn.MSEGrad(yHat, col(t, 0, 0))

	l, _ := New(DFA)
	_, err := l.Step(m, cache, dLdy, Options{})
	requireConfigError(t, err, "feedback.B")
}

func TestDFA_RejectsChainedShapes(t *testing.T) {
	f := tensor.NewFactory()
	sizes := []int{3, 5, 4, 2}
	m := buildModel(t, sizes, []nn.Activation{nn.Tanh, nn.Tanh, nn.Linear}, 1)
	x := col(t, 1, 2, 3)
	yHat, cache := m.Forward(x)
	dLdy := nn.MSEGrad(yHat, col(t, 0, 0))
	l, _ := New(DFA)

	// FA-shaped matrix 0 ([5,4]) cannot project the output error ([2,1]).
	_, err := l.Step(m, cache, dLdy, Options{Feedback: NewChainedFeedback(f, sizes, 2)})
	requireConfigError(t, err, "feedback.B")

	res, err := l.Step(m, cache, dLdy, Options{Feedback: NewDirectFeedback(f, sizes, 2)})
	require.NoError(t, err)
	requireGradShapesMatch(t, m, res.Grads)
}

// TestDFA_SingleHop pins the defining distinction from FA on a scalar
// network: the first hidden layer's delta is B_0 · dL/dy, one hop from the
// output, not B_0 · B_1 · dL/dy chained through the intermediate layer.
func TestDFA_SingleHop(t *testing.T) {
	m := buildModel(t, []int{1, 1, 1, 1}, []nn.Activation{nn.Linear, nn.Linear, nn.Linear}, 1)
	setScalarWeights(t, m, 1, 1, 1)
	b0 := col(t, 2)
	b1 := col(t, 3)

	x := col(t, 1)
	yHat, cache := m.Forward(x)
	target := yHat.Clone().SubInPlace(col(t, 1))
	dLdy := nn.MSEGrad(yHat, target)
	require.InDelta(t, 1, dLdy.At(0, 0), 1e-12)

	feedback := []*tensor.Tensor{b0, b1}
	dfa, _ := New(DFA)
	fa, _ := New(FA)

	direct, err := dfa.Step(m, cache, dLdy, Options{Feedback: feedback})
	require.NoError(t, err)
	chained, err := fa.Step(m, cache, dLdy, Options{Feedback: feedback})
	require.NoError(t, err)

	// DFA: delta_0 = 2·1 = 2. FA: delta_0 = 2·(3·1) = 6.
	assert.InDelta(t, 2, direct.Grads[0].DW.At(0, 0), 1e-12)
	assert.InDelta(t, 6, chained.Grads[0].DW.At(0, 0), 1e-12)
	// Output layer gradients agree.
	assert.InDelta(t, chained.Grads[2].DW.At(0, 0), direct.Grads[2].DW.At(0, 0), 1e-12)
}

// With a single hidden layer the chain has length one, so FA and DFA
// coincide when handed the same feedback matrix and the output activation
// is linear.
func TestDFA_MatchesFAWithOneHiddenLayer(t *testing.T) {
	f := tensor.NewFactory()
	sizes := []int{3, 4, 2}
	m := buildModel(t, sizes, []nn.Activation{nn.Tanh, nn.Linear}, 1)
	x := col(t, 0.5, -1, 2)
	yHat, cache := m.Forward(x)
	dLdy := nn.MSEGrad(yHat, col(t, 1, 0))
	feedback := NewDirectFeedback(f, sizes, 8)

	dfa, _ := New(DFA)
	fa, _ := New(FA)
	direct, err := dfa.Step(m, cache, dLdy, Options{Feedback: feedback})
	require.NoError(t, err)
	chained, err := fa.Step(m, cache, dLdy, Options{Feedback: feedback})
	require.NoError(t, err)

	for i := range direct.Grads {
		for j, v := range direct.Grads[i].DW.Data() {
			assert.InDelta(t, chained.Grads[i].DW.Data()[j], v, 1e-12)
		}
	}
}

func TestDFA_GradShapes(t *testing.T) {
	f := tensor.NewFactory()
	sizes := []int{6, 10, 8, 4}
	m := buildModel(t, sizes, []nn.Activation{nn.ReLU, nn.Tanh, nn.Linear}, 21)
	x := f.Randn(tensor.Shape{Rows: 6, Cols: 1}, 3)
	yHat, cache := m.Forward(x)
	dLdy := nn.MSEGrad(yHat, f.Randn(tensor.Shape{Rows: 4, Cols: 1}, 4))

	l, _ := New(DFA)
	res, err := l.Step(m, cache, dLdy, Options{Feedback: NewDirectFeedback(f, sizes, 5)})
	require.NoError(t, err)
	requireGradShapesMatch(t, m, res.Grads)
}
