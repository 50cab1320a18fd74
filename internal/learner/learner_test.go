package learner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loci-ml/loci/internal/nn"
	"github.com/loci-ml/loci/internal/tensor"
)

func col(t *testing.T, vals ...float64) *tensor.Tensor {
	t.Helper()
	out, err := tensor.FromFlat(vals, tensor.Shape{Rows: len(vals), Cols: 1})
	require.NoError(t, err)
	return out
}

func buildModel(t *testing.T, sizes []int, acts []nn.Activation, seed uint32) *nn.MLP {
	t.Helper()
	m, err := nn.InitMLP(tensor.NewFactory(), sizes, acts, seed)
	require.NoError(t, err)
	return m
}

// setScalarWeights overwrites a model whose layers are all 1x1 with the
// given weight values and zero biases, so expectations stay hand-computable.
func setScalarWeights(t *testing.T, m *nn.MLP, weights ...float64) {
	t.Helper()
	require.Len(t, m.Layers, len(weights))
	for i, w := range weights {
		wt, err := tensor.FromFlat([]float64{w}, tensor.Shape{Rows: 1, Cols: 1})
		require.NoError(t, err)
		m.Layers[i].W = wt
		m.Layers[i].B = tensor.Zeros(tensor.Shape{Rows: 1, Cols: 1})
	}
}

func requireConfigError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, field, cfgErr.Field)
}

func requireGradShapesMatch(t *testing.T, m *nn.MLP, grads []GradLayer) {
	t.Helper()
	require.Len(t, grads, len(m.Layers))
	for l, g := range grads {
		assert.True(t, g.DW.Shape().Equal(m.Layers[l].W.Shape()),
			"layer %d: dW shape %s, want %s", l, g.DW.Shape(), m.Layers[l].W.Shape())
		assert.True(t, g.DB.Shape().Equal(m.Layers[l].B.Shape()),
			"layer %d: db shape %s, want %s", l, g.DB.Shape(), m.Layers[l].B.Shape())
	}
}

func snapshotModel(m *nn.MLP) [][]float64 {
	var out [][]float64
	for _, l := range m.Layers {
		w := append([]float64(nil), l.W.Data()...)
		b := append([]float64(nil), l.B.Data()...)
		out = append(out, w, b)
	}
	return out
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{FA, DFA, PC, EP} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("backprop")
	require.Error(t, err)
}

func TestNew_ClosedSet(t *testing.T) {
	for _, k := range []Kind{FA, DFA, PC, EP} {
		l, err := New(k)
		require.NoError(t, err)
		assert.Equal(t, k, l.Kind())
	}

	_, err := New(Kind(99))
	require.Error(t, err)
}

// TestStep_DoesNotMutateModelOrCache: a learner only produces gradients;
// applying them is the trainer's job.
func TestStep_DoesNotMutateModelOrCache(t *testing.T) {
	beta := 0.1
	sizes := []int{3, 4, 2}
	acts := []nn.Activation{nn.Tanh, nn.Linear}
	opts := map[Kind]Options{
		FA:  {Feedback: NewChainedFeedback(tensor.NewFactory(), sizes, 5)},
		DFA: {Feedback: NewDirectFeedback(tensor.NewFactory(), sizes, 5)},
		PC:  {Settle: &Settle{T: 6, Alpha: 0.05}},
		EP:  {Settle: &Settle{T: 6, Alpha: 0.05, Beta: &beta}},
	}

	for kind, opt := range opts {
		m := buildModel(t, sizes, acts, 3)
		x := col(t, 0.2, -0.4, 0.9)
		yHat, cache := m.Forward(x)
		dLdy := nn.MSEGrad(yHat, col(t, 0, 0))

		before := snapshotModel(m)
		cacheBefore := append([]float64(nil), cache.A[1].Data()...)
		dLdyBefore := append([]float64(nil), dLdy.Data()...)

		l, err := New(kind)
		require.NoError(t, err)
		_, err = l.Step(m, cache, dLdy, opt)
		require.NoError(t, err, "kind %s", kind)

		assert.Equal(t, before, snapshotModel(m), "kind %s mutated the model", kind)
		assert.Equal(t, cacheBefore, cache.A[1].Data(), "kind %s mutated the cache", kind)
		assert.Equal(t, dLdyBefore, dLdy.Data(), "kind %s mutated dL/dy", kind)
	}
}

func TestStep_Deterministic(t *testing.T) {
	beta := 0.05
	sizes := []int{4, 6, 3}
	acts := []nn.Activation{nn.Tanh, nn.Linear}
	opts := map[Kind]Options{
		FA:  {Feedback: NewChainedFeedback(tensor.NewFactory(), sizes, 9)},
		DFA: {Feedback: NewDirectFeedback(tensor.NewFactory(), sizes, 9)},
		PC:  {Settle: &Settle{T: 10, Alpha: 0.05}},
		EP:  {Settle: &Settle{T: 10, Alpha: 0.05, Beta: &beta}},
	}

	for kind, opt := range opts {
		m := buildModel(t, sizes, acts, 17)
		x := col(t, 0.1, 0.2, 0.3, 0.4)
		yHat, cache := m.Forward(x)
		dLdy := nn.MSEGrad(yHat, col(t, 1, -1, 0.5))

		l, err := New(kind)
		require.NoError(t, err)
		first, err := l.Step(m, cache, dLdy, opt)
		require.NoError(t, err)
		second, err := l.Step(m, cache, dLdy, opt)
		require.NoError(t, err)

		require.Len(t, second.Grads, len(first.Grads))
		for i := range first.Grads {
			assert.Equal(t, first.Grads[i].DW.Data(), second.Grads[i].DW.Data(),
				"kind %s layer %d dW diverged", kind, i)
			assert.Equal(t, first.Grads[i].DB.Data(), second.Grads[i].DB.Data(),
				"kind %s layer %d db diverged", kind, i)
		}
		assert.Equal(t, first.Diag.GradNorm, second.Diag.GradNorm, "kind %s", kind)
	}
}
