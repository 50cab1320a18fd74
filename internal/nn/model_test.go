package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loci-ml/loci/internal/tensor"
)

func TestInitMLP_Validation(t *testing.T) {
	f := tensor.NewFactory()

	_, err := InitMLP(f, []int{4}, nil, 1)
	require.Error(t, err)

	_, err = InitMLP(f, []int{4, 3}, []Activation{Tanh, Tanh}, 1)
	require.Error(t, err)

	_, err = InitMLP(f, []int{4, 0, 2}, []Activation{Tanh, Tanh}, 1)
	require.Error(t, err)
}

func TestInitMLP_ShapesAndDeterminism(t *testing.T) {
	f := tensor.NewFactory()
	sizes := []int{5, 7, 3}
	acts := []Activation{Tanh, Linear}

	m, err := InitMLP(f, sizes, acts, 42)
	require.NoError(t, err)
	require.Len(t, m.Layers, 2)

	require.True(t, m.Layers[0].W.Shape().Equal(tensor.Shape{Rows: 7, Cols: 5}))
	require.True(t, m.Layers[0].B.Shape().Equal(tensor.Shape{Rows: 7, Cols: 1}))
	require.True(t, m.Layers[1].W.Shape().Equal(tensor.Shape{Rows: 3, Cols: 7}))
	require.True(t, m.Layers[1].B.Shape().Equal(tensor.Shape{Rows: 3, Cols: 1}))

	for _, v := range m.Layers[0].B.Data() {
		assert.Zero(t, v)
	}

	// Identical arguments produce an identical model.
	m2, err := InitMLP(f, sizes, acts, 42)
	require.NoError(t, err)
	assert.Equal(t, m.Layers[0].W.Data(), m2.Layers[0].W.Data())
	assert.Equal(t, m.Layers[1].W.Data(), m2.Layers[1].W.Data())

	m3, err := InitMLP(f, sizes, acts, 43)
	require.NoError(t, err)
	assert.NotEqual(t, m.Layers[0].W.Data(), m3.Layers[0].W.Data())
}

func TestForward_ShapeInvariant(t *testing.T) {
	f := tensor.NewFactory()
	sizes := []int{6, 9, 4, 2}
	m, err := InitMLP(f, sizes, []Activation{Tanh, ReLU, Linear}, 7)
	require.NoError(t, err)

	x := f.Randn(tensor.Shape{Rows: 6, Cols: 1}, 99)
	yHat, cache := m.Forward(x)

	require.Len(t, cache.A, len(sizes))
	require.Len(t, cache.Z, len(sizes)-1)
	require.Same(t, x, cache.A[0])
	for i, s := range sizes {
		require.True(t, cache.A[i].Shape().Equal(tensor.Shape{Rows: s, Cols: 1}),
			"cache.A[%d] has shape %s, want [%d, 1]", i, cache.A[i].Shape(), s)
	}
	require.True(t, yHat.Shape().Equal(tensor.Shape{Rows: 2, Cols: 1}))
	require.Same(t, yHat, cache.A[len(sizes)-1])
}

func TestForward_LinearMatchesManual(t *testing.T) {
	f := tensor.NewFactory()
	m, err := InitMLP(f, []int{3, 2}, []Activation{Linear}, 5)
	require.NoError(t, err)

	// Overwrite the initialized weights with known values.
	w, _ := tensor.FromRows([][]float64{{1, 0, -1}, {2, 1, 0}})
	b, _ := tensor.FromRows([][]float64{{0.5}, {-0.5}})
	m.Layers[0].W = w
	m.Layers[0].B = b

	x := column(t, 1, 2, 3)
	yHat, cache := m.Forward(x)

	// y = W·x + b = [1-3+0.5, 2+2-0.5] = [-1.5, 3.5]
	assert.InDelta(t, -1.5, yHat.At(0, 0), 1e-12)
	assert.InDelta(t, 3.5, yHat.At(1, 0), 1e-12)
	// linear activation: z and a coincide.
	assert.Equal(t, cache.Z[0].Data(), cache.A[1].Data())
}

func TestForward_CacheIsFresh(t *testing.T) {
	f := tensor.NewFactory()
	m, err := InitMLP(f, []int{3, 3}, []Activation{Tanh}, 1)
	require.NoError(t, err)

	x := f.Randn(tensor.Shape{Rows: 3, Cols: 1}, 2)
	_, c1 := m.Forward(x)
	_, c2 := m.Forward(x)

	require.NotSame(t, c1, c2)
	require.NotSame(t, c1.Z[0], c2.Z[0])
	assert.Equal(t, c1.Z[0].Data(), c2.Z[0].Data())
}

func TestMSE(t *testing.T) {
	yHat := column(t, 1, 2)
	y := column(t, 0, 0)

	// 0.5 * (1 + 4)
	assert.InDelta(t, 2.5, MSE(yHat, y), 1e-12)

	g := MSEGrad(yHat, y)
	assert.Equal(t, []float64{1, 2}, g.Data())
	// operands untouched
	assert.Equal(t, []float64{1, 2}, yHat.Data())
}
