// Package nn implements the feedforward model the learning rules operate
// on: an ordered stack of affine+activation layers whose forward pass
// records everything a credit-assignment rule might need.
package nn

import (
	"fmt"
	"math"

	"github.com/loci-ml/loci/internal/tensor"
)

// Layer is one affine+activation stage.
//
// W has shape [out, in], B has shape [out, 1]. Both are created once at
// model initialization and mutated in place by the trainer's update; they
// are never resized.
type Layer struct {
	W   *tensor.Tensor
	B   *tensor.Tensor
	Act Activation
}

// MLP is an ordered sequence of layers. Layer count and per-layer shapes
// are fixed at construction.
type MLP struct {
	Layers []*Layer
	sizes  []int
}

// Cache holds every intermediate quantity of one forward pass.
//
// A has length layers+1 with A[0] = input; Z has length layers and holds
// the pre-activations. A cache is created fresh by each Forward call,
// consumed by exactly one learner invocation and then discarded.
type Cache struct {
	A []*tensor.Tensor
	Z []*tensor.Tensor
}

// InitMLP builds a model with the given layer sizes and activations.
//
// sizes has one entry per node layer ([input, hidden..., output]); acts
// has one entry per weight layer, len(sizes)-1 in total. Weights are
// seeded standard-normal scaled by 1/sqrt(fan-in); biases start at zero.
// The per-layer seed is derived from seed, so identical arguments always
// produce an identical model.
//
// Example:
//
//	f := tensor.NewFactory()
//	m, err := nn.InitMLP(f, []int{4, 8, 2}, []nn.Activation{nn.Tanh, nn.Linear}, 42)
func InitMLP(f tensor.Factory, sizes []int, acts []Activation, seed uint32) (*MLP, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("nn: need at least 2 layer sizes, got %d", len(sizes))
	}
	if len(acts) != len(sizes)-1 {
		return nil, fmt.Errorf("nn: %d sizes require %d activations, got %d",
			len(sizes), len(sizes)-1, len(acts))
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("nn: layer size at index %d must be > 0, got %d", i, s)
		}
	}

	layers := make([]*Layer, len(sizes)-1)
	for l := range layers {
		in, out := sizes[l], sizes[l+1]
		w := f.Randn(tensor.Shape{Rows: out, Cols: in}, seed+uint32(l))
		w.ScaleInPlace(1.0 / math.Sqrt(float64(in)))
		layers[l] = &Layer{
			W:   w,
			B:   f.Zeros(tensor.Shape{Rows: out, Cols: 1}),
			Act: acts[l],
		}
	}

	cloned := make([]int, len(sizes))
	copy(cloned, sizes)
	return &MLP{Layers: layers, sizes: cloned}, nil
}

// Sizes returns the node-layer sizes the model was built with.
func (m *MLP) Sizes() []int {
	out := make([]int, len(m.sizes))
	copy(out, m.sizes)
	return out
}

// Forward runs the model on a column-vector input of shape [in, 1] and
// returns the prediction together with a fresh cache of all pre- and
// post-activations.
func (m *MLP) Forward(x *tensor.Tensor) (*tensor.Tensor, *Cache) {
	cache := &Cache{
		A: make([]*tensor.Tensor, len(m.Layers)+1),
		Z: make([]*tensor.Tensor, len(m.Layers)),
	}
	cache.A[0] = x

	a := x
	for l, layer := range m.Layers {
		z := layer.W.MatMul(a).AddInPlace(layer.B)
		a = layer.Act.Apply(z)
		cache.Z[l] = z
		cache.A[l+1] = a
	}
	return a, cache
}
