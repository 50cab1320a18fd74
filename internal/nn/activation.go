package nn

import (
	"fmt"
	"math"

	"github.com/loci-ml/loci/internal/tensor"
)

// Activation identifies a layer's element-wise nonlinearity.
type Activation int

// Supported activations.
const (
	Linear Activation = iota
	Tanh
	ReLU
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	default:
		return "unknown"
	}
}

// ParseActivation maps a name to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	default:
		return 0, fmt.Errorf("unknown activation %q (want linear, tanh or relu)", name)
	}
}

// Apply returns the activation applied element-wise to z as a new tensor.
func (a Activation) Apply(z *tensor.Tensor) *tensor.Tensor {
	switch a {
	case Tanh:
		return z.Map(math.Tanh)
	case ReLU:
		return z.Map(func(v float64) float64 {
			if v < 0 {
				return 0
			}
			return v
		})
	default:
		return z.Clone()
	}
}

// Derivative returns the activation derivative evaluated element-wise on
// the pre-activation z.
//
// The argument is always the raw pre-activation, never the already
// activated value: tanh' = 1 - tanh(z)^2, relu' = 1 for z > 0 and 0
// otherwise (zero subgradient at 0), linear' = 1. Every learner rule
// relies on this convention.
func (a Activation) Derivative(z *tensor.Tensor) *tensor.Tensor {
	switch a {
	case Tanh:
		return z.Map(func(v float64) float64 {
			th := math.Tanh(v)
			return 1 - th*th
		})
	case ReLU:
		return z.Map(func(v float64) float64 {
			if v > 0 {
				return 1
			}
			return 0
		})
	default:
		return z.Map(func(float64) float64 { return 1 })
	}
}
