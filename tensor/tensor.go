// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/loci-ml/loci/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a 2-D tensor.
type Shape = tensor.Shape

// Tensor is a dense row-major matrix of float64 values.
type Tensor = tensor.Tensor

// RNG is the seeded deterministic generator behind Randn.
type RNG = tensor.RNG

// Factory constructs tensors; models and benchmarks take it as a
// dependency so construction stays in one place.
type Factory = tensor.Factory

// Dense is the standard in-memory Factory implementation.
type Dense = tensor.Dense

// Errors

// ShapeError reports incompatible operand shapes. Kernels panic with it.
type ShapeError = tensor.ShapeError

// MalformedTensorError reports invalid construction input.
type MalformedTensorError = tensor.MalformedTensorError

// NewFactory returns the standard dense factory.
func NewFactory() Dense {
	return tensor.NewFactory()
}

// NewRNG returns a generator seeded with the given value. The same seed
// always yields the same stream.
func NewRNG(seed uint32) *RNG {
	return tensor.NewRNG(seed)
}

// Zeros creates a zero-filled tensor.
//
// Example:
//
//	b := tensor.Zeros(tensor.Shape{Rows: 4, Cols: 1})
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Randn creates a tensor filled with standard normal samples drawn from a
// generator seeded with seed.
func Randn(shape Shape, seed uint32) *Tensor {
	return tensor.Randn(shape, seed)
}

// FromRows builds a tensor from a rectangular [][]float64.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// FromFlat builds a tensor from a flat row-major buffer.
func FromFlat(vec []float64, shape Shape) (*Tensor, error) {
	return tensor.FromFlat(vec, shape)
}

// ConcatFlatten flattens the given tensors into a single column vector.
func ConcatFlatten(tensors []*Tensor) *Tensor {
	return tensor.ConcatFlatten(tensors)
}
