// Copyright 2026 The Loci Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense 2-D tensors that
// every model and learner in Loci computes on.
//
// The package re-exports the core types:
//   - Tensor: dense row-major [rows, cols] buffer of float64
//   - Shape: row/column dimensions with validation
//   - RNG: seeded deterministic generator for reproducible runs
//   - Factory: construction surface used by models and benchmarks
//
// Example:
//
//	f := tensor.NewFactory()
//	w := f.Randn(tensor.Shape{Rows: 3, Cols: 2}, 42)
//	x, _ := f.FromFlat([]float64{1, -1}, tensor.Shape{Rows: 2, Cols: 1})
//	y := w.MatMul(x)
package tensor
