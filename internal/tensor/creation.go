package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{Rows: 3, Cols: 4})
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err) // callers construct shapes from validated sizes
	}
	return &Tensor{shape: shape, data: make([]float64, shape.NumElements())}
}

// Randn creates a tensor with standard-normal values drawn from a
// Mulberry32 stream seeded with seed (Box-Muller transform). The same
// seed and shape always produce the same tensor.
//
// Example:
//
//	w := tensor.Randn(tensor.Shape{Rows: 8, Cols: 4}, 42)
func Randn(shape Shape, seed uint32) *Tensor {
	t := Zeros(shape)
	rng := NewRNG(seed)
	for i := 0; i < len(t.data); i += 2 {
		z0, z1 := rng.NormPair()
		t.data[i] = z0
		if i+1 < len(t.data) {
			t.data[i+1] = z1
		}
	}
	return t
}

// FromRows creates a tensor from a row-major 2-D slice. Returns a
// *MalformedTensorError if the input is empty or ragged.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &MalformedTensorError{Reason: "empty input"}
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, &MalformedTensorError{
				Reason: fmt.Sprintf("ragged rows: row 0 has %d columns, row %d has %d", cols, i, len(row)),
			}
		}
	}
	t := Zeros(Shape{Rows: len(rows), Cols: cols})
	for i, row := range rows {
		copy(t.data[i*cols:(i+1)*cols], row)
	}
	return t, nil
}

// FromFlat creates a tensor from a flat row-major buffer. Returns a
// *MalformedTensorError if rows*cols != len(vec). The buffer is copied.
func FromFlat(vec []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, &MalformedTensorError{Reason: err.Error()}
	}
	if shape.NumElements() != len(vec) {
		return nil, &MalformedTensorError{
			Reason: fmt.Sprintf("shape %s requires %d elements, got %d", shape, shape.NumElements(), len(vec)),
		}
	}
	t := Zeros(shape)
	copy(t.data, vec)
	return t, nil
}

// ConcatFlatten flattens the given tensors in order into a single column
// vector of shape [total, 1].
func ConcatFlatten(tensors []*Tensor) *Tensor {
	total := 0
	for _, t := range tensors {
		total += t.shape.NumElements()
	}
	if total == 0 {
		panic(&MalformedTensorError{Reason: "ConcatFlatten: no elements"})
	}
	out := Zeros(Shape{Rows: total, Cols: 1})
	off := 0
	for _, t := range tensors {
		copy(out.data[off:], t.data)
		off += len(t.data)
	}
	return out
}
