// Package tensor implements the dense 2-D numeric buffer that every model
// and learner in the framework computes on.
//
// A Tensor owns its storage exclusively. Methods with the InPlace suffix
// mutate the receiver and return it; every other operation allocates a new
// tensor and leaves its operands untouched. Shape violations are detected
// at the offending operation and panic with a typed *ShapeError, so a
// dimension bug surfaces exactly where it happens instead of corrupting a
// downstream gradient.
package tensor

import "math"

// Tensor is a dense row-major 2-D buffer of float64 values.
type Tensor struct {
	shape Shape
	data  []float64
}

// Shape returns the tensor's dimensions.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int {
	return t.shape.Rows
}

// Cols returns the number of columns.
func (t *Tensor) Cols() int {
	return t.shape.Cols
}

// Data returns the underlying row-major buffer.
// Mutating it mutates the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at row i, column j.
func (t *Tensor) At(i, j int) float64 {
	return t.data[i*t.shape.Cols+j]
}

// Set stores v at row i, column j.
func (t *Tensor) Set(i, j int, v float64) {
	t.data[i*t.shape.Cols+j] = v
}

// Clone returns a deep copy with independent storage.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape, data: data}
}

// AddInPlace adds other element-wise, mutating and returning the receiver.
// Panics with *ShapeError if the shapes differ.
func (t *Tensor) AddInPlace(other *Tensor) *Tensor {
	t.checkSame("AddInPlace", other)
	for i, v := range other.data {
		t.data[i] += v
	}
	return t
}

// SubInPlace subtracts other element-wise, mutating and returning the
// receiver. Panics with *ShapeError if the shapes differ.
func (t *Tensor) SubInPlace(other *Tensor) *Tensor {
	t.checkSame("SubInPlace", other)
	for i, v := range other.data {
		t.data[i] -= v
	}
	return t
}

// ScaleInPlace multiplies every element by s, mutating and returning the
// receiver.
func (t *Tensor) ScaleInPlace(s float64) *Tensor {
	for i := range t.data {
		t.data[i] *= s
	}
	return t
}

// MatMul returns the matrix product t · other as a new tensor with shape
// [t.Rows, other.Cols]. Panics with *ShapeError if t.Cols != other.Rows.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if t.shape.Cols != other.shape.Rows {
		panic(&ShapeError{Op: "MatMul", Left: t.shape, Right: other.shape})
	}
	rows, inner, cols := t.shape.Rows, t.shape.Cols, other.shape.Cols
	out := &Tensor{
		shape: Shape{Rows: rows, Cols: cols},
		data:  make([]float64, rows*cols),
	}
	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			lhs := t.data[i*inner+k]
			if lhs == 0 {
				continue
			}
			rowOff := k * cols
			outOff := i * cols
			for j := 0; j < cols; j++ {
				out.data[outOff+j] += lhs * other.data[rowOff+j]
			}
		}
	}
	return out
}

// Transpose returns a new tensor with rows and columns swapped.
func (t *Tensor) Transpose() *Tensor {
	out := &Tensor{
		shape: t.shape.Transposed(),
		data:  make([]float64, len(t.data)),
	}
	for i := 0; i < t.shape.Rows; i++ {
		for j := 0; j < t.shape.Cols; j++ {
			out.data[j*t.shape.Rows+i] = t.data[i*t.shape.Cols+j]
		}
	}
	return out
}

// Hadamard returns the element-wise product as a new tensor.
// Panics with *ShapeError if the shapes differ.
func (t *Tensor) Hadamard(other *Tensor) *Tensor {
	t.checkSame("Hadamard", other)
	out := t.Clone()
	for i, v := range other.data {
		out.data[i] *= v
	}
	return out
}

// Map applies fn to every element and returns the result as a new tensor.
func (t *Tensor) Map(fn func(float64) float64) *Tensor {
	out := t.Clone()
	for i, v := range out.data {
		out.data[i] = fn(v)
	}
	return out
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v
	}
	return sum
}

// Norm2 returns the Euclidean norm over all elements.
func (t *Tensor) Norm2() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product over the flattened elements. Panics with
// *ShapeError if the flattened sizes differ.
func (t *Tensor) Dot(other *Tensor) float64 {
	if t.shape.NumElements() != other.shape.NumElements() {
		panic(&ShapeError{Op: "Dot", Left: t.shape, Right: other.shape})
	}
	var sum float64
	for i, v := range t.data {
		sum += v * other.data[i]
	}
	return sum
}

func (t *Tensor) checkSame(op string, other *Tensor) {
	if !t.shape.Equal(other.shape) {
		panic(&ShapeError{Op: op, Left: t.shape, Right: other.shape})
	}
}
