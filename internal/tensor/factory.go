package tensor

// Factory abstracts tensor construction for code that should not care how
// storage is allocated. The model initializer, the hybrid trainer and the
// benchmark driver all take a Factory so a test can substitute an
// instrumented implementation.
type Factory interface {
	Zeros(shape Shape) *Tensor
	Randn(shape Shape, seed uint32) *Tensor
	FromRows(rows [][]float64) (*Tensor, error)
	FromFlat(vec []float64, shape Shape) (*Tensor, error)
	ConcatFlatten(tensors []*Tensor) *Tensor
}

// Dense is the default Factory backed by the package-level constructors.
type Dense struct{}

// NewFactory returns the default dense factory.
func NewFactory() Dense {
	return Dense{}
}

// Zeros creates a zero-filled tensor.
func (Dense) Zeros(shape Shape) *Tensor {
	return Zeros(shape)
}

// Randn creates a seeded standard-normal tensor.
func (Dense) Randn(shape Shape, seed uint32) *Tensor {
	return Randn(shape, seed)
}

// FromRows creates a tensor from a 2-D slice.
func (Dense) FromRows(rows [][]float64) (*Tensor, error) {
	return FromRows(rows)
}

// FromFlat creates a tensor from a flat buffer.
func (Dense) FromFlat(vec []float64, shape Shape) (*Tensor, error) {
	return FromFlat(vec, shape)
}

// ConcatFlatten flattens tensors into a single column vector.
func (Dense) ConcatFlatten(tensors []*Tensor) *Tensor {
	return ConcatFlatten(tensors)
}
