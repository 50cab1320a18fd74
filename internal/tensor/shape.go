package tensor

import "fmt"

// Shape describes the dimensions of a 2-D tensor.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("invalid shape [%d, %d]: dimensions must be > 0", s.Rows, s.Cols)
	}
	return nil
}

// Equal reports whether two shapes match exactly.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// Transposed returns the shape with rows and columns swapped.
func (s Shape) Transposed() Shape {
	return Shape{Rows: s.Cols, Cols: s.Rows}
}

// String returns the shape in [rows, cols] form.
func (s Shape) String() string {
	return fmt.Sprintf("[%d, %d]", s.Rows, s.Cols)
}
