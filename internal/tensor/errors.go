package tensor

import "fmt"

// ShapeError reports incompatible dimensions in a tensor operation.
//
// Kernel methods such as AddInPlace, MatMul and Hadamard panic with a
// *ShapeError the moment an incompatible operand is seen; no partial
// result is produced. Callers that want to inspect the failure can
// recover the panic value and use errors.As.
type ShapeError struct {
	Op    string
	Left  Shape
	Right Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tensor: %s: incompatible shapes %s and %s", e.Op, e.Left, e.Right)
}

// MalformedTensorError reports invalid construction input, such as ragged
// rows in FromRows or a flat buffer whose length does not match the
// requested shape in FromFlat.
type MalformedTensorError struct {
	Reason string
}

func (e *MalformedTensorError) Error() string {
	return "tensor: malformed input: " + e.Reason
}
