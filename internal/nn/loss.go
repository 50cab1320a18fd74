package nn

import "github.com/loci-ml/loci/internal/tensor"

// MSE computes the squared-error loss L = 0.5 * ||yHat - y||^2.
// Panics with *tensor.ShapeError if the shapes differ.
func MSE(yHat, y *tensor.Tensor) float64 {
	diff := yHat.Clone().SubInPlace(y)
	n := diff.Norm2()
	return 0.5 * n * n
}

// MSEGrad returns the gradient of MSE with respect to the prediction,
// dL/dyHat = yHat - y, as a new tensor.
func MSEGrad(yHat, y *tensor.Tensor) *tensor.Tensor {
	return yHat.Clone().SubInPlace(y)
}
