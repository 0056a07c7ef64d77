package ops

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// MSEOp represents the mean squared error loss operation.
//
// Forward:
//
//	Loss = mean((predictions - targets)²)
//
// Backward:
//
//	∂L/∂predictions[i] = 2 * (predictions[i] - targets[i]) / n
//
// where n is the total number of elements. Targets are treated as
// constants: the op differentiates through predictions only.
//
// Assumptions:
//   - Predictions and targets share shape and dtype
//   - Output: scalar loss (mean over all elements)
type MSEOp struct {
	predictions *tensor.RawTensor
	targets     *tensor.RawTensor
	output      *tensor.RawTensor
}

// NewMSEOp creates a new mean squared error operation.
func NewMSEOp(predictions, targets, output *tensor.RawTensor) *MSEOp {
	return &MSEOp{
		predictions: predictions,
		targets:     targets,
		output:      output,
	}
}

// Inputs returns the tensors gradients flow to. Targets are constants
// and deliberately excluded.
func (op *MSEOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.predictions}
}

// Output returns the output tensor.
func (op *MSEOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes the gradient with respect to predictions.
//
// The forward pass averages over every element, so the per-element
// gradient carries the 1/n factor. The upstream gradient is a scalar
// and scales the whole tensor.
func (op *MSEOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.predictions.Shape(), op.predictions.DType(), op.predictions.Device())
	if err != nil {
		panic(err)
	}

	switch op.predictions.DType() {
	case tensor.Float32:
		computeMSEGradFloat32(
			op.predictions.AsFloat32(),
			op.targets.AsFloat32(),
			outputGrad.AsFloat32(),
			grad.AsFloat32(),
		)

	case tensor.Float64:
		computeMSEGradFloat64(
			op.predictions.AsFloat64(),
			op.targets.AsFloat64(),
			outputGrad.AsFloat64(),
			grad.AsFloat64(),
		)

	default:
		panic("MSEOp: backward only supports float32 and float64")
	}

	return []*tensor.RawTensor{grad}
}

// computeMSEGradFloat32 computes gradients for float32 MSE.
func computeMSEGradFloat32(preds, targets, outGrad, grad []float32) {
	gradScale := outGrad[0]
	n := float32(len(preds))

	for i := range preds {
		grad[i] = gradScale * 2.0 * (preds[i] - targets[i]) / n
	}
}

// computeMSEGradFloat64 computes gradients for float64 MSE.
func computeMSEGradFloat64(preds, targets, outGrad, grad []float64) {
	gradScale := outGrad[0]
	n := float64(len(preds))

	for i := range preds {
		grad[i] = gradScale * 2.0 * (preds[i] - targets[i]) / n
	}
}

// MSEForward computes the mean squared error loss (helper function).
//
// This is a helper for use outside autodiff context.
// For autodiff support, use AutodiffBackend with MSEOp.
//
// Parameters:
//   - predictions: any shape
//   - targets: same shape and dtype as predictions
//
// Returns:
//   - Scalar loss tensor (mean over all elements)
func MSEForward(predictions, targets *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSEForward: predictions and targets must have the same shape")
	}
	if predictions.DType() != targets.DType() {
		panic("MSEForward: predictions and targets must have the same dtype")
	}

	output, err := tensor.NewRaw(tensor.Shape{1}, predictions.DType(), device)
	if err != nil {
		panic(err)
	}

	switch predictions.DType() {
	case tensor.Float32:
		preds := predictions.AsFloat32()
		targs := targets.AsFloat32()

		total := float32(0.0)
		for i := range preds {
			diff := preds[i] - targs[i]
			total += diff * diff
		}
		output.AsFloat32()[0] = total / float32(len(preds))

	case tensor.Float64:
		preds := predictions.AsFloat64()
		targs := targets.AsFloat64()

		total := 0.0
		for i := range preds {
			diff := preds[i] - targs[i]
			total += diff * diff
		}
		output.AsFloat64()[0] = total / float64(len(preds))

	default:
		panic("MSEForward: only supports float32 and float64")
	}

	return output
}
