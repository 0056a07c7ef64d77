// Package ops defines the operations the gradient tape records and
// their backward rules.
//
// Each operation stores the raw tensors of its forward pass and knows
// how to turn the gradient of its output into gradients of its inputs:
//
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic with
//     broadcast-aware gradient reduction
//   - MatMulOp: 2D matrix product
//   - TanhOp, ReLUOp: activations
//   - ScaleOp, ShiftOp: scalar multiply and scalar add
//   - ReshapeOp, TransposeOp: shape movement
//   - ChunkOp, CatOp: splitting and joining along a dimension
//   - MSEOp: fused mean squared error loss
package ops

import "github.com/augur-ml/augur/internal/tensor"

// Operation is one recorded step of a forward pass.
type Operation interface {
	// Backward converts the gradient of the output into gradients of
	// the inputs, in the same order as Inputs().
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the differentiable inputs of the operation.
	Inputs() []*tensor.RawTensor

	// Output returns the forward result.
	Output() *tensor.RawTensor
}

// MultiOutputOperation is an Operation whose forward pass produced
// several outputs. The tape gathers the gradients of all outputs
// before calling BackwardMulti.
type MultiOutputOperation interface {
	Operation

	// Outputs returns every forward result.
	Outputs() []*tensor.RawTensor

	// BackwardMulti converts the gradients of all outputs into
	// gradients of the inputs. Missing output gradients arrive as
	// zero tensors.
	BackwardMulti(outputGrads []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
