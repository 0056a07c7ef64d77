package ops

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// ShiftOp records addition or subtraction of a scalar: z = a + s or
// z = a - s. The scalar contributes nothing to the gradient, so the
// backward pass forwards the output gradient unchanged.
type ShiftOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewShiftOp creates a shift operation record.
func NewShiftOp(input, output *tensor.RawTensor) *ShiftOp {
	return &ShiftOp{input: input, output: output}
}

// Backward passes the output gradient through. The clone keeps tape
// accumulation from aliasing the gradient of the downstream op.
func (op *ShiftOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}

// Inputs returns the input tensors.
func (op *ShiftOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ShiftOp) Output() *tensor.RawTensor {
	return op.output
}
