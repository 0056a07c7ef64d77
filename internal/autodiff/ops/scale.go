package ops

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// ScaleOp records multiplication by a scalar: z = a * s.
//
// Division by a scalar records the same op with the reciprocal, so the
// backward pass is a single scalar multiply either way:
//
//	∂L/∂a = ∂L/∂z * s
type ScaleOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scale  any
}

// NewScaleOp creates a scale operation record. scale is the value the
// gradient must be multiplied by and matches the tensor's element type.
func NewScaleOp(input, output *tensor.RawTensor, scale any) *ScaleOp {
	return &ScaleOp{input: input, output: output, scale: scale}
}

// Backward multiplies the output gradient by the recorded scale.
func (op *ScaleOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	switch op.input.DType() {
	case tensor.Float32, tensor.Float64:
		return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scale)}
	default:
		panic(fmt.Sprintf("unsupported dtype for scale gradient: %s", op.input.DType()))
	}
}

// Inputs returns the input tensors.
func (op *ScaleOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ScaleOp) Output() *tensor.RawTensor {
	return op.output
}
