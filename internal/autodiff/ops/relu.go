package ops

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// ReLUOp records the rectified linear activation: output = max(0, x).
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a relu operation record.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward masks the upstream gradient with the sign of the input:
//
//	d(max(0, x))/dx = 1 if x > 0, else 0
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	mask, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(err)
	}

	switch op.input.DType() {
	case tensor.Float32:
		in, out := op.input.AsFloat32(), mask.AsFloat32()
		for i, v := range in {
			if v > 0 {
				out[i] = 1
			}
		}
	case tensor.Float64:
		in, out := op.input.AsFloat64(), mask.AsFloat64()
		for i, v := range in {
			if v > 0 {
				out[i] = 1
			}
		}
	default:
		panic(fmt.Sprintf("unsupported dtype for relu gradient: %s", op.input.DType()))
	}

	return []*tensor.RawTensor{backend.Mul(outputGrad, mask)}
}

// Inputs returns the input tensors.
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}
