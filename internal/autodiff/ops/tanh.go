package ops

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// TanhOp records the hyperbolic tangent activation.
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a tanh operation record.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

// Backward computes the gradient from the forward output alone:
//
//	d(tanh(x))/dx = 1 - tanh²(x)
//
// so grad_input = grad_output * (1 - output²).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	outputSquared := backend.Mul(op.output, op.output)

	ones, err := tensor.NewRaw(op.output.Shape(), op.output.DType(), backend.Device())
	if err != nil {
		panic(err)
	}
	switch op.output.DType() {
	case tensor.Float32:
		data := ones.AsFloat32()
		for i := range data {
			data[i] = 1.0
		}
	case tensor.Float64:
		data := ones.AsFloat64()
		for i := range data {
			data[i] = 1.0
		}
	default:
		panic(fmt.Sprintf("unsupported dtype for tanh gradient: %s", op.output.DType()))
	}

	derivative := backend.Sub(ones, outputSquared)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// Inputs returns the input tensors.
func (op *TanhOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.RawTensor {
	return op.output
}
