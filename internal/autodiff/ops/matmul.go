package ops

import "github.com/augur-ml/augur/internal/tensor"

// MatMulOp records z = a @ b for 2D operands.
type MatMulOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewMatMulOp creates a matrix multiplication operation record.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward computes the matrix product gradients:
//
//	dz/da = grad @ b^T
//	dz/db = a^T @ grad
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.MatMul(outputGrad, backend.Transpose(b, 1, 0))
	gradB := backend.MatMul(backend.Transpose(a, 1, 0), outputGrad)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the operands.
func (op *MatMulOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the forward result.
func (op *MatMulOp) Output() *tensor.RawTensor { return op.output }
