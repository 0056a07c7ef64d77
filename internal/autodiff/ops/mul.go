package ops

import "github.com/augur-ml/augur/internal/tensor"

// MulOp records z = a * b element-wise.
type MulOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewMulOp creates a multiplication operation record.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward applies the product rule: dz/da = grad * b, dz/db = grad * a,
// each reduced over any broadcast axes.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.Mul(outputGrad, op.inputs[1])
	gradB := backend.Mul(outputGrad, op.inputs[0])
	return []*tensor.RawTensor{
		reduceBroadcast(gradA, op.inputs[0].Shape(), backend),
		reduceBroadcast(gradB, op.inputs[1].Shape(), backend),
	}
}

// Inputs returns the operands.
func (op *MulOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the forward result.
func (op *MulOp) Output() *tensor.RawTensor { return op.output }
