package ops

import "github.com/augur-ml/augur/internal/tensor"

// DivOp records z = a / b element-wise.
type DivOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewDivOp creates a division operation record.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward applies the quotient rule:
//
//	dz/da = grad / b
//	dz/db = -grad * a / b^2
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.Div(outputGrad, b)

	bSquared := backend.Mul(b, b)
	gradB := negate(backend.Div(backend.Mul(outputGrad, a), bSquared), backend)

	return []*tensor.RawTensor{
		reduceBroadcast(gradA, a.Shape(), backend),
		reduceBroadcast(gradB, b.Shape(), backend),
	}
}

// Inputs returns the operands.
func (op *DivOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the forward result.
func (op *DivOp) Output() *tensor.RawTensor { return op.output }
