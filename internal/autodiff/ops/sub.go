package ops

import "github.com/augur-ml/augur/internal/tensor"

// SubOp records z = a - b.
type SubOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSubOp creates a subtraction operation record.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward passes the gradient to a and its negation to b, each
// reduced over any broadcast axes.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.inputs[0].Shape(), backend),
		reduceBroadcast(negate(outputGrad, backend), op.inputs[1].Shape(), backend),
	}
}

// Inputs returns the operands.
func (op *SubOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the forward result.
func (op *SubOp) Output() *tensor.RawTensor { return op.output }
