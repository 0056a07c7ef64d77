package ops

import "github.com/augur-ml/augur/internal/tensor"

// AddOp records z = a + b.
type AddOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewAddOp creates an addition operation record.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Backward passes the gradient to both operands, reduced over any
// broadcast axes.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.inputs[0].Shape(), backend),
		reduceBroadcast(outputGrad, op.inputs[1].Shape(), backend),
	}
}

// Inputs returns the operands.
func (op *AddOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the forward result.
func (op *AddOp) Output() *tensor.RawTensor { return op.output }
