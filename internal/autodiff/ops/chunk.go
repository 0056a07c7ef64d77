package ops

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// ChunkOp records a split of a tensor into n equal parts along one
// dimension. It is the one multi-output operation on the tape, so its
// gradient flows through BackwardMulti rather than Backward.
//
// Forward: outputs = Chunk(input, n, dim)
//
// Backward: gradInput = Cat([gradOutput_0, ..., gradOutput_n-1], dim)
type ChunkOp struct {
	input   *tensor.RawTensor
	n       int
	dim     int
	outputs []*tensor.RawTensor
}

// NewChunkOp creates a chunk operation record.
func NewChunkOp(input *tensor.RawTensor, n, dim int, outputs []*tensor.RawTensor) *ChunkOp {
	return &ChunkOp{
		input:   input,
		n:       n,
		dim:     dim,
		outputs: outputs,
	}
}

// Inputs returns the input tensor.
func (op *ChunkOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the first chunk. The Operation interface expects one
// output; the tape detects MultiOutputOperation and uses Outputs instead.
func (op *ChunkOp) Output() *tensor.RawTensor {
	return op.outputs[0]
}

// Outputs returns all chunk tensors.
func (op *ChunkOp) Outputs() []*tensor.RawTensor {
	return op.outputs
}

// Backward panics. A single output gradient cannot reconstruct the input
// gradient of a split; the tape must call BackwardMulti with gradients
// for every chunk.
func (op *ChunkOp) Backward(_ *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	panic("ChunkOp.Backward: multi-output operation, tape must call BackwardMulti")
}

// BackwardMulti concatenates the chunk gradients back along the split
// dimension. Chunks that never reached the loss arrive as zero tensors.
func (op *ChunkOp) BackwardMulti(gradOutputs []*tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if len(gradOutputs) != op.n {
		panic("ChunkOp.BackwardMulti: need one gradient per chunk")
	}
	return []*tensor.RawTensor{backend.Cat(gradOutputs, op.dim)}
}
