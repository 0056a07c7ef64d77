package ops

import (
	"github.com/augur-ml/augur/internal/tensor"
)

// CatOp records a concatenation along one dimension.
//
// Forward: output = Cat([input_0, input_1, ...], dim)
//
// Backward: the output gradient is sliced along dim at the original
// input boundaries and each input receives its slice. Inputs may have
// different sizes along dim, so the slicing is driven by the recorded
// sizes rather than an equal split.
type CatOp struct {
	inputs []*tensor.RawTensor
	dim    int
	sizes  []int
	output *tensor.RawTensor
}

// NewCatOp creates a cat operation record. sizes holds each input's
// extent along the concatenation dimension.
func NewCatOp(inputs []*tensor.RawTensor, dim int, sizes []int, output *tensor.RawTensor) *CatOp {
	return &CatOp{
		inputs: inputs,
		dim:    dim,
		sizes:  append([]int(nil), sizes...),
		output: output,
	}
}

// Inputs returns the input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *CatOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward slices the output gradient back into per-input gradients.
//
// The gradient tensor decomposes into outer rows of contiguous bytes
// along dim, so each slice is a strided block copy rather than a
// per-element walk.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradShape := outputGrad.Shape()
	elemSize := outputGrad.DType().Size()

	outer := 1
	for d := 0; d < op.dim; d++ {
		outer *= gradShape[d]
	}
	inner := elemSize
	for d := op.dim + 1; d < len(gradShape); d++ {
		inner *= gradShape[d]
	}
	srcSlab := gradShape[op.dim] * inner

	grads := make([]*tensor.RawTensor, len(op.inputs))
	src := outputGrad.Data()

	offset := 0
	for i, size := range op.sizes {
		sliceShape := gradShape.Clone()
		sliceShape[op.dim] = size

		grad, err := tensor.NewRaw(sliceShape, outputGrad.DType(), backend.Device())
		if err != nil {
			panic(err)
		}

		dst := grad.Data()
		dstSlab := size * inner
		srcOff := offset * inner
		for o := 0; o < outer; o++ {
			copy(dst[o*dstSlab:(o+1)*dstSlab], src[o*srcSlab+srcOff:o*srcSlab+srcOff+dstSlab])
		}

		grads[i] = grad
		offset += size
	}

	return grads
}
