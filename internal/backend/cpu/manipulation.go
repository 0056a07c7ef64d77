package cpu

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// Chunk splits a tensor into equal parts along dim. The recurrent
// layers use this to walk a batch of windows one time step at a time.
func (b *CPUBackend) Chunk(a *tensor.RawTensor, chunks, dim int) []*tensor.RawTensor {
	shape := a.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("chunk dim %d out of range for shape %v", dim, shape))
	}
	if chunks <= 0 {
		panic(fmt.Sprintf("chunk count must be positive, got %d", chunks))
	}
	if shape[dim]%chunks != 0 {
		panic(fmt.Sprintf("dimension %d of shape %v is not divisible into %d chunks", dim, shape, chunks))
	}

	chunkShape := shape.Clone()
	chunkShape[dim] = shape[dim] / chunks

	results := make([]*tensor.RawTensor, chunks)
	for c := range results {
		result, err := tensor.NewRaw(chunkShape, a.DType(), b.device)
		if err != nil {
			panic(fmt.Sprintf("allocating chunk: %v", err))
		}
		copyChunk(result, a, c, dim)
		results[c] = result
	}
	return results
}

// copyChunk fills dst with chunk index c of src along dim. Within each
// outer block the chunk is one contiguous slab, so the copy runs in
// slab-sized memmoves.
func copyChunk(dst, src *tensor.RawTensor, c, dim int) {
	srcShape := src.Shape()
	dstShape := dst.Shape()
	elemSize := src.DType().Size()

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= srcShape[d]
	}
	inner := 1
	for d := dim + 1; d < len(srcShape); d++ {
		inner *= srcShape[d]
	}

	srcSlab := srcShape[dim] * inner * elemSize
	dstSlab := dstShape[dim] * inner * elemSize
	srcOff := c * dstSlab

	dstBytes := dst.Data()
	srcBytes := src.Data()
	for o := 0; o < outer; o++ {
		start := o*srcSlab + srcOff
		copy(dstBytes[o*dstSlab:(o+1)*dstSlab], srcBytes[start:start+dstSlab])
	}
}

// Cat concatenates tensors along dim. Shapes must match everywhere
// except the concatenation dimension.
func (b *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat requires at least one tensor")
	}

	first := tensors[0]
	rank := len(first.Shape())
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("cat dim %d out of range for shape %v", dim, first.Shape()))
	}

	outShape := first.Shape().Clone()
	for i, t := range tensors[1:] {
		shape := t.Shape()
		if len(shape) != rank {
			panic(fmt.Sprintf("cat rank mismatch: tensor %d has shape %v, expected rank %d", i+1, shape, rank))
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat dtype mismatch: %s vs %s", t.DType(), first.DType()))
		}
		for d := 0; d < rank; d++ {
			if d == dim {
				continue
			}
			if shape[d] != outShape[d] {
				panic(fmt.Sprintf("cat shape mismatch at axis %d: %v vs %v", d, shape, first.Shape()))
			}
		}
		outShape[dim] += shape[dim]
	}

	result, err := tensor.NewRaw(outShape, first.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating cat result: %v", err))
	}

	// The output decomposes into outer blocks; each block is the
	// concatenation of one slab from every input.
	elemSize := first.DType().Size()
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := dim + 1; d < rank; d++ {
		inner *= outShape[d]
	}

	dstBytes := result.Data()
	dstOff := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			slab := t.Shape()[dim] * inner * elemSize
			srcOff := o * slab
			copy(dstBytes[dstOff:dstOff+slab], t.Data()[srcOff:srcOff+slab])
			dstOff += slab
		}
	}
	return result
}
