// Package cpu implements the tensor.Backend contract with pure Go
// kernels. Element-wise operations run one of three paths: in-place
// when the destination buffer is uniquely referenced, a vectorizable
// flat loop when shapes match, and a strided loop when broadcasting.
package cpu

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// CPUBackend computes tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (b *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the device this backend computes on.
func (b *CPUBackend) Device() tensor.Device {
	return b.device
}

// Add performs element-wise addition with broadcasting.
func (b *CPUBackend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp(a, other, addInplace, addFlat, addBroadcast)
}

// Sub performs element-wise subtraction with broadcasting.
func (b *CPUBackend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp(a, other, subInplace, subFlat, subBroadcast)
}

// Mul performs element-wise multiplication with broadcasting.
func (b *CPUBackend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp(a, other, mulInplace, mulFlat, mulBroadcast)
}

// Div performs element-wise division with broadcasting.
func (b *CPUBackend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp(a, other, divInplace, divFlat, divBroadcast)
}

// binaryOp routes an element-wise operation through one of three paths.
//
// The in-place path requires the left operand to own its buffer and to
// already have the result shape. Callers that need the left operand
// preserved pin it with ForceNonUnique first; the autodiff decorator
// does exactly that for every recorded operand.
func (b *CPUBackend) binaryOp(
	a, other *tensor.RawTensor,
	inplace func(a, b *tensor.RawTensor),
	flat func(dst, a, b *tensor.RawTensor),
	broadcast func(dst, a, b *tensor.RawTensor),
) *tensor.RawTensor {
	if a.DType() != other.DType() {
		panic(fmt.Sprintf("dtype mismatch: %s vs %s", a.DType(), other.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), other.Shape())
	if err != nil {
		panic(fmt.Sprintf("broadcasting: %v", err))
	}

	if !needsBroadcast && a.IsUnique() {
		inplace(a, other)
		return a
	}

	result, err := tensor.NewRaw(outShape, a.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating result: %v", err))
	}

	if needsBroadcast {
		broadcast(result, a, other)
	} else {
		flat(result, a, other)
	}
	return result
}

// Reshape returns a tensor with the same elements and a new shape.
func (b *CPUBackend) Reshape(a *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if a.NumElements() != shape.NumElements() {
		panic(fmt.Sprintf("cannot reshape %v (%d elements) to %v (%d elements)",
			a.Shape(), a.NumElements(), shape, shape.NumElements()))
	}

	// TODO: return a stride view instead of copying once views carry
	// their own shape metadata.
	result, err := tensor.NewRaw(shape, a.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating reshape result: %v", err))
	}
	copy(result.Data(), a.Data()[:a.NumElements()*a.DType().Size()])
	return result
}

// Transpose permutes the axes of a tensor. With no axes given, the
// axis order is reversed.
func (b *CPUBackend) Transpose(a *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	rank := len(a.Shape())

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}

	if len(axes) != rank {
		panic(fmt.Sprintf("transpose axes %v do not match tensor rank %d", axes, rank))
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			panic(fmt.Sprintf("transpose axis %d out of range for rank %d", ax, rank))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose axes %v contain duplicates", axes))
		}
		seen[ax] = true
	}

	outShape := make(tensor.Shape, rank)
	for i, ax := range axes {
		outShape[i] = a.Shape()[ax]
	}

	result, err := tensor.NewRaw(outShape, a.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating transpose result: %v", err))
	}

	transposeData(result, a, axes)
	return result
}
