// Package tensor implements the generic tensor type and the backend
// contract the rest of Augur builds on.
//
// Tensor[T, B] carries the element type and backend in its type
// parameters, so mixing float32 and float64 operands, or tensors from
// different backends, fails at compile time rather than at run time.
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a typed view over a RawTensor bound to a backend.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps a RawTensor in a typed tensor. The raw dtype must match T;
// mismatches panic because they indicate a programming error.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	var dummy T
	if want := inferDataType(dummy); raw.DType() != want {
		panic(fmt.Sprintf("cannot wrap %s tensor as %s", raw.DType(), want))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// FromSlice builds a tensor from data laid out in row-major order.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), backend.Device())
	if err != nil {
		return nil, err
	}

	copyIntoRaw(raw, data)
	return &Tensor[T, B]{raw: raw, backend: backend}, nil
}

// copyIntoRaw copies typed data into the raw buffer.
func copyIntoRaw[T DType](raw *RawTensor, data []T) {
	switch src := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), src)
	case []float64:
		copy(raw.AsFloat64(), src)
	case []int32:
		copy(raw.AsInt32(), src)
	default:
		panic(fmt.Sprintf("unsupported element type: %T", data))
	}
}

// Shape returns the tensor shape.
func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }

// DType returns the runtime element type.
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }

// Device returns where the data lives.
func (t *Tensor[T, B]) Device() Device { return t.raw.Device() }

// NumElements returns the number of elements.
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }

// Raw exposes the underlying RawTensor for backend-level code.
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }

// Backend returns the backend this tensor is bound to.
func (t *Tensor[T, B]) Backend() B { return t.backend }

// Data returns the elements as a typed slice sharing the tensor buffer.
func (t *Tensor[T, B]) Data() []T {
	switch out := any(t.raw.dtypeSlice()).(type) {
	case []T:
		return out
	default:
		panic(fmt.Sprintf("tensor dtype %s does not match element type", t.raw.DType()))
	}
}

// dtypeSlice returns the buffer as the slice type matching the dtype.
func (r *RawTensor) dtypeSlice() any {
	switch r.dtype {
	case Float32:
		return r.AsFloat32()
	case Float64:
		return r.AsFloat64()
	case Int32:
		return r.AsInt32()
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.dtype))
	}
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item called on tensor with %d elements", t.NumElements()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given indices.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.raw.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices for shape %v, got %d", len(shape), shape, len(indices)))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for axis %d with size %d", idx, i, shape[i]))
		}
		flat += idx * t.raw.strides[i]
	}
	return flat
}

// Clone returns a tensor sharing this tensor's buffer through the
// copy-on-write reference count.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// String renders a compact description with a preview of the data.
func (t *Tensor[T, B]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor[%s, %s](shape=%v", t.DType(), t.backend.Name(), t.Shape())

	data := t.Data()
	const preview = 8
	if len(data) <= preview {
		fmt.Fprintf(&sb, ", data=%v)", data)
	} else {
		fmt.Fprintf(&sb, ", data=%v...)", data[:preview])
	}
	return sb.String()
}
