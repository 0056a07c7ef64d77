package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device identifies where tensor data lives. Augur computes on the CPU;
// the type exists so RawTensor metadata stays explicit about placement.
type Device int

// Known devices.
const (
	CPU Device = iota
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return fmt.Sprintf("Device(%d)", int(d))
	}
}

// tensorBuffer is the reference-counted byte storage behind RawTensor.
// Multiple RawTensors may share one buffer through Clone; writers must
// check IsUnique before mutating in place.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex
}

func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{data: make([]byte, size)}
	buf.refCount.Store(1)
	return buf
}

func (b *tensorBuffer) addRef() {
	b.refCount.Add(1)
}

func (b *tensorBuffer) release() {
	if b.refCount.Add(-1) < 0 {
		panic("tensor buffer released more times than referenced")
	}
}

func (b *tensorBuffer) isUnique() bool {
	return b.refCount.Load() == 1
}

// RawTensor is the untyped tensor representation the backends operate on.
// It pairs a shape with a shared byte buffer and interprets the bytes
// according to its DataType.
type RawTensor struct {
	shape   Shape
	strides []int
	dtype   DataType
	device  Device
	buffer  *tensorBuffer
	offset  int
}

// NewRaw allocates a zeroed tensor with the given shape, dtype and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("creating tensor: %w", err)
	}

	size := shape.NumElements() * dtype.Size()
	return &RawTensor{
		shape:   shape.Clone(),
		strides: ComputeStrides(shape),
		dtype:   dtype,
		device:  device,
		buffer:  newTensorBuffer(size),
		offset:  0,
	}, nil
}

// Shape returns the tensor shape. Callers must not mutate it.
func (r *RawTensor) Shape() Shape { return r.shape }

// Strides returns the row-major strides in elements.
func (r *RawTensor) Strides() []int { return r.strides }

// DType returns the element type.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns where the data lives.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the number of elements.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// Data returns the backing bytes starting at this tensor's offset.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset:]
}

// AsFloat32 reinterprets the buffer as []float32.
// Panics if the tensor holds a different element type.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("AsFloat32 called on %s tensor", r.dtype))
	}
	data := r.Data()
	//nolint:gosec // reinterpreting our own aligned allocation
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 reinterprets the buffer as []float64.
// Panics if the tensor holds a different element type.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("AsFloat64 called on %s tensor", r.dtype))
	}
	data := r.Data()
	//nolint:gosec // reinterpreting our own aligned allocation
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt32 reinterprets the buffer as []int32.
// Panics if the tensor holds a different element type.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("AsInt32 called on %s tensor", r.dtype))
	}
	data := r.Data()
	//nolint:gosec // reinterpreting our own aligned allocation
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Clone returns a tensor sharing this tensor's buffer. The copy is
// logical: the reference count is bumped and an in-place writer will
// see IsUnique() == false until one of the references is released.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.mu.Lock()
	defer r.buffer.mu.Unlock()

	r.buffer.addRef()
	return &RawTensor{
		shape:   r.shape.Clone(),
		strides: append([]int(nil), r.strides...),
		dtype:   r.dtype,
		device:  r.device,
		buffer:  r.buffer,
		offset:  r.offset,
	}
}

// Release drops this tensor's reference to the shared buffer.
func (r *RawTensor) Release() {
	r.buffer.mu.Lock()
	defer r.buffer.mu.Unlock()
	r.buffer.release()
}

// IsUnique reports whether this tensor is the only reference to its
// buffer. Backends use this to decide whether an operation may reuse
// the input storage instead of allocating.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// ForceNonUnique temporarily marks the buffer as shared and returns a
// cleanup function restoring the previous count. The autodiff backend
// pins every operand this way so no backend op overwrites a tensor the
// gradient tape still needs:
//
//	defer a.ForceNonUnique()()
func (r *RawTensor) ForceNonUnique() func() {
	r.buffer.mu.Lock()
	defer r.buffer.mu.Unlock()

	r.buffer.addRef()
	return func() {
		r.buffer.mu.Lock()
		defer r.buffer.mu.Unlock()
		r.buffer.release()
	}
}
