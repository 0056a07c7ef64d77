package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a minimal backend for tests inside this package,
// which cannot import backend/cpu without an import cycle. Element-wise
// and scalar arithmetic are implemented naively through float64;
// structural operations that the tests do not need panic.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string { return "mock" }

// Device returns the device type.
func (m *MockBackend) Device() Device { return CPU }

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar adds a scalar to every element.
func (m *MockBackend) AddScalar(a *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(a, scalar, func(x, s float64) float64 { return x + s })
}

// SubScalar subtracts a scalar from every element.
func (m *MockBackend) SubScalar(a *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(a, scalar, func(x, s float64) float64 { return x - s })
}

// MulScalar multiplies every element by a scalar.
func (m *MockBackend) MulScalar(a *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(a, scalar, func(x, s float64) float64 { return x * s })
}

// DivScalar divides every element by a scalar.
func (m *MockBackend) DivScalar(a *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(a, scalar, func(x, s float64) float64 { return x / s })
}

// Reshape copies the elements into a tensor with the new shape.
func (m *MockBackend) Reshape(a *RawTensor, shape Shape) *RawTensor {
	if a.NumElements() != shape.NumElements() {
		panic(fmt.Sprintf("cannot reshape %v (%d elements) to %v (%d elements)",
			a.Shape(), a.NumElements(), shape, shape.NumElements()))
	}
	result, err := NewRaw(shape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), a.Data()[:a.NumElements()*a.DType().Size()])
	return result
}

// MatMul is not implemented on the mock backend.
func (m *MockBackend) MatMul(_, _ *RawTensor) *RawTensor {
	panic("mock backend does not implement MatMul")
}

// Transpose is not implemented on the mock backend.
func (m *MockBackend) Transpose(_ *RawTensor, _ ...int) *RawTensor {
	panic("mock backend does not implement Transpose")
}

// Chunk is not implemented on the mock backend.
func (m *MockBackend) Chunk(_ *RawTensor, _, _ int) []*RawTensor {
	panic("mock backend does not implement Chunk")
}

// Cat is not implemented on the mock backend.
func (m *MockBackend) Cat(_ []*RawTensor, _ int) *RawTensor {
	panic("mock backend does not implement Cat")
}

func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}
	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := toFloat64Slice(a)
	bData := toFloat64Slice(b)
	out := make([]float64, outShape.NumElements())

	for i := range out {
		out[i] = op(aData[broadcastIndex(i, outShape, a.Shape())],
			bData[broadcastIndex(i, outShape, b.Shape())])
	}

	fromFloat64Slice(out, result)
	return result
}

func (m *MockBackend) scalarWise(a *RawTensor, scalar any, op func(float64, float64) float64) *RawTensor {
	result, err := NewRaw(a.Shape(), a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	var s float64
	switch v := scalar.(type) {
	case float32:
		s = float64(v)
	case float64:
		s = v
	case int32:
		s = float64(v)
	default:
		panic(fmt.Sprintf("unsupported scalar type: %T", scalar))
	}

	aData := toFloat64Slice(a)
	out := make([]float64, len(aData))
	for i := range out {
		out[i] = op(aData[i], s)
	}

	fromFloat64Slice(out, result)
	return result
}

// toFloat64Slice lifts any supported dtype into float64 for naive math.
func toFloat64Slice(r *RawTensor) []float64 {
	n := r.NumElements()
	out := make([]float64, n)
	switch r.DType() {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.DType()))
	}
	return out
}

// fromFloat64Slice writes float64 values back using the tensor dtype.
func fromFloat64Slice(values []float64, r *RawTensor) {
	switch r.DType() {
	case Float32:
		dst := r.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case Float64:
		copy(r.AsFloat64(), values)
	case Int32:
		dst := r.AsInt32()
		for i, v := range values {
			dst[i] = int32(v)
		}
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.DType()))
	}
}

// broadcastIndex maps a flat index in the output shape to the flat
// index in a (possibly smaller) operand shape.
func broadcastIndex(flatIdx int, outShape, operandShape Shape) int {
	if outShape.Equal(operandShape) {
		return flatIdx
	}

	outStrides := ComputeStrides(outShape)
	coords := make([]int, len(outShape))
	rest := flatIdx
	for i := range outShape {
		coords[i] = rest / outStrides[i]
		rest %= outStrides[i]
	}

	operandStrides := ComputeStrides(operandShape)
	offset := len(outShape) - len(operandShape)
	idx := 0
	for i, stride := range operandStrides {
		coord := coords[i+offset]
		if operandShape[i] == 1 {
			coord = 0
		}
		idx += coord * stride
	}
	return idx
}
