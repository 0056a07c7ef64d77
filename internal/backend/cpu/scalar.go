package cpu

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// Scalar operations. The scalar's Go type must match the tensor dtype;
// a float64 scalar against a float32 tensor is a programming error and
// panics in the type assertion.

// AddScalar returns a + scalar element-wise.
func (b *CPUBackend) AddScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.allocLike(a)
	switch a.DType() {
	case tensor.Float32:
		addScalarFloat32(result.AsFloat32(), a.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		addScalarFloat64(result.AsFloat64(), a.AsFloat64(), scalar.(float64))
	case tensor.Int32:
		addScalarInt32(result.AsInt32(), a.AsInt32(), scalar.(int32))
	default:
		panic(fmt.Sprintf("unsupported dtype for add scalar: %s", a.DType()))
	}
	return result
}

// SubScalar returns a - scalar element-wise.
func (b *CPUBackend) SubScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.allocLike(a)
	switch a.DType() {
	case tensor.Float32:
		addScalarFloat32(result.AsFloat32(), a.AsFloat32(), -scalar.(float32))
	case tensor.Float64:
		addScalarFloat64(result.AsFloat64(), a.AsFloat64(), -scalar.(float64))
	case tensor.Int32:
		addScalarInt32(result.AsInt32(), a.AsInt32(), -scalar.(int32))
	default:
		panic(fmt.Sprintf("unsupported dtype for sub scalar: %s", a.DType()))
	}
	return result
}

// MulScalar returns a * scalar element-wise.
func (b *CPUBackend) MulScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.allocLike(a)
	switch a.DType() {
	case tensor.Float32:
		mulScalarFloat32(result.AsFloat32(), a.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		mulScalarFloat64(result.AsFloat64(), a.AsFloat64(), scalar.(float64))
	case tensor.Int32:
		mulScalarInt32(result.AsInt32(), a.AsInt32(), scalar.(int32))
	default:
		panic(fmt.Sprintf("unsupported dtype for mul scalar: %s", a.DType()))
	}
	return result
}

// DivScalar returns a / scalar element-wise.
func (b *CPUBackend) DivScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.allocLike(a)
	switch a.DType() {
	case tensor.Float32:
		divScalarFloat32(result.AsFloat32(), a.AsFloat32(), scalar.(float32))
	case tensor.Float64:
		divScalarFloat64(result.AsFloat64(), a.AsFloat64(), scalar.(float64))
	case tensor.Int32:
		divScalarInt32(result.AsInt32(), a.AsInt32(), scalar.(int32))
	default:
		panic(fmt.Sprintf("unsupported dtype for div scalar: %s", a.DType()))
	}
	return result
}

// allocLike allocates an uninitialized result with a's shape and dtype.
func (b *CPUBackend) allocLike(a *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(a.Shape(), a.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating result: %v", err))
	}
	return result
}

func addScalarFloat32(dst, a []float32, s float32) {
	for i := range dst {
		dst[i] = a[i] + s
	}
}

func addScalarFloat64(dst, a []float64, s float64) {
	for i := range dst {
		dst[i] = a[i] + s
	}
}

func addScalarInt32(dst, a []int32, s int32) {
	for i := range dst {
		dst[i] = a[i] + s
	}
}

func mulScalarFloat32(dst, a []float32, s float32) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func mulScalarFloat64(dst, a []float64, s float64) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func mulScalarInt32(dst, a []int32, s int32) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func divScalarFloat32(dst, a []float32, s float32) {
	for i := range dst {
		dst[i] = a[i] / s
	}
}

func divScalarFloat64(dst, a []float64, s float64) {
	for i := range dst {
		dst[i] = a[i] / s
	}
}

func divScalarInt32(dst, a []int32, s int32) {
	for i := range dst {
		dst[i] = a[i] / s
	}
}
