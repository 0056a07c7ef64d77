package tensor

import (
	"fmt"
	"math"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("creating zeros tensor: %v", err))
	}
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return Full[T, B](shape, 1, backend)
}

// Full creates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with elements drawn from the standard normal
// distribution, generated in pairs with the Box-Muller transform.
// Only floating point element types are supported. Draws come from the
// shared generator, so Seed makes them reproducible.
func Randn[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()

	for i := 0; i < len(data); i += 2 {
		u1, u2 := randFloat64(), randFloat64()
		r := math.Sqrt(-2 * math.Log(u1))
		z0 := r * math.Cos(2*math.Pi*u2)
		z1 := r * math.Sin(2*math.Pi*u2)

		data[i] = fromFloat64[T](z0)
		if i+1 < len(data) {
			data[i+1] = fromFloat64[T](z1)
		}
	}
	return t
}

// Rand creates a tensor with elements drawn uniformly from [0, 1).
func Rand[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = fromFloat64[T](randFloat64())
	}
	return t
}

// Uniform creates a tensor with elements drawn uniformly from [low, high).
func Uniform[T DType, B Backend](shape Shape, low, high float64, backend B) *Tensor[T, B] {
	if high < low {
		panic(fmt.Sprintf("uniform bounds inverted: [%v, %v)", low, high))
	}
	t := Zeros[T, B](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = fromFloat64[T](low + randFloat64()*(high-low))
	}
	return t
}

// Arange creates a 1D tensor with values [start, start+1, ..., end-1].
func Arange[T DType, B Backend](start, end T, backend B) *Tensor[T, B] {
	n := int(float64(end) - float64(start))
	if n <= 0 {
		panic(fmt.Sprintf("arange bounds produce no elements: [%v, %v)", start, end))
	}
	t := Zeros[T, B](Shape{n}, backend)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

// fromFloat64 converts a float64 to the tensor element type.
// Integer element types reject fractional sources.
func fromFloat64[T DType](v float64) T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return T(float32(v))
	case float64:
		return T(v)
	case int32:
		panic("random initialization requires a floating point element type")
	default:
		panic(fmt.Sprintf("unsupported element type: %T", dummy))
	}
}
