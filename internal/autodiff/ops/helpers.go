package ops

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// reduceBroadcast shrinks a gradient back to the shape its operand had
// before broadcasting. Broadcast repeats an operand across axes; the
// chain rule therefore sums the gradient over exactly those axes.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	if gradShape.Equal(targetShape) {
		// Clone so accumulation in the tape never aliases a gradient
		// another op still reads.
		return grad.Clone()
	}

	if targetShape.NumElements() == 1 {
		summed := sumAll(grad)
		return backend.Reshape(summed, targetShape)
	}

	reduced := grad
	// Sum away leading axes the operand never had.
	for len(reduced.Shape()) > len(targetShape) {
		reduced = sumAxis(reduced, 0)
	}
	// Sum axes the operand held with size 1.
	for axis := 0; axis < len(targetShape); axis++ {
		if targetShape[axis] == 1 && reduced.Shape()[axis] != 1 {
			reduced = sumAxis(reduced, axis)
			reduced = backend.Reshape(reduced, insertAxis(reduced.Shape(), axis))
		}
	}

	if !reduced.Shape().Equal(targetShape) {
		reduced = backend.Reshape(reduced, targetShape)
	}
	return reduced
}

// insertAxis returns shape with a size-1 axis inserted at position axis.
func insertAxis(shape tensor.Shape, axis int) tensor.Shape {
	out := make(tensor.Shape, 0, len(shape)+1)
	out = append(out, shape[:axis]...)
	out = append(out, 1)
	out = append(out, shape[axis:]...)
	return out
}

// sumAll reduces every element into a single-element tensor.
func sumAll(t *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("allocating reduction result: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range t.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range t.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("unsupported dtype for gradient reduction: %s", t.DType()))
	}
	return result
}

// sumAxis sums along one axis, dropping it from the shape.
func sumAxis(t *tensor.RawTensor, axis int) *tensor.RawTensor {
	shape := t.Shape()
	outShape := make(tensor.Shape, 0, len(shape)-1)
	outShape = append(outShape, shape[:axis]...)
	outShape = append(outShape, shape[axis+1:]...)
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	result, err := tensor.NewRaw(outShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("allocating reduction result: %v", err))
	}

	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}
	axisLen := shape[axis]
	inner := 1
	for d := axis + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for o := 0; o < outer; o++ {
			for a := 0; a < axisLen; a++ {
				base := (o*axisLen + a) * inner
				out := o * inner
				for i := 0; i < inner; i++ {
					dst[out+i] += src[base+i]
				}
			}
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for o := 0; o < outer; o++ {
			for a := 0; a < axisLen; a++ {
				base := (o*axisLen + a) * inner
				out := o * inner
				for i := 0; i < inner; i++ {
					dst[out+i] += src[base+i]
				}
			}
		}
	default:
		panic(fmt.Sprintf("unsupported dtype for gradient reduction: %s", t.DType()))
	}
	return result
}

// negate returns the element-wise negation of a gradient.
func negate(grad *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	switch grad.DType() {
	case tensor.Float32:
		return backend.MulScalar(grad, float32(-1))
	case tensor.Float64:
		return backend.MulScalar(grad, float64(-1))
	default:
		panic(fmt.Sprintf("unsupported dtype for gradient negation: %s", grad.DType()))
	}
}
