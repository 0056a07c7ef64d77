package cpu

import "github.com/augur-ml/augur/internal/tensor"

// float64 kernels.

func addInplaceFloat64(a, b []float64) {
	for i := range a {
		a[i] += b[i]
	}
}

func addFlatFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subInplaceFloat64(a, b []float64) {
	for i := range a {
		a[i] -= b[i]
	}
}

func subFlatFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulInplaceFloat64(a, b []float64) {
	for i := range a {
		a[i] *= b[i]
	}
}

func mulFlatFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divInplaceFloat64(a, b []float64) {
	for i := range a {
		a[i] /= b[i]
	}
}

func divFlatFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func addBroadcastFloat64(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat64(dst, a, b, func(x, y float64) float64 { return x + y })
}

func subBroadcastFloat64(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat64(dst, a, b, func(x, y float64) float64 { return x - y })
}

func mulBroadcastFloat64(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat64(dst, a, b, func(x, y float64) float64 { return x * y })
}

func divBroadcastFloat64(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat64(dst, a, b, func(x, y float64) float64 { return x / y })
}

func broadcastLoopFloat64(dst, a, b *tensor.RawTensor, op func(float64, float64) float64) {
	outShape := dst.Shape()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	dstData := dst.AsFloat64()
	aData := a.AsFloat64()
	bData := b.AsFloat64()

	coords := make([]int, len(outShape))
	for i := range dstData {
		dstData[i] = op(aData[flatOffset(coords, aStrides)], bData[flatOffset(coords, bStrides)])
		nextCoords(coords, outShape)
	}
}

func transposeFloat64(dst, src *tensor.RawTensor, axes []int) {
	srcStrides := src.Strides()
	dstData := dst.AsFloat64()
	srcData := src.AsFloat64()

	outShape := dst.Shape()
	coords := make([]int, len(outShape))
	for i := range dstData {
		srcIdx := 0
		for d, ax := range axes {
			srcIdx += coords[d] * srcStrides[ax]
		}
		dstData[i] = srcData[srcIdx]
		nextCoords(coords, outShape)
	}
}
