package cpu

import "github.com/augur-ml/augur/internal/tensor"

// float32 kernels. The flat loops are kept free of bounds work beyond
// the slice range so the compiler can vectorize them.

func addInplaceFloat32(a, b []float32) {
	for i := range a {
		a[i] += b[i]
	}
}

func addFlatFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subInplaceFloat32(a, b []float32) {
	for i := range a {
		a[i] -= b[i]
	}
}

func subFlatFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulInplaceFloat32(a, b []float32) {
	for i := range a {
		a[i] *= b[i]
	}
}

func mulFlatFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divInplaceFloat32(a, b []float32) {
	for i := range a {
		a[i] /= b[i]
	}
}

func divFlatFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func addBroadcastFloat32(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat32(dst, a, b, func(x, y float32) float32 { return x + y })
}

func subBroadcastFloat32(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat32(dst, a, b, func(x, y float32) float32 { return x - y })
}

func mulBroadcastFloat32(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat32(dst, a, b, func(x, y float32) float32 { return x * y })
}

func divBroadcastFloat32(dst, a, b *tensor.RawTensor) {
	broadcastLoopFloat32(dst, a, b, func(x, y float32) float32 { return x / y })
}

func broadcastLoopFloat32(dst, a, b *tensor.RawTensor, op func(float32, float32) float32) {
	outShape := dst.Shape()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	dstData := dst.AsFloat32()
	aData := a.AsFloat32()
	bData := b.AsFloat32()

	coords := make([]int, len(outShape))
	for i := range dstData {
		dstData[i] = op(aData[flatOffset(coords, aStrides)], bData[flatOffset(coords, bStrides)])
		nextCoords(coords, outShape)
	}
}

func transposeFloat32(dst, src *tensor.RawTensor, axes []int) {
	srcStrides := src.Strides()
	dstData := dst.AsFloat32()
	srcData := src.AsFloat32()

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
