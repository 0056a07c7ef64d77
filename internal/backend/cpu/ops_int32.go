package cpu

import "github.com/augur-ml/augur/internal/tensor"

// int32 kernels. Division truncates toward zero like Go integer division.

func addInplaceInt32(a, b []int32) {
	for i := range a {
		a[i] += b[i]
	}
}

func addFlatInt32(dst, a, b []int32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subInplaceInt32(a, b []int32) {
	for i := range a {
		a[i] -= b[i]
	}
}

func subFlatInt32(dst, a, b []int32) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulInplaceInt32(a, b []int32) {
	for i := range a {
		a[i] *= b[i]
	}
}

func mulFlatInt32(dst, a, b []int32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divInplaceInt32(a, b []int32) {
	for i := range a {
		a[i] /= b[i]
	}
}

func divFlatInt32(dst, a, b []int32) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func addBroadcastInt32(dst, a, b *tensor.RawTensor) {
	broadcastLoopInt32(dst, a, b, func(x, y int32) int32 { return x + y })
}

func subBroadcastInt32(dst, a, b *tensor.RawTensor) {
	broadcastLoopInt32(dst, a, b, func(x, y int32) int32 { return x - y })
}

func mulBroadcastInt32(dst, a, b *tensor.RawTensor) {
	broadcastLoopInt32(dst, a, b, func(x, y int32) int32 { return x * y })
}

func divBroadcastInt32(dst, a, b *tensor.RawTensor) {
	broadcastLoopInt32(dst, a, b, func(x, y int32) int32 { return x / y })
}

func broadcastLoopInt32(dst, a, b *tensor.RawTensor, op func(int32, int32) int32) {
	outShape := dst.Shape()
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)

	dstData := dst.AsInt32()
	aData := a.AsInt32()
	bData := b.AsInt32()

	coords := make([]int, len(outShape))
	for i := range dstData {
		dstData[i] = op(aData[flatOffset(coords, aStrides)], bData[flatOffset(coords, bStrides)])
		nextCoords(coords, outShape)
	}
}

func transposeInt32(dst, src *tensor.RawTensor, axes []int) {
	srcStrides := src.Strides()
	dstData := dst.AsInt32()
	srcData := src.AsInt32()

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
