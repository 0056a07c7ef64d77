package cpu

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// Dispatch functions select the per-dtype kernel for each operation
// path. Unknown dtypes panic; the tensor package only constructs the
// three supported ones.

// ==================== Addition ====================

func addInplace(a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		addInplaceFloat32(a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		addInplaceFloat64(a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		addInplaceInt32(a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for add: %s", a.DType()))
	}
}

func addFlat(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		addFlatFloat32(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		addFlatFloat64(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		addFlatInt32(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for add: %s", dst.DType()))
	}
}

func addBroadcast(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		addBroadcastFloat32(dst, a, b)
	case tensor.Float64:
		addBroadcastFloat64(dst, a, b)
	case tensor.Int32:
		addBroadcastInt32(dst, a, b)
	default:
		panic(fmt.Sprintf("unsupported dtype for add: %s", dst.DType()))
	}
}

// ==================== Subtraction ====================

func subInplace(a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		subInplaceFloat32(a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		subInplaceFloat64(a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		subInplaceInt32(a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for sub: %s", a.DType()))
	}
}

func subFlat(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		subFlatFloat32(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		subFlatFloat64(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		subFlatInt32(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for sub: %s", dst.DType()))
	}
}

func subBroadcast(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		subBroadcastFloat32(dst, a, b)
	case tensor.Float64:
		subBroadcastFloat64(dst, a, b)
	case tensor.Int32:
		subBroadcastInt32(dst, a, b)
	default:
		panic(fmt.Sprintf("unsupported dtype for sub: %s", dst.DType()))
	}
}

// ==================== Multiplication ====================

func mulInplace(a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		mulInplaceFloat32(a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		mulInplaceFloat64(a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		mulInplaceInt32(a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for mul: %s", a.DType()))
	}
}

func mulFlat(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		mulFlatFloat32(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		mulFlatFloat64(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		mulFlatInt32(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for mul: %s", dst.DType()))
	}
}

func mulBroadcast(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		mulBroadcastFloat32(dst, a, b)
	case tensor.Float64:
		mulBroadcastFloat64(dst, a, b)
	case tensor.Int32:
		mulBroadcastInt32(dst, a, b)
	default:
		panic(fmt.Sprintf("unsupported dtype for mul: %s", dst.DType()))
	}
}

// ==================== Division ====================

func divInplace(a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		divInplaceFloat32(a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		divInplaceFloat64(a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		divInplaceInt32(a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for div: %s", a.DType()))
	}
}

func divFlat(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		divFlatFloat32(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		divFlatFloat64(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		divFlatInt32(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	default:
		panic(fmt.Sprintf("unsupported dtype for div: %s", dst.DType()))
	}
}

func divBroadcast(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		divBroadcastFloat32(dst, a, b)
	case tensor.Float64:
		divBroadcastFloat64(dst, a, b)
	case tensor.Int32:
		divBroadcastInt32(dst, a, b)
	default:
		panic(fmt.Sprintf("unsupported dtype for div: %s", dst.DType()))
	}
}

// ==================== Transpose ====================

func transposeData(dst, src *tensor.RawTensor, axes []int) {
	switch dst.DType() {
	case tensor.Float32:
		transposeFloat32(dst, src, axes)
	case tensor.Float64:
		transposeFloat64(dst, src, axes)
	case tensor.Int32:
		transposeInt32(dst, src, axes)
	default:
		panic(fmt.Sprintf("unsupported dtype for transpose: %s", dst.DType()))
	}
}
