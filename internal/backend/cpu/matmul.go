package cpu

import (
	"fmt"
	"runtime"

	"github.com/augur-ml/augur/internal/parallel"
	"github.com/augur-ml/augur/internal/tensor"
)

// matmulParallel splits output rows into bands across cores. The
// minimum band keeps small recurrent-step matmuls on one goroutine.
var matmulParallel = parallel.Config{
	Enabled:      runtime.NumCPU() > 1,
	NumWorkers:   runtime.NumCPU(),
	MinChunkSize: 64,
}

// MatMul multiplies two 2D tensors: [m, k] @ [k, n] -> [m, n].
//
// Float kernels run cache-blocked with the block edge derived from the
// detected L1 data cache (see hardware.go), and large outputs are split
// into row bands across cores. The int32 kernel stays a plain triple
// loop.
func (b *CPUBackend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), other.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul requires 2D tensors, got %v and %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul inner dimensions differ: %v @ %v", aShape, bShape))
	}
	if a.DType() != other.DType() {
		panic(fmt.Sprintf("matmul dtype mismatch: %s vs %s", a.DType(), other.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), b.device)
	if err != nil {
		panic(fmt.Sprintf("allocating matmul result: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		c, av, bv := result.AsFloat32(), a.AsFloat32(), other.AsFloat32()
		parallel.ForRange(m, func(start, end int) {
			matmulFloat32(c, av, bv, start, end, k, n)
		}, matmulParallel)
	case tensor.Float64:
		c, av, bv := result.AsFloat64(), a.AsFloat64(), other.AsFloat64()
		parallel.ForRange(m, func(start, end int) {
			matmulFloat64(c, av, bv, start, end, k, n)
		}, matmulParallel)
	case tensor.Int32:
		matmulInt32(result.AsInt32(), a.AsInt32(), other.AsInt32(), m, k, n)
	default:
		panic(fmt.Sprintf("unsupported dtype for matmul: %s", a.DType()))
	}
	return result
}

// matmulFloat32 fills output rows [rowStart, rowEnd). Bands touch
// disjoint rows of c, so they are safe to run concurrently.
func matmulFloat32(c, a, b []float32, rowStart, rowEnd, k, n int) {
	bs := matmulBlock
	for i0 := rowStart; i0 < rowEnd; i0 += bs {
		iMax := min(i0+bs, rowEnd)
		for k0 := 0; k0 < k; k0 += bs {
			kMax := min(k0+bs, k)
			for i := i0; i < iMax; i++ {
				for p := k0; p < kMax; p++ {
					aip := a[i*k+p]
					bRow := b[p*n : p*n+n]
					cRow := c[i*n : i*n+n]
					for j := range cRow {
						cRow[j] += aip * bRow[j]
					}
				}
			}
		}
	}
}

func matmulFloat64(c, a, b []float64, rowStart, rowEnd, k, n int) {
	bs := matmulBlock
	for i0 := rowStart; i0 < rowEnd; i0 += bs {
		iMax := min(i0+bs, rowEnd)
		for k0 := 0; k0 < k; k0 += bs {
			kMax := min(k0+bs, k)
			for i := i0; i < iMax; i++ {
				for p := k0; p < kMax; p++ {
					aip := a[i*k+p]
					bRow := b[p*n : p*n+n]
					cRow := c[i*n : i*n+n]
					for j := range cRow {
						cRow[j] += aip * bRow[j]
					}
				}
			}
		}
	}
}

func matmulInt32(c, a, b []int32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum int32
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
