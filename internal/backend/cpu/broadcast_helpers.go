package cpu

import "github.com/augur-ml/augur/internal/tensor"

// broadcastStrides returns strides for reading operandShape as if it
// had outShape. Broadcast axes (size 1, or axes missing on the left)
// get stride 0 so the same element is read for every output position.
func broadcastStrides(operandShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	operandStrides := tensor.ComputeStrides(operandShape)
	offset := len(outShape) - len(operandShape)

	for i := range outShape {
		if i < offset {
			strides[i] = 0
			continue
		}
		if operandShape[i-offset] == 1 && outShape[i] != 1 {
			strides[i] = 0
		} else {
			strides[i] = operandStrides[i-offset]
		}
	}
	return strides
}

// flatOffset converts multi-dimensional coords to a flat index under
// the given strides.
func flatOffset(coords, strides []int) int {
	idx := 0
	for i, c := range coords {
		idx += c * strides[i]
	}
	return idx
}

// nextCoords advances coords odometer-style within shape. The caller
// iterates exactly shape.NumElements() times.
func nextCoords(coords []int, shape tensor.Shape) {
	for i := len(coords) - 1; i >= 0; i-- {
		coords[i]++
		if coords[i] < shape[i] {
			return
		}
		coords[i] = 0
	}
}
