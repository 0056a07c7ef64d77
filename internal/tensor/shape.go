package tensor

import "fmt"

// Shape describes the dimensions of a tensor.
//
// A window batch of 16 examples with 12 time steps of 1 feature has
// Shape{16, 12, 1}. An empty Shape describes a scalar.
type Shape []int

// NumElements returns the total number of elements a shape holds.
// A scalar shape has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate returns an error if any dimension is non-positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension %d at axis %d: dimensions must be positive", dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// ComputeStrides returns row-major strides for the shape, measured in
// elements. The last axis always has stride 1.
func ComputeStrides(shape Shape) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// BroadcastShapes computes the broadcast result of two shapes under
// NumPy alignment rules: shapes are right-aligned, and each pair of
// dimensions must be equal or contain a 1.
//
// Returns the result shape and whether either operand actually needs
// broadcasting to reach it.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		dimA, dimB := 1, 1
		if idx := len(a) - maxLen + i; idx >= 0 {
			dimA = a[idx]
		}
		if idx := len(b) - maxLen + i; idx >= 0 {
			dimB = b[idx]
		}

		switch {
		case dimA == dimB:
			result[i] = dimA
		case dimA == 1:
			result[i] = dimB
			needsBroadcast = true
		case dimB == 1:
			result[i] = dimA
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes %v and %v are not broadcastable at axis %d", a, b, i)
		}
	}

	return result, needsBroadcast, nil
}
