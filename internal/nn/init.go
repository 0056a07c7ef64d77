package nn

import (
	"math"

	"github.com/augur-ml/augur/internal/tensor"
)

// Xavier initializes a weight tensor with the Glorot uniform scheme:
// U(-sqrt(6/(fan_in+fan_out)), sqrt(6/(fan_in+fan_out))). It keeps the
// variance of activations roughly constant across layers.
//
// Draws come from the shared tensor generator, so tensor.Seed makes
// initialization reproducible.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform[float32](shape, -bound, bound, backend)
}

// Uniform initializes a tensor with U(-bound, bound). Recurrent layers
// use it with bound = 1/sqrt(hidden_size).
func Uniform[B tensor.Backend](bound float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Uniform[float32](shape, -bound, bound, backend)
}

// Zeros creates a zero-filled tensor, the usual bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
