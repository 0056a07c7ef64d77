package autodiff

import (
	"fmt"

	"github.com/augur-ml/augur/internal/tensor"
)

// BackwardCapable is a backend that can run a backward pass.
// AutodiffBackend implements it.
type BackwardCapable interface {
	tensor.Backend

	// GetTape returns the gradient tape.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape.
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward seeds a ones gradient at t and walks the backend's tape in
// reverse. The returned map holds one gradient per raw tensor the loss
// depends on.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
//	y := tensor.New[float32](backend.Mul(x.Raw(), x.Raw()), backend)
//	grads := autodiff.Backward(y, backend)
//	_ = grads[x.Raw()] // dy/dx
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget Tape().StartRecording()?)")
	}

	seed, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: creating seed gradient: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		data := seed.AsFloat32()
		for i := range data {
			data[i] = 1.0
		}
	case tensor.Float64:
		data := seed.AsFloat64()
		for i := range data {
			data[i] = 1.0
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s", t.DType()))
	}

	return tape.Backward(t.Raw(), seed, backend)
}
