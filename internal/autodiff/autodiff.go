// Package autodiff implements reverse-mode automatic differentiation
// with a decorator backend.
//
// AutodiffBackend wraps any tensor.Backend and records every operation
// it forwards onto a GradientTape. Walking the tape in reverse applies
// the chain rule and yields a gradient per recorded tensor.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
//	y := backend.Mul(x.Raw(), x.Raw())
//
//	grads := backend.Tape().Backward(y, seed, backend)
//	// grads[x.Raw()] holds dy/dx = 2x = 4
//
// Every operand is pinned with ForceNonUnique for the duration of the
// inner call. The CPU backend reuses a uniquely owned operand's buffer
// for the result; a tensor sitting on the tape must never be
// overwritten that way, and the pin makes the uniqueness check fail.
package autodiff

import (
	"math"

	"github.com/augur-ml/augur/internal/autodiff/ops"
	"github.com/augur-ml/augur/internal/tensor"
)

// AutodiffBackend decorates a Backend with gradient recording. It
// implements tensor.Backend itself, so models run unchanged on top of
// it.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for recording control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Add(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(a, c, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Sub(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(a, c, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Mul(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(a, c, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.Div(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDivOp(a, c, result))
	}
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	defer a.ForceNonUnique()()
	defer c.ForceNonUnique()()

	result := b.inner.MatMul(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMatMulOp(a, c, result))
	}
	return result
}

// AddScalar adds a scalar element-wise and records the operation.
func (b *AutodiffBackend[B]) AddScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer a.ForceNonUnique()()

	result := b.inner.AddScalar(a, scalar)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewShiftOp(a, result))
	}
	return result
}

// SubScalar subtracts a scalar element-wise and records the operation.
func (b *AutodiffBackend[B]) SubScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer a.ForceNonUnique()()

	result := b.inner.SubScalar(a, scalar)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewShiftOp(a, result))
	}
	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer a.ForceNonUnique()()

	result := b.inner.MulScalar(a, scalar)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewScaleOp(a, result, scalar))
	}
	return result
}

// DivScalar divides by a scalar and records the operation. The tape
// stores the reciprocal so the backward pass is a plain multiply.
func (b *AutodiffBackend[B]) DivScalar(a *tensor.RawTensor, scalar any) *tensor.RawTensor {
	defer a.ForceNonUnique()()

	result := b.inner.DivScalar(a, scalar)

	if b.tape.IsRecording() {
		var reciprocal any
		switch s := scalar.(type) {
		case float32:
			reciprocal = 1 / s
		case float64:
			reciprocal = 1 / s
		default:
			// Integer tensors carry no gradient; the op panics if the
			// backward pass ever reaches it.
			reciprocal = scalar
		}
		b.tape.Record(ops.NewScaleOp(a, result, reciprocal))
	}
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Recording matters even for pure shape movement. A recurrent step
// reshapes each window slice before its matrix product; without a
// ReshapeOp on the tape the gradient would stop at the reshaped copy
// and never reach the slice it came from.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	result := b.inner.Reshape(t, newShape)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReshapeOp(t, result))
	}
	return result
}

// Transpose permutes axes and records the operation.
//
// The backend materializes a transposed copy, so the result is a new
// tensor. A linear layer transposes its weight before the matrix
// product; the TransposeOp is what routes the weight's gradient back
// to the parameter the optimizer actually updates.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	defer t.ForceNonUnique()()

	ndim := len(t.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(t, axes...)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTransposeOp(t, result, axes))
	}
	return result
}

// Chunk splits a tensor into n equal parts and records the operation.
func (b *AutodiffBackend[B]) Chunk(t *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	defer t.ForceNonUnique()()

	results := b.inner.Chunk(t, n, dim)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewChunkOp(t, n, dim, results))
	}
	return results
}

// Cat concatenates tensors along a dimension and records the operation.
func (b *AutodiffBackend[B]) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	for _, t := range tensors {
		defer t.ForceNonUnique()()
	}

	result := b.inner.Cat(tensors, dim)

	if b.tape.IsRecording() {
		sizes := make([]int, len(tensors))
		for i, t := range tensors {
			sizes[i] = t.Shape()[dim]
		}
		b.tape.Record(ops.NewCatOp(tensors, dim, sizes, result))
	}
	return result
}

// Tanh applies the hyperbolic tangent and records the operation.
//
// Tanh is not part of the Backend interface; layers reach it through a
// type assertion on the backend. The forward pass runs here directly
// since it allocates its own result and cannot clobber the input.
func (b *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), b.Device())
	if err != nil {
		panic(err)
	}

	switch x.DType() {
	case tensor.Float32:
		xData := x.AsFloat32()
		resData := result.AsFloat32()
		for i, val := range xData {
			resData[i] = float32(math.Tanh(float64(val)))
		}
	case tensor.Float64:
		xData := x.AsFloat64()
		resData := result.AsFloat64()
		for i, val := range xData {
			resData[i] = math.Tanh(val)
		}
	default:
		panic("Tanh: only supports float32 and float64")
	}

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTanhOp(x, result))
	}
	return result
}

// ReLU applies the rectified linear unit and records the operation.
// Reached through a type assertion, like Tanh.
func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), b.Device())
	if err != nil {
		panic(err)
	}

	switch x.DType() {
	case tensor.Float32:
		xData := x.AsFloat32()
		resData := result.AsFloat32()
		for i, val := range xData {
			if val > 0 {
				resData[i] = val
			}
		}
	case tensor.Float64:
		xData := x.AsFloat64()
		resData := result.AsFloat64()
		for i, val := range xData {
			if val > 0 {
				resData[i] = val
			}
		}
	default:
		panic("ReLU: only supports float32 and float64")
	}

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReLUOp(x, result))
	}
	return result
}

// MSE computes the mean squared error between predictions and targets
// and records the operation.
//
// Like Tanh, MSE lives outside the Backend interface and is reached by
// assertion. Targets are constants, so only predictions are pinned and
// only predictions receive a gradient.
func (b *AutodiffBackend[B]) MSE(predictions, targets *tensor.RawTensor) *tensor.RawTensor {
	defer predictions.ForceNonUnique()()

	result := ops.MSEForward(predictions, targets, b.Device())

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMSEOp(predictions, targets, result))
	}
	return result
}
