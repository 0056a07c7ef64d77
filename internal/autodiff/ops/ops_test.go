package ops

import (
	"math"
	"testing"

	"github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/internal/tensor"
)

func TestAddOp_Backward_Broadcast(t *testing.T) {
	backend := cpu.New()

	a := fillFloat32(t, tensor.Shape{2, 3}, 0)
	b := fillFloat32(t, tensor.Shape{3}, 0)
	out := backend.Add(a, b)

	op := NewAddOp(a, b, out)
	grads := op.Backward(fillFloat32(t, tensor.Shape{2, 3}, 1), backend)

	if len(grads) != 2 {
		t.Fatalf("got %d gradients, want 2", len(grads))
	}
	checkFloat32(t, grads[0], tensor.Shape{2, 3}, []float32{1, 1, 1, 1, 1, 1})
	// The broadcast operand accumulates over the batch axis.
	checkFloat32(t, grads[1], tensor.Shape{3}, []float32{2, 2, 2})
}

func TestSubOp_Backward(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{3}, []float32{5, 6, 7})
	b := rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	out := backend.Sub(a, b)

	op := NewSubOp(a, b, out)
	grads := op.Backward(rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3}), backend)

	checkFloat32(t, grads[0], tensor.Shape{3}, []float32{1, 2, 3})
	checkFloat32(t, grads[1], tensor.Shape{3}, []float32{-1, -2, -3})
}

func TestMulOp_Backward(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	b := rawFloat32(t, tensor.Shape{3}, []float32{4, 5, 6})

	// Pin a so the backend cannot overwrite it in place; the autodiff
	// decorator does this for every recorded operand.
	unpin := a.ForceNonUnique()
	out := backend.Mul(a, b)
	unpin()

	op := NewMulOp(a, b, out)
	grads := op.Backward(fillFloat32(t, tensor.Shape{3}, 1), backend)

	checkFloat32(t, grads[0], tensor.Shape{3}, []float32{4, 5, 6})
	checkFloat32(t, grads[1], tensor.Shape{3}, []float32{1, 2, 3})
}

func TestDivOp_Backward(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{2}, []float32{4, 9})
	b := rawFloat32(t, tensor.Shape{2}, []float32{2, 3})

	unpin := a.ForceNonUnique()
	out := backend.Div(a, b)
	unpin()

	op := NewDivOp(a, b, out)
	grads := op.Backward(fillFloat32(t, tensor.Shape{2}, 1), backend)

	// dz/da = 1/b, dz/db = -a/b²
	checkFloat32(t, grads[0], tensor.Shape{2}, []float32{0.5, 1.0 / 3.0})
	checkFloat32(t, grads[1], tensor.Shape{2}, []float32{-1, -1})
}

func TestMatMulOp_Backward(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := rawFloat32(t, tensor.Shape{3, 2}, []float32{1, 2, 3, 4, 5, 6})
	out := backend.MatMul(a, b)

	op := NewMatMulOp(a, b, out)
	grads := op.Backward(fillFloat32(t, tensor.Shape{2, 2}, 1), backend)

	// grad @ bᵀ and aᵀ @ grad with an all-ones upstream gradient.
	checkFloat32(t, grads[0], tensor.Shape{2, 3}, []float32{3, 7, 11, 3, 7, 11})
	checkFloat32(t, grads[1], tensor.Shape{3, 2}, []float32{5, 5, 7, 7, 9, 9})
}

func TestTanhOp_Backward(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2}, []float32{0, 0})
	output := rawFloat32(t, tensor.Shape{2}, []float32{0, 0.5})

	op := NewTanhOp(input, output)
	grads := op.Backward(fillFloat32(t, tensor.Shape{2}, 1), backend)

	// 1 - tanh² evaluated on the stored outputs.
	checkFloat32(t, grads[0], tensor.Shape{2}, []float32{1, 0.75})
}

func TestReshapeOp_Backward(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	output := backend.Reshape(input, tensor.Shape{6})

	op := NewReshapeOp(input, output)
	grads := op.Backward(rawFloat32(t, tensor.Shape{6}, []float32{1, 2, 3, 4, 5, 6}), backend)

	checkFloat32(t, grads[0], tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
}

func TestTransposeOp_Backward(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	output := backend.Transpose(input, 1, 0)

	op := NewTransposeOp(input, output, []int{1, 0})

	// Gradient arrives in the transposed layout and must come back in
	// the input layout.
	outputGrad := rawFloat32(t, tensor.Shape{3, 2}, []float32{10, 40, 20, 50, 30, 60})
	grads := op.Backward(outputGrad, backend)

	checkFloat32(t, grads[0], tensor.Shape{2, 3}, []float32{10, 20, 30, 40, 50, 60})
}

func TestChunkOp_BackwardMulti(t *testing.T) {
	backend := cpu.New()

	// [batch=1, steps=3, features=2] split along the step axis.
	input := rawFloat32(t, tensor.Shape{1, 3, 2}, []float32{1, 2, 3, 4, 5, 6})
	outputs := backend.Chunk(input, 3, 1)

	op := NewChunkOp(input, 3, 1, outputs)

	gradOutputs := []*tensor.RawTensor{
		rawFloat32(t, tensor.Shape{1, 1, 2}, []float32{10, 20}),
		rawFloat32(t, tensor.Shape{1, 1, 2}, []float32{30, 40}),
		rawFloat32(t, tensor.Shape{1, 1, 2}, []float32{50, 60}),
	}
	grads := op.BackwardMulti(gradOutputs, backend)

	if len(grads) != 1 {
		t.Fatalf("got %d gradients, want 1", len(grads))
	}
	checkFloat32(t, grads[0], tensor.Shape{1, 3, 2}, []float32{10, 20, 30, 40, 50, 60})
}

func TestChunkOp_Backward_Panics(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	outputs := backend.Chunk(input, 2, 0)
	op := NewChunkOp(input, 2, 0, outputs)

	defer func() {
		if recover() == nil {
			t.Error("single-gradient Backward on a chunk did not panic")
		}
	}()
	op.Backward(fillFloat32(t, tensor.Shape{1, 2}, 1), backend)
}

func TestCatOp_Backward_UnequalSizes(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{1, 2}, []float32{1, 2})
	b := rawFloat32(t, tensor.Shape{2, 2}, []float32{3, 4, 5, 6})
	out := backend.Cat([]*tensor.RawTensor{a, b}, 0)

	op := NewCatOp([]*tensor.RawTensor{a, b}, 0, []int{1, 2}, out)

	outputGrad := rawFloat32(t, tensor.Shape{3, 2}, []float32{10, 20, 30, 40, 50, 60})
	grads := op.Backward(outputGrad, backend)

	if len(grads) != 2 {
		t.Fatalf("got %d gradients, want 2", len(grads))
	}
	checkFloat32(t, grads[0], tensor.Shape{1, 2}, []float32{10, 20})
	checkFloat32(t, grads[1], tensor.Shape{2, 2}, []float32{30, 40, 50, 60})
}

func TestCatOp_Backward_InnerDim(t *testing.T) {
	backend := cpu.New()

	a := rawFloat32(t, tensor.Shape{2, 1}, []float32{1, 2})
	b := rawFloat32(t, tensor.Shape{2, 2}, []float32{3, 4, 5, 6})
	out := backend.Cat([]*tensor.RawTensor{a, b}, 1)

	op := NewCatOp([]*tensor.RawTensor{a, b}, 1, []int{1, 2}, out)

	outputGrad := rawFloat32(t, tensor.Shape{2, 3}, []float32{10, 20, 30, 40, 50, 60})
	grads := op.Backward(outputGrad, backend)

	checkFloat32(t, grads[0], tensor.Shape{2, 1}, []float32{10, 40})
	checkFloat32(t, grads[1], tensor.Shape{2, 2}, []float32{20, 30, 50, 60})
}

func TestScaleOp_Backward(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2}, []float32{1, 2})
	output := backend.MulScalar(input, float32(3))

	op := NewScaleOp(input, output, float32(3))
	grads := op.Backward(rawFloat32(t, tensor.Shape{2}, []float32{1, 10}), backend)

	checkFloat32(t, grads[0], tensor.Shape{2}, []float32{3, 30})
}

func TestShiftOp_Backward(t *testing.T) {
	backend := cpu.New()

	input := rawFloat32(t, tensor.Shape{2}, []float32{1, 2})
	output := backend.AddScalar(input, float32(5))

	op := NewShiftOp(input, output)
	outputGrad := rawFloat32(t, tensor.Shape{2}, []float32{7, 8})
	grads := op.Backward(outputGrad, backend)

	checkFloat32(t, grads[0], tensor.Shape{2}, []float32{7, 8})
	if grads[0].IsUnique() {
		t.Error("shift gradient should share the upstream buffer via clone")
	}
}

func TestMSEForward(t *testing.T) {
	preds := rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	targets := rawFloat32(t, tensor.Shape{3}, []float32{1, 1, 1})

	loss := MSEForward(preds, targets, tensor.CPU)

	// (0 + 1 + 4) / 3
	if got := loss.AsFloat32()[0]; math.Abs(float64(got)-5.0/3.0) > 1e-6 {
		t.Errorf("loss = %v, want %v", got, 5.0/3.0)
	}
}

func TestMSEOp_Backward(t *testing.T) {
	backend := cpu.New()

	preds := rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	targets := rawFloat32(t, tensor.Shape{3}, []float32{1, 1, 1})
	loss := MSEForward(preds, targets, tensor.CPU)

	op := NewMSEOp(preds, targets, loss)

	if len(op.Inputs()) != 1 {
		t.Fatalf("MSE differentiates predictions only, got %d inputs", len(op.Inputs()))
	}

	grads := op.Backward(fillFloat32(t, tensor.Shape{1}, 1), backend)

	// 2 * (p - t) / n
	checkFloat32(t, grads[0], tensor.Shape{3}, []float32{0, 2.0 / 3.0, 4.0 / 3.0})
}

func TestMSEOp_Backward_ScaledUpstream(t *testing.T) {
	backend := cpu.New()

	preds := rawFloat32(t, tensor.Shape{2}, []float32{2, 4})
	targets := rawFloat32(t, tensor.Shape{2}, []float32{1, 1})
	loss := MSEForward(preds, targets, tensor.CPU)

	op := NewMSEOp(preds, targets, loss)
	grads := op.Backward(fillFloat32(t, tensor.Shape{1}, 0.5), backend)

	checkFloat32(t, grads[0], tensor.Shape{2}, []float32{0.5, 1.5})
}

func TestMSEForward_ShapeMismatchPanics(t *testing.T) {
	preds := rawFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	targets := rawFloat32(t, tensor.Shape{2}, []float32{1, 1})

	defer func() {
		if recover() == nil {
			t.Error("shape mismatch did not panic")
		}
	}()
	MSEForward(preds, targets, tensor.CPU)
}
