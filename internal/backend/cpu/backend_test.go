package cpu

import (
	"testing"

	"github.com/augur-ml/augur/internal/tensor"
)

func newFloat32(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func newFloat64(t *testing.T, shape tensor.Shape, data []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

func float32Close(a, b []float32) bool {
	const epsilon = 1e-5
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > epsilon {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}

func TestAddSameShape(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newFloat32(t, tensor.Shape{2, 3}, []float32{10, 20, 30, 40, 50, 60})

	result := backend.Add(a, b)

	want := []float32{11, 22, 33, 44, 55, 66}
	if !float32Close(result.AsFloat32(), want) {
		t.Errorf("Add = %v, want %v", result.AsFloat32(), want)
	}
}

func TestAddInplaceReusesBuffer(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	b := newFloat32(t, tensor.Shape{3}, []float32{10, 20, 30})

	result := backend.Add(a, b)
	if result != a {
		t.Error("unique left operand with matching shape should be updated in place")
	}
}

func TestAddPinnedOperandAllocates(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	b := newFloat32(t, tensor.Shape{3}, []float32{10, 20, 30})

	release := a.ForceNonUnique()
	defer release()

	result := backend.Add(a, b)
	if result == a {
		t.Fatal("pinned operand was overwritten")
	}
	if !float32Close(a.AsFloat32(), []float32{1, 2, 3}) {
		t.Errorf("pinned operand mutated: %v", a.AsFloat32())
	}
	if !float32Close(result.AsFloat32(), []float32{11, 22, 33}) {
		t.Errorf("result = %v, want [11 22 33]", result.AsFloat32())
	}
}

func TestAddBroadcastBias(t *testing.T) {
	backend := New()
	matrix := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	bias := newFloat32(t, tensor.Shape{3}, []float32{10, 20, 30})

	result := backend.Add(matrix, bias)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast shape = %v, want [2 3]", result.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	if !float32Close(result.AsFloat32(), want) {
		t.Errorf("broadcast Add = %v, want %v", result.AsFloat32(), want)
	}
}

func TestSubMulDiv(t *testing.T) {
	backend := New()
	a := newFloat64(t, tensor.Shape{4}, []float64{10, 20, 30, 40})
	b := newFloat64(t, tensor.Shape{4}, []float64{2, 4, 5, 8})

	release := a.ForceNonUnique()
	defer release()

	sub := backend.Sub(a, b).AsFloat64()
	if sub[0] != 8 || sub[3] != 32 {
		t.Errorf("Sub = %v", sub)
	}

	mul := backend.Mul(a, b).AsFloat64()
	if mul[1] != 80 || mul[2] != 150 {
		t.Errorf("Mul = %v", mul)
	}

	div := backend.Div(a, b).AsFloat64()
	if div[0] != 5 || div[3] != 5 {
		t.Errorf("Div = %v", div)
	}
}

func TestDTypeMismatchPanics(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2}, []float32{1, 2})
	b := newFloat64(t, tensor.Shape{2}, []float64{1, 2})

	defer func() {
		if recover() == nil {
			t.Error("mixed dtypes did not panic")
		}
	}()
	backend.Add(a, b)
}

func TestMatMul(t *testing.T) {
	backend := New()

	// [2,3] @ [3,2] -> [2,2]
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newFloat32(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})

	result := backend.MatMul(a, b)

	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("matmul shape = %v, want [2 2]", result.Shape())
	}
	want := []float32{58, 64, 139, 154}
	if !float32Close(result.AsFloat32(), want) {
		t.Errorf("MatMul = %v, want %v", result.AsFloat32(), want)
	}
}

func TestMatMulBlockedMatchesNaive(t *testing.T) {
	backend := New()

	// Large enough to cross block boundaries.
	const m, k, n = 70, 65, 67
	a, _ := tensor.NewRaw(tensor.Shape{m, k}, tensor.Float64, tensor.CPU)
	b, _ := tensor.NewRaw(tensor.Shape{k, n}, tensor.Float64, tensor.CPU)
	aData, bData := a.AsFloat64(), b.AsFloat64()
	for i := range aData {
		aData[i] = float64(i%13) - 6
	}
	for i := range bData {
		bData[i] = float64(i%7) - 3
	}

	got := backend.MatMul(a, b).AsFloat64()

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var want float64
			for p := 0; p < k; p++ {
				want += aData[i*k+p] * bData[p*n+j]
			}
			if diff := got[i*n+j] - want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("blocked matmul diverges at (%d,%d): got %v, want %v", i, j, got[i*n+j], want)
			}
		}
	}
}

func TestMatMulShapeMismatchPanics(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, make([]float32, 6))
	b := newFloat32(t, tensor.Shape{4, 2}, make([]float32, 8))

	defer func() {
		if recover() == nil {
			t.Error("mismatched inner dimensions did not panic")
		}
	}()
	backend.MatMul(a, b)
}

func TestTranspose2D(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	result := backend.Transpose(a, 1, 0)

	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("transpose shape = %v, want [3 2]", result.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	if !float32Close(result.AsFloat32(), want) {
		t.Errorf("Transpose = %v, want %v", result.AsFloat32(), want)
	}
}

func TestTransposeDefaultReversesAxes(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3, 4}, make([]float32, 24))

	result := backend.Transpose(a)
	if !result.Shape().Equal(tensor.Shape{4, 3, 2}) {
		t.Errorf("default transpose shape = %v, want [4 3 2]", result.Shape())
	}
}

func TestTransposeRejectsDuplicateAxes(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 2}, make([]float32, 4))

	defer func() {
		if recover() == nil {
			t.Error("duplicate axes did not panic")
		}
	}()
	backend.Transpose(a, 0, 0)
}

func TestScalarOps(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{3}, []float32{2, 4, 6})

	if got := backend.AddScalar(a, float32(1)).AsFloat32(); !float32Close(got, []float32{3, 5, 7}) {
		t.Errorf("AddScalar = %v", got)
	}
	if got := backend.SubScalar(a, float32(1)).AsFloat32(); !float32Close(got, []float32{1, 3, 5}) {
		t.Errorf("SubScalar = %v", got)
	}
	if got := backend.MulScalar(a, float32(0.5)).AsFloat32(); !float32Close(got, []float32{1, 2, 3}) {
		t.Errorf("MulScalar = %v", got)
	}
	if got := backend.DivScalar(a, float32(2)).AsFloat32(); !float32Close(got, []float32{1, 2, 3}) {
		t.Errorf("DivScalar = %v", got)
	}
}

func TestReshape(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})

	result := backend.Reshape(a, tensor.Shape{3, 2})
	if !result.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("reshape shape = %v", result.Shape())
	}
	if !float32Close(result.AsFloat32(), a.AsFloat32()) {
		t.Error("reshape changed element order")
	}

	defer func() {
		if recover() == nil {
			t.Error("reshape with wrong element count did not panic")
		}
	}()
	backend.Reshape(a, tensor.Shape{4, 2})
}

func TestChunkAlongTimeAxis(t *testing.T) {
	backend := New()

	// [batch=2, steps=3, features=1], values 1..6.
	a := newFloat32(t, tensor.Shape{2, 3, 1}, []float32{1, 2, 3, 4, 5, 6})

	chunks := backend.Chunk(a, 3, 1)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	// Step t holds element t of each batch row.
	wants := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for i, chunk := range chunks {
		if !chunk.Shape().Equal(tensor.Shape{2, 1, 1}) {
			t.Fatalf("chunk %d shape = %v, want [2 1 1]", i, chunk.Shape())
		}
		if !float32Close(chunk.AsFloat32(), wants[i]) {
			t.Errorf("chunk %d = %v, want %v", i, chunk.AsFloat32(), wants[i])
		}
	}
}

func TestChunkIndivisiblePanics(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 3}, make([]float32, 6))

	defer func() {
		if recover() == nil {
			t.Error("indivisible chunk did not panic")
		}
	}()
	backend.Chunk(a, 2, 1)
}

func TestCatInvertsChunk(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 4, 1}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	chunks := backend.Chunk(a, 4, 1)
	back := backend.Cat(chunks, 1)

	if !back.Shape().Equal(a.Shape()) {
		t.Fatalf("cat shape = %v, want %v", back.Shape(), a.Shape())
	}
	if !float32Close(back.AsFloat32(), a.AsFloat32()) {
		t.Errorf("cat(chunk(x)) = %v, want %v", back.AsFloat32(), a.AsFloat32())
	}
}

func TestCatShapeMismatchPanics(t *testing.T) {
	backend := New()
	a := newFloat32(t, tensor.Shape{2, 2}, make([]float32, 4))
	b := newFloat32(t, tensor.Shape{3, 3}, make([]float32, 9))

	defer func() {
		if recover() == nil {
			t.Error("cat with mismatched shapes did not panic")
		}
	}()
	backend.Cat([]*tensor.RawTensor{a, b}, 0)
}

func TestHardwareDescribesCPU(t *testing.T) {
	desc := Hardware()
	if desc == "" {
		t.Error("Hardware() returned an empty string")
	}
}
