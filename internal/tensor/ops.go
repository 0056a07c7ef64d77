package tensor

// Method wrappers dispatching to the backend. Each returns a new typed
// tensor over the backend's result.

// Add returns t + other element-wise, with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Add(t.raw, other.raw), backend: t.backend}
}

// Sub returns t - other element-wise, with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Sub(t.raw, other.raw), backend: t.backend}
}

// Mul returns t * other element-wise, with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Mul(t.raw, other.raw), backend: t.backend}
}

// Div returns t / other element-wise, with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Div(t.raw, other.raw), backend: t.backend}
}

// MatMul returns the matrix product of two 2D tensors.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.MatMul(t.raw, other.raw), backend: t.backend}
}

// AddScalar returns t + scalar element-wise.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.AddScalar(t.raw, scalar), backend: t.backend}
}

// MulScalar returns t * scalar element-wise.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.MulScalar(t.raw, scalar), backend: t.backend}
}

// Reshape returns a tensor with the same elements and the new shape.
// The element count must be unchanged.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Reshape(t.raw, Shape(newShape)), backend: t.backend}
}

// Transpose permutes the tensor axes. Without arguments the axes are
// reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.backend.Transpose(t.raw, axes...), backend: t.backend}
}

// T returns the 2D transpose. Panics for other ranks.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T requires a 2D tensor; use Transpose with explicit axes")
	}
	return t.Transpose(1, 0)
}

// Chunk splits the tensor into n equal parts along dim.
func (t *Tensor[T, B]) Chunk(chunks, dim int) []*Tensor[T, B] {
	raws := t.backend.Chunk(t.raw, chunks, dim)
	out := make([]*Tensor[T, B], len(raws))
	for i, raw := range raws {
		out[i] = &Tensor[T, B]{raw: raw, backend: t.backend}
	}
	return out
}

// Cat concatenates tensors along dim. All tensors must share a backend.
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat requires at least one tensor")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	backend := tensors[0].backend
	return &Tensor[T, B]{raw: backend.Cat(raws, dim), backend: backend}
}
