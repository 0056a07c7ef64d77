package tensor

// Backend is the contract every compute implementation satisfies.
// Operations take and return RawTensors so a single implementation
// serves all element types; the typed Tensor wrapper restores type
// safety above this interface.
//
// Backend methods panic on malformed inputs (shape mismatches, wrong
// dtypes). Those are programming errors, not runtime conditions.
//
// Implementations:
//   - backend/cpu: pure Go kernels
//   - autodiff: decorator recording operations on a gradient tape
type Backend interface {
	// Element-wise arithmetic with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2D tensors: [m, k] @ [k, n] -> [m, n].
	MatMul(a, b *RawTensor) *RawTensor

	// Scalar arithmetic. The scalar must match the tensor element type.
	AddScalar(a *RawTensor, scalar any) *RawTensor
	SubScalar(a *RawTensor, scalar any) *RawTensor
	MulScalar(a *RawTensor, scalar any) *RawTensor
	DivScalar(a *RawTensor, scalar any) *RawTensor

	// Reshape returns a tensor with the same elements and a new shape.
	Reshape(a *RawTensor, shape Shape) *RawTensor

	// Transpose permutes axes. Without arguments it reverses them.
	Transpose(a *RawTensor, axes ...int) *RawTensor

	// Chunk splits a tensor into equal parts along dim.
	// The dimension size must be divisible by chunks.
	Chunk(a *RawTensor, chunks, dim int) []*RawTensor

	// Cat concatenates tensors along dim. All other dimensions must match.
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Name identifies the backend in logs.
	Name() string

	// Device reports where this backend computes.
	Device() Device
}
