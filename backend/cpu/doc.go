// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go kernels (no CGO)
//   - Float32, Float64, and Int32 support
//   - NumPy-compatible broadcasting
//   - An in-place fast path when the destination buffer is uniquely owned
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/nn"
//	    "github.com/augur-ml/augur/tensor"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Use with neural networks
//	    model := nn.NewLinear(12, 1, backend)
//	}
//
// # Performance
//
// The float matrix multiply is cache-blocked, with the block edge
// derived from the detected L1 data cache, and output rows are banded
// across cores for large products. Element-wise kernels are flat loops
// the compiler can vectorize, with a strided path when broadcasting.
//
// # Hardware reporting
//
// Hardware() identifies the host CPU (brand, logical cores, AVX2 and
// AVX-512 capability). The training CLI logs it at startup and stores
// it with each recorded run.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
