// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Augur toolkit.
//
// # Overview
//
// Tensors are the fundamental data structure in Augur. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy operations where possible
//   - A device tag so backends stay pluggable (CPU is the only shipped device)
//
// # Basic Usage
//
//	import (
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	}
//
// # Supported Data Types
//
// The DType constraint covers what forecasting needs and nothing more:
//   - float32 (network parameters)
//   - float64 (series arithmetic)
//   - int32 (index data)
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)     // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)      // (3, 4)
//	c := a.Add(b)                                               // (3, 4)
//
// # Memory Management
//
// The underlying buffers are reference-counted. Clone shares the buffer
// until a writer needs exclusive access; backends reuse a uniquely owned
// operand's buffer for the result when they can.
//
// # Reproducibility
//
// Randn, Rand, and Uniform draw from a shared generator that Seed
// reseeds. Two runs that seed identically and create tensors in the
// same order see identical values, which is what makes seeded training
// runs repeatable.
package tensor
