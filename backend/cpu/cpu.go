// Copyright 2025 Augur ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/augur-ml/augur/internal/backend/cpu"
	"github.com/augur-ml/augur/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all tensor operations
// with per-dtype dispatch and an in-place fast path for uniquely owned
// buffers.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/augur-ml/augur/backend/cpu"
//	    "github.com/augur-ml/augur/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// Hardware describes the host CPU: brand string, logical core count,
// and vector capability. Training runs record it for provenance.
func Hardware() string {
	return internalcpu.Hardware()
}
