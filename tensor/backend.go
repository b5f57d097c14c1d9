// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/ndiff/internal/tensor"

// Backend is the array library used to evaluate primitives: element-wise
// math with broadcasting, comparisons, selection and the stacking and
// reordering operations the differentiator needs.
//
// Implementations:
//   - backend/cpu: pure Go, host memory
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndiff/backend/cpu"
//	    "github.com/born-ml/ndiff/tensor"
//	)
//
//	b := cpu.New()
//	x := b.FromSlice([]float64{1, 2}, tensor.Shape{2})
//	y := b.Mul(x, x)
type Backend = tensor.Backend

// Register makes b the backend for its device.
func Register(b Backend) {
	tensor.Register(b)
}

// BackendFor returns the backend registered for device d.
func BackendFor(d Device) (Backend, error) {
	return tensor.BackendFor(d)
}

// BackendOf returns the backend that owns t.
func BackendOf(t *RawTensor) (Backend, error) {
	return tensor.BackendOf(t)
}
