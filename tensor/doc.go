// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays the differentiation engine
// evaluates on, and the registry that maps each device to its backend.
//
// # Overview
//
// A RawTensor is a row-major array with a shape and a device tag. Batches
// passed to a compiled function are [batch, inputs] tensors; results come
// back as [batch, outputs] and Jacobians as [batch, outputs, inputs].
//
// # Basic Usage
//
//	import (
//	    _ "github.com/born-ml/ndiff/backend/cpu"
//	    "github.com/born-ml/ndiff/tensor"
//	)
//
//	func main() {
//	    x, err := tensor.FromSlice([]float64{0.75, -1}, tensor.Shape{2, 1}, tensor.CPU)
//	    b, err := tensor.BackendOf(x) // the CPU backend
//	    y := b.Exp(x)
//	}
//
// # Devices
//
// Every backend registers itself for its device when its package is
// imported. Arrays created on a device without a registered backend can be
// built but not evaluated; BackendFor reports ErrNoBackend.
package tensor
