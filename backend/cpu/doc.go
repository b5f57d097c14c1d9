// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - NumPy-compatible broadcasting
//   - gonum fast paths for same-shape element-wise kernels
//   - Large element-wise kernels split across goroutines
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ndiff/autodiff"
//	    "github.com/born-ml/ndiff/backend/cpu"
//	)
//
//	func main() {
//	    f, err := autodiff.Compile(fn, 1, autodiff.WithBackend(cpu.New()))
//	}
//
// The package registers a backend for tensor.CPU in init, so tensors created
// on the CPU device are evaluated here.
package cpu
