// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/ndiff/internal/backend/cpu"
	"github.com/born-ml/ndiff/internal/parallel"
	"github.com/born-ml/ndiff/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ParallelConfig controls how element-wise kernels are split across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns a configuration using all CPUs.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// New creates a new CPU backend.
//
// Importing this package also registers a CPU backend for tensor.CPU.
//
// Example:
//
//	b := cpu.New()
//	x := b.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	y := b.Sin(x)
func New() *Backend {
	return internalcpu.New()
}

// SequentialParallelConfig returns a configuration that never spawns goroutines.
func SequentialParallelConfig() ParallelConfig {
	return parallel.Sequential()
}

// NewWithConfig creates a CPU backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
