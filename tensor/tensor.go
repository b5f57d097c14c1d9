// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/ndiff/internal/tensor"

// RawTensor is a dense row-major float64 array tagged with its device.
type RawTensor = tensor.RawTensor

// Shape is the size of each dimension. An empty shape is a scalar.
type Shape = tensor.Shape

// Device is the memory space a tensor lives in.
type Device = tensor.Device

// Supported devices.
const (
	CPU    = tensor.CPU
	CUDA   = tensor.CUDA
	Vulkan = tensor.Vulkan
	Metal  = tensor.Metal
	WebGPU = tensor.WebGPU
)

// ErrNoBackend is returned when no backend is registered for a device.
var ErrNoBackend = tensor.ErrNoBackend

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, device)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
func FromSlice(data []float64, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// Scalar creates a rank-0 tensor.
func Scalar(v float64, device Device) *RawTensor {
	return tensor.Scalar(v, device)
}

// BroadcastShapes returns the NumPy-style broadcast of a and b.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
