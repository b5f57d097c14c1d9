// Package cpu implements the host-memory array backend.
package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/ndiff/internal/parallel"
	"github.com/born-ml/ndiff/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

var _ tensor.Backend = (*CPUBackend)(nil)

func init() {
	tensor.Register(New())
}

// CPUBackend implements tensor operations in host memory.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend that splits element-wise kernels
// according to cfg.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(dst, x, y []float64) { floats.AddTo(dst, x, y) },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(dst, x, y []float64) { floats.SubTo(dst, x, y) },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(dst, x, y []float64) { floats.MulTo(dst, x, y) },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE-754 (±Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(dst, x, y []float64) { floats.DivTo(dst, x, y) },
		func(x, y float64) float64 { return x / y })
}

// Pow raises a to the power b element-wise.
func (cpu *CPUBackend) Pow(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("pow", a, b, nil, math.Pow)
}

// Maximum returns the element-wise maximum. NaN propagates.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("maximum", a, b, nil, math.Max)
}

// Minimum returns the element-wise minimum. NaN propagates.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("minimum", a, b, nil, math.Min)
}

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := cpu.alloc("mulScalar", x.Shape())
	floats.ScaleTo(result.Data(), scalar, x.Data())
	return result
}

// binary runs an element-wise kernel. same is the optional fast path used
// when both operands already have the output shape.
func (cpu *CPUBackend) binary(
	name string,
	a, b *tensor.RawTensor,
	same func(dst, x, y []float64),
	f func(x, y float64) float64,
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := cpu.alloc(name, outShape)

	if !needsBroadcast {
		if same != nil {
			same(result.Data(), a.Data(), b.Data())
			return result
		}
		dst, x, y := result.Data(), a.Data(), b.Data()
		parallel.ForRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(x[i], y[i])
			}
		}, cpu.par)
		return result
	}

	cpu.broadcastBinary(result, a, b, f)
	return result
}

// alloc creates a zero-filled result tensor on this backend.
func (cpu *CPUBackend) alloc(name string, shape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}
