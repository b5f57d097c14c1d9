package cpu

import (
	"fmt"

	"github.com/born-ml/ndiff/internal/parallel"
	"github.com/born-ml/ndiff/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// Full allocates a tensor of the given shape filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, value float64) *tensor.RawTensor {
	result := cpu.alloc("full", shape)
	if value != 0 {
		data := result.Data()
		for i := range data {
			data[i] = value
		}
	}
	return result
}

// FromSlice copies data into a new tensor of the given shape.
func (cpu *CPUBackend) FromSlice(data []float64, shape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.FromSlice(data, shape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("fromSlice: %v", err))
	}
	return result
}

// Reshape returns a copy of t with a new shape holding the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}
	return cpu.FromSlice(t.Data(), newShape)
}

// Transpose permutes the dimensions of t. With no axes the dimensions are reversed.
//
// Example: Transpose(t[2,3,4], 1, 0, 2) -> [3,2,4].
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %d-D tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for shape %v", axes, shape))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	result := cpu.alloc("transpose", outShape)

	// srcStrides[i] is the input stride of output dimension i.
	inStrides := t.Strides()
	srcStrides := make([]int, ndim)
	for i, ax := range axes {
		srcStrides[i] = inStrides[ax]
	}
	outStrides := outShape.ComputeStrides()

	dst, src := result.Data(), t.Data()
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, outStrides, srcStrides)]
	}
	return result
}

// Stack joins equally shaped tensors along a new leading axis.
//
// Example: Stack([a[4], b[4], c[4]]) -> [3,4].
func (cpu *CPUBackend) Stack(ts []*tensor.RawTensor) *tensor.RawTensor {
	if len(ts) == 0 {
		panic("stack: need at least one tensor")
	}

	inner := ts[0].Shape()
	outShape := append(tensor.Shape{len(ts)}, inner...)
	result := cpu.alloc("stack", outShape)

	n := inner.NumElements()
	dst := result.Data()
	for i, t := range ts {
		if !t.Shape().Equal(inner) {
			panic(fmt.Sprintf("stack: tensor %d has shape %v, want %v", i, t.Shape(), inner))
		}
		copy(dst[i*n:(i+1)*n], t.Data())
	}
	return result
}

// Outer computes the tensor product of a and b (tensordot with axes=0):
// the result has shape a.Shape() ++ b.Shape().
func (cpu *CPUBackend) Outer(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape := append(a.Shape().Clone(), b.Shape()...)
	result := cpu.alloc("outer", outShape)

	x, y, dst := a.Data(), b.Data(), result.Data()
	nb := len(y)
	parallel.For(len(x), func(i int) {
		floats.ScaleTo(dst[i*nb:(i+1)*nb], x[i], y)
	}, cpu.par)
	return result
}

// Index returns a copy of t[i] along the leading axis.
//
// Example: Index(t[3,4], 1) -> [4].
func (cpu *CPUBackend) Index(t *tensor.RawTensor, i int) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) == 0 {
		panic("index: cannot index a scalar")
	}
	if i < 0 || i >= shape[0] {
		panic(fmt.Sprintf("index: %d out of range for shape %v", i, shape))
	}

	inner := shape[1:].Clone()
	n := inner.NumElements()
	return cpu.FromSlice(t.Data()[i*n:(i+1)*n], inner)
}
