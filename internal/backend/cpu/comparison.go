package cpu

import (
	"fmt"

	"github.com/born-ml/ndiff/internal/tensor"
)

// GreaterEqual returns a mask with 1 where a >= b and 0 elsewhere.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("greaterEqual", a, b, nil, func(x, y float64) float64 { return mask(x >= y) })
}

// LowerEqual returns a mask with 1 where a <= b and 0 elsewhere.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("lowerEqual", a, b, nil, func(x, y float64) float64 { return mask(x <= y) })
}

// Equal returns a mask with 1 where a == b and 0 elsewhere.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("equal", a, b, nil, func(x, y float64) float64 { return mask(x == y) })
}

// Where selects x where cond is non-zero and y elsewhere.
// All three operands broadcast to a common shape.
func (cpu *CPUBackend) Where(cond, x, y *tensor.RawTensor) *tensor.RawTensor {
	xy, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}
	outShape, _, err := tensor.BroadcastShapes(cond.Shape(), xy)
	if err != nil {
		panic(fmt.Sprintf("where: %v", err))
	}

	result := cpu.alloc("where", outShape)
	cpu.broadcastTernary(result, cond, x, y, func(c, a, b float64) float64 {
		if c != 0 {
			return a
		}
		return b
	})
	return result
}

func mask(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
