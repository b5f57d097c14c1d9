package autodiff

import (
	"fmt"

	"github.com/born-ml/ndiff/internal/tensor"
)

type valueKind uint8

const (
	kindInvalid valueKind = iota
	kindInput
	kindTraced
	kindConstant
)

// Value is what a traced function computes with. It is one of:
//   - an input slot of the function (Input(id))
//   - the result of a recorded primitive (Traced(value, id))
//   - a literal fixed at trace time (Const(value))
//
// Input and traced values carry a representative sample so the function
// sees realistic numbers while it is being traced.
type Value struct {
	kind   valueKind
	id     int
	sample *tensor.RawTensor
	trace  *Trace
	lit    float64
}

// Const returns a constant Value. Constants are baked into the graph and
// receive no gradient.
func Const(v float64) Value {
	return Value{kind: kindConstant, lit: v}
}

// ID returns the graph node id of v, or false for constants.
func (v Value) ID() (int, bool) {
	if v.kind != kindInput && v.kind != kindTraced {
		return 0, false
	}
	return v.id, true
}

// IsConstant reports whether v is a constant.
func (v Value) IsConstant() bool {
	return v.kind == kindConstant
}

// Float returns the trace-time sample of v, or the literal for constants.
func (v Value) Float() float64 {
	switch v.kind {
	case kindConstant:
		return v.lit
	case kindInput, kindTraced:
		return v.sample.Item()
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case kindInput:
		return fmt.Sprintf("Input(%d)", v.id)
	case kindTraced:
		return fmt.Sprintf("Traced(%g, %d)", v.sample.Item(), v.id)
	case kindConstant:
		return fmt.Sprintf("Const(%g)", v.lit)
	default:
		return "Value(invalid)"
	}
}
