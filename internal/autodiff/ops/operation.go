// Package ops is the primitive operation library for the trace compiler.
//
// Every primitive is a pure function of its operands that returns the value
// and a local VJP closure. The closure maps an upstream scale to a tensor of
// shape [N, *result_shape] holding the partial derivative of the result with
// respect to each of the N operands, already broadcast to the result shape.
//
// Supported operations:
//   - Sin, Cos, Exp: unary (1 partial)
//   - Add, Subtract, Multiply, Divide: binary arithmetic (2 partials)
//   - Power: a^b, d/da guarded at a == 0, d/db = a^b·ln(a) for a > 0
//   - Maximum, Minimum: ties route the gradient to the first operand
package ops

import (
	"errors"
	"fmt"

	"github.com/born-ml/ndiff/internal/tensor"
)

var (
	// ErrUnknownOp is returned for operator names or values outside the enumeration.
	ErrUnknownOp = errors.New("unknown operator")

	// ErrArity is returned when a primitive receives the wrong number of operands.
	ErrArity = errors.New("wrong number of operands")
)

// VJP maps an upstream sensitivity scale to the stacked per-operand partials
// of one primitive application.
type VJP func(scale float64) *tensor.RawTensor

// Op identifies a primitive operation. Input marks graph leaves and cannot be applied.
type Op uint8

// Operators.
const (
	Input Op = iota
	Sin
	Cos
	Exp
	Add
	Subtract
	Multiply
	Divide
	Power
	Maximum
	Minimum

	numOps
)

var opNames = [numOps]string{
	Input:    "input",
	Sin:      "sin",
	Cos:      "cos",
	Exp:      "exp",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Power:    "power",
	Maximum:  "maximum",
	Minimum:  "minimum",
}

// String returns the operator name.
func (op Op) String() string {
	if op >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opNames[op]
}

// Valid reports whether op is part of the enumeration.
func (op Op) Valid() bool {
	return op < numOps
}

// Arity returns the number of operands op takes. Input takes none.
func (op Op) Arity() int {
	switch op {
	case Input:
		return 0
	case Sin, Cos, Exp:
		return 1
	case Add, Subtract, Multiply, Divide, Power, Maximum, Minimum:
		return 2
	default:
		return -1
	}
}

// ParseOp returns the operator with the given name.
func ParseOp(name string) (Op, error) {
	for op, n := range opNames {
		if n == name {
			return Op(op), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOp, name)
}

// MarshalText implements encoding.TextMarshaler.
func (op Op) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownOp, uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Op) UnmarshalText(text []byte) error {
	parsed, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Apply runs op on args with backend b.
func (op Op) Apply(b tensor.Backend, args ...*tensor.RawTensor) (*tensor.RawTensor, VJP, error) {
	if op == Input || !op.Valid() {
		return nil, nil, fmt.Errorf("%w: %v is not applicable", ErrUnknownOp, op)
	}
	if len(args) != op.Arity() {
		return nil, nil, fmt.Errorf("%w: %v takes %d, got %d", ErrArity, op, op.Arity(), len(args))
	}

	var (
		value *tensor.RawTensor
		vjp   VJP
	)
	switch op {
	case Sin:
		value, vjp = sin(b, args[0])
	case Cos:
		value, vjp = cos(b, args[0])
	case Exp:
		value, vjp = exp(b, args[0])
	case Add:
		value, vjp = add(b, args[0], args[1])
	case Subtract:
		value, vjp = subtract(b, args[0], args[1])
	case Multiply:
		value, vjp = multiply(b, args[0], args[1])
	case Divide:
		value, vjp = divide(b, args[0], args[1])
	case Power:
		value, vjp = power(b, args[0], args[1])
	case Maximum:
		value, vjp = maximum(b, args[0], args[1])
	case Minimum:
		value, vjp = minimum(b, args[0], args[1])
	}
	return value, vjp, nil
}
