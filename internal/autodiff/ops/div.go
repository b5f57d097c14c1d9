package ops

import "github.com/born-ml/ndiff/internal/tensor"

// divide computes a / b.
//
// Local partials:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
//
// A zero divisor yields IEEE-754 infinities, which propagate.
func divide(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Div(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		gradA := b.Div(scalar(b, 1), y)
		gradB := b.Neg(b.Div(x, b.Mul(y, y)))
		return stackPartials(b, scale, res, gradA, gradB)
	}
}
