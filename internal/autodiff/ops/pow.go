package ops

import (
	"math"

	"github.com/born-ml/ndiff/internal/tensor"
)

// power computes a^b.
//
// Local partials:
//   - d(a^b)/da = b·a^b / a, where a == 0 is replaced by +Inf in the
//     denominator so the partial is 0 instead of NaN
//   - d(a^b)/db = a^b·ln(a) for a > 0, and 0 where ln(a) is undefined
func power(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Pow(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		zero := scalar(b, 0)

		base := b.Where(b.Equal(x, zero), scalar(b, math.Inf(1)), x)
		gradA := b.Mul(b.Div(y, base), res)

		gradB := b.Where(b.LowerEqual(x, zero), zero, b.Mul(res, b.Log(x)))
		return stackPartials(b, scale, res, gradA, gradB)
	}
}
