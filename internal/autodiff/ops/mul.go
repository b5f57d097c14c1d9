package ops

import "github.com/born-ml/ndiff/internal/tensor"

// multiply computes a * b.
//
// Local partials:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
func multiply(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Mul(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		return stackPartials(b, scale, res, y, x)
	}
}
