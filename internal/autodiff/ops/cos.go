package ops

import "github.com/born-ml/ndiff/internal/tensor"

// cos computes y = cos(x).
//
// Local partial:
//   - d(cos(x))/dx = -sin(x)
func cos(b tensor.Backend, x *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Cos(x)
	return res, func(scale float64) *tensor.RawTensor {
		return stackPartials(b, scale, res, b.Neg(b.Sin(x)))
	}
}
