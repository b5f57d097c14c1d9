package ops

import "github.com/born-ml/ndiff/internal/tensor"

// sin computes y = sin(x).
//
// Local partial:
//   - d(sin(x))/dx = cos(x)
func sin(b tensor.Backend, x *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Sin(x)
	return res, func(scale float64) *tensor.RawTensor {
		return stackPartials(b, scale, res, b.Cos(x))
	}
}
