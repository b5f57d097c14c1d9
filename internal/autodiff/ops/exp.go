package ops

import "github.com/born-ml/ndiff/internal/tensor"

// exp computes y = exp(x).
//
// Since d(exp(x))/dx = exp(x), the partial is the result itself.
func exp(b tensor.Backend, x *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Exp(x)
	return res, func(scale float64) *tensor.RawTensor {
		return stackPartials(b, scale, res, res)
	}
}
