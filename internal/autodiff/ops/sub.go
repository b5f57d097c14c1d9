package ops

import "github.com/born-ml/ndiff/internal/tensor"

// subtract computes a - b.
//
// Local partials:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
func subtract(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Sub(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		return stackPartials(b, scale, res, scalar(b, 1), scalar(b, -1))
	}
}
