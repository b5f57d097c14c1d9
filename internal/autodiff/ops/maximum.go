package ops

import "github.com/born-ml/ndiff/internal/tensor"

// maximum computes max(a, b).
//
// The partial is 1 for the operand that was selected and 0 for the other.
// Ties (a == b) select a.
func maximum(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Maximum(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		mask := b.GreaterEqual(x, y)
		return stackPartials(b, scale, res, mask, b.Sub(scalar(b, 1), mask))
	}
}

// minimum computes min(a, b). Ties (a == b) select a.
func minimum(b tensor.Backend, x, y *tensor.RawTensor) (*tensor.RawTensor, VJP) {
	res := b.Minimum(x, y)
	return res, func(scale float64) *tensor.RawTensor {
		mask := b.LowerEqual(x, y)
		return stackPartials(b, scale, res, mask, b.Sub(scalar(b, 1), mask))
	}
}
