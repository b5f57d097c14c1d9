package ops

import "github.com/born-ml/ndiff/internal/tensor"

// stackPartials broadcasts each partial to the result shape, stacks them
// along a new leading operand axis and multiplies by scale.
//
// Example: result[B], partials {p0[B], p1[]} -> [2, B].
func stackPartials(b tensor.Backend, scale float64, result *tensor.RawTensor, partials ...*tensor.RawTensor) *tensor.RawTensor {
	ones := b.Full(result.Shape(), 1)
	rows := make([]*tensor.RawTensor, len(partials))
	for i, p := range partials {
		rows[i] = b.Mul(p, ones)
	}
	stacked := b.Stack(rows)
	if scale == 1 {
		return stacked
	}
	return b.MulScalar(stacked, scale)
}

// scalar allocates a rank-0 tensor on b.
func scalar(b tensor.Backend, v float64) *tensor.RawTensor {
	return b.Full(tensor.Shape{}, v)
}
