package cpu

import (
	"github.com/born-ml/ndiff/internal/parallel"
	"github.com/born-ml/ndiff/internal/tensor"
)

// computeFlatIndex computes the flat index in the source array for a given output index.
// outStrides: strides of the output shape.
// inStrides: broadcast-adjusted strides of the input shape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0

	for i := range outStrides {
		// Extract coordinate along dimension i
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]

		flatIdx += coord * inStrides[i]
	}

	return flatIdx
}

// broadcastBinary fills result with f(a, b) where a and b broadcast to result's shape.
func (cpu *CPUBackend) broadcastBinary(result, a, b *tensor.RawTensor, f func(x, y float64) float64) {
	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := a.Shape().BroadcastStrides(outShape)
	bStrides := b.Shape().BroadcastStrides(outShape)

	dst, x, y := result.Data(), a.Data(), b.Data()
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(x[computeFlatIndex(i, outStrides, aStrides)], y[computeFlatIndex(i, outStrides, bStrides)])
		}
	}, cpu.par)
}

// broadcastTernary fills result with f(a, b, c) where all three broadcast to result's shape.
func (cpu *CPUBackend) broadcastTernary(result, a, b, c *tensor.RawTensor, f func(x, y, z float64) float64) {
	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := a.Shape().BroadcastStrides(outShape)
	bStrides := b.Shape().BroadcastStrides(outShape)
	cStrides := c.Shape().BroadcastStrides(outShape)

	dst, x, y, z := result.Data(), a.Data(), b.Data(), c.Data()
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(
				x[computeFlatIndex(i, outStrides, aStrides)],
				y[computeFlatIndex(i, outStrides, bStrides)],
				z[computeFlatIndex(i, outStrides, cStrides)],
			)
		}
	}, cpu.par)
}
