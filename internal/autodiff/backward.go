package autodiff

import (
	"github.com/born-ml/ndiff/internal/tensor"
)

// Backward returns the Jacobian of the last Forward batch as
// [batch, outputs, inputs].
//
// Algorithm (one sweep for all outputs):
//  1. Seed every output node with a one-hot sensitivity over the outputs,
//     broadcast to the batch: [outputs, batch]
//  2. Walk the reverse evaluation order; for each computed node, take the
//     outer product of its sensitivity with its local partials(1) to get
//     [outputs, operands, batch]
//  3. Add each operand's slice into that operand's sensitivity; constant
//     positions are skipped. Summing covers nodes with several consumers.
//  4. Stack the input sensitivities and reorder to [batch, outputs, inputs]
//
// Returns ErrNoForward if no successful Forward preceded the call.
func (f *CompiledFunction) Backward() (*tensor.RawTensor, error) {
	if !f.ready {
		return nil, ErrNoForward
	}

	b := f.backend
	numOut := len(f.graph.outputs)
	ones := b.Full(tensor.Shape{f.batch}, 1)
	grads := make([]*tensor.RawTensor, len(f.graph.nodes))

	for _, id := range f.backward {
		if pos := f.graph.outputPos[id]; pos >= 0 {
			seed := make([]float64, numOut)
			seed[pos] = 1
			grads[id] = b.Outer(b.FromSlice(seed, tensor.Shape{numOut}), ones)
		}

		if id < f.graph.numInputs {
			continue
		}
		upstream := grads[id]
		if upstream == nil {
			// No path to any output.
			continue
		}

		node := f.graph.nodes[id]
		args := node.arguments()
		local := f.vjps[id](1) // [operands, batch]

		contrib := b.Mul(
			b.Reshape(upstream, tensor.Shape{numOut, 1, f.batch}),
			b.Reshape(local, tensor.Shape{1, len(args), f.batch}),
		)
		perOperand := b.Transpose(contrib, 1, 0, 2) // [operands, outputs, batch]

		for slot, operand := range args {
			if operand < 0 {
				continue
			}
			g := b.Index(perOperand, slot)
			if grads[operand] != nil {
				grads[operand] = b.Add(grads[operand], g)
			} else {
				grads[operand] = g
			}
		}
	}

	leaves := make([]*tensor.RawTensor, f.graph.numInputs)
	for i := range leaves {
		leaves[i] = grads[i]
		if leaves[i] == nil {
			leaves[i] = b.Full(tensor.Shape{numOut, f.batch}, 0)
		}
	}

	// [inputs, outputs, batch] -> [batch, outputs, inputs]
	return b.Transpose(b.Stack(leaves), 2, 1, 0), nil
}
