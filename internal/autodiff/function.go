// Package autodiff compiles traced scalar functions into reusable graphs and
// evaluates them on batches, producing outputs and full Jacobians.
//
// Architecture:
//   - Trace: runs the user function once on placeholder inputs and records
//     one Node per primitive call
//   - Graph: the recorded nodes plus input leaves; outputs are the sinks
//   - CompiledFunction: a fixed topological order used by Forward, and its
//     reverse used by Backward for a single VJP sweep over all outputs
//
// Usage:
//
//	sigmoid := func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
//	    x := t.Exp(t.Mul(in[0], autodiff.Const(-1)))
//	    return []autodiff.Value{t.Div(autodiff.Const(1), t.Add(autodiff.Const(1), x))}
//	}
//	f, err := autodiff.Compile(sigmoid, 1)
//	out, err := f.Forward(batch) // [batch, outputs]
//	jac, err := f.Backward()     // [batch, outputs, inputs]
//
// A CompiledFunction caches per-node state between Forward and Backward and
// must not be used from several goroutines at once.
package autodiff

import (
	"fmt"

	"github.com/born-ml/ndiff/internal/autodiff/ops"
	"github.com/born-ml/ndiff/internal/tensor"
	"github.com/go-logr/logr"
)

// CompiledFunction is a traced function ready for repeated batched evaluation.
type CompiledFunction struct {
	graph    *Graph
	forward  []int
	backward []int

	// Written by Forward, read by Backward.
	backend tensor.Backend
	batch   int
	vjps    []ops.VJP
	ready   bool
}

// Compile traces fn once with numInputs inputs and compiles the recording.
func Compile(fn Func, numInputs int, opts ...Option) (*CompiledFunction, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rec, err := record(fn, numInputs, cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}

	g, err := NewGraph(rec.NumInputs, rec.Nodes)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	f, err := NewCompiledFunction(g)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	checkOutputs(cfg.logger, g, rec.Returned)
	cfg.logger.V(2).Info("compiled traced function",
		"inputs", g.NumInputs(), "nodes", g.NumNodes(), "outputs", g.OutputIDs())
	return f, nil
}

// NewCompiledFunction computes the evaluation orders of g.
func NewCompiledFunction(g *Graph) (*CompiledFunction, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	backward := make([]int, len(order))
	for i, id := range order {
		backward[len(order)-1-i] = id
	}

	return &CompiledFunction{
		graph:    g,
		forward:  order,
		backward: backward,
	}, nil
}

// checkOutputs warns when the sinks of g differ from what the traced
// function returned. Sinks stay outputs either way.
func checkOutputs(logger logr.Logger, g *Graph, returned []int) {
	wanted := make(map[int]bool, len(returned))
	for _, id := range returned {
		wanted[id] = true
		if !g.IsOutput(id) {
			logger.Info("returned value is consumed by other nodes and is not an output", "node", id)
		}
	}
	for _, id := range g.outputs {
		if !wanted[id] {
			n := g.nodes[id]
			logger.Info("sink was not returned by the traced function but is an output", "node", id, "op", n.Op.String())
		}
	}
}

// Graph returns the compiled graph.
func (f *CompiledFunction) Graph() *Graph {
	return f.graph
}

// NumInputs returns the number of function inputs.
func (f *CompiledFunction) NumInputs() int {
	return f.graph.numInputs
}

// NumOutputs returns the number of outputs.
func (f *CompiledFunction) NumOutputs() int {
	return len(f.graph.outputs)
}

// OutputIDs returns the output node ids, in output column order.
func (f *CompiledFunction) OutputIDs() []int {
	return f.graph.OutputIDs()
}

// ForwardOrder returns the evaluation order.
func (f *CompiledFunction) ForwardOrder() []int {
	return append([]int(nil), f.forward...)
}

// BackwardOrder returns the reverse of the evaluation order.
func (f *CompiledFunction) BackwardOrder() []int {
	return append([]int(nil), f.backward...)
}

// Forward evaluates the function on a batch laid out as [batch, inputs]
// and returns the outputs as [batch, outputs].
//
// The backend that owns inputs evaluates every node. Local VJPs are kept
// for the next Backward call.
func (f *CompiledFunction) Forward(inputs *tensor.RawTensor) (*tensor.RawTensor, error) {
	f.ready = false

	if inputs == nil {
		return nil, fmt.Errorf("%w: nil batch", ErrShapeMismatch)
	}
	shape := inputs.Shape()
	if len(shape) != 2 || shape[1] != f.graph.numInputs {
		return nil, fmt.Errorf("%w: want [batch %d] inputs, got %v", ErrShapeMismatch, f.graph.numInputs, shape)
	}

	b, err := tensor.BackendOf(inputs)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}

	rows := b.Transpose(inputs) // [inputs, batch]
	values := make([]*tensor.RawTensor, len(f.graph.nodes))
	vjps := make([]ops.VJP, len(f.graph.nodes))

	for _, id := range f.forward {
		if id < f.graph.numInputs {
			values[id] = b.Index(rows, id)
			continue
		}

		node := f.graph.nodes[id]
		args := node.arguments()
		operands := make([]*tensor.RawTensor, len(args))
		for pos, operand := range args {
			if operand >= 0 {
				operands[pos] = values[operand]
			}
		}
		for _, c := range node.Constants {
			operands[c.Position] = b.Full(tensor.Shape{}, c.Value)
		}

		value, vjp, err := node.Op.Apply(b, operands...)
		if err != nil {
			return nil, fmt.Errorf("forward: node %d: %w", id, err)
		}
		values[id], vjps[id] = value, vjp
	}

	out := make([]*tensor.RawTensor, len(f.graph.outputs))
	for i, id := range f.graph.outputs {
		out[i] = values[id]
	}

	f.backend, f.batch, f.vjps, f.ready = b, shape[0], vjps, true
	return b.Transpose(b.Stack(out)), nil
}
