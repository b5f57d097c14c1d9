// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides trace-based reverse-mode automatic differentiation.
//
// A function written against Trace is run once on placeholder inputs. Every
// primitive call is recorded as a graph node; the graph is sorted once and
// can then be evaluated on any batch. Backward returns the full Jacobian of
// all outputs with respect to all inputs in a single reverse sweep.
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndiff/autodiff"
//	    "github.com/born-ml/ndiff/tensor"
//	)
//
//	func main() {
//	    sigmoid := func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
//	        x := t.Exp(t.Mul(in[0], autodiff.Const(-1)))
//	        return []autodiff.Value{t.Div(autodiff.Const(1), t.Add(autodiff.Const(1), x))}
//	    }
//
//	    f, err := autodiff.Compile(sigmoid, 1)
//	    x, err := tensor.FromSlice([]float64{0.75, -1}, tensor.Shape{2, 1}, tensor.CPU)
//	    y, err := f.Forward(x)   // [2, 1]: 0.679, 0.269
//	    jac, err := f.Backward() // [2, 1, 1]: 0.218, 0.197
//	}
package autodiff

import (
	"github.com/born-ml/ndiff/internal/autodiff"
	"github.com/born-ml/ndiff/internal/autodiff/ops"
	_ "github.com/born-ml/ndiff/internal/backend/cpu" // default backend for tensor.CPU
	"github.com/born-ml/ndiff/tensor"
	"github.com/go-logr/logr"
)

// Func is a function that can be traced.
type Func = autodiff.Func

// Trace is the graph builder handed to a traced function.
type Trace = autodiff.Trace

// Value is an input, a traced intermediate or a constant.
type Value = autodiff.Value

// Recorder receives nodes while a function is traced.
type Recorder = autodiff.Recorder

// Recording is the raw result of tracing a function once.
type Recording = autodiff.Recording

// Graph is a validated computation graph.
type Graph = autodiff.Graph

// Node is one recorded primitive call.
type Node = autodiff.Node

// Constant is a literal argument of a node.
type Constant = autodiff.Constant

// CompiledFunction evaluates a traced graph on batches.
type CompiledFunction = autodiff.CompiledFunction

// Export is a serializable snapshot of a compiled graph.
type Export = autodiff.Export

// NodeExport is one node of an Export.
type NodeExport = autodiff.NodeExport

// Option configures Compile and Record.
type Option = autodiff.Option

// Op identifies a primitive.
type Op = ops.Op

// Primitives.
const (
	Input    = ops.Input
	Sin      = ops.Sin
	Cos      = ops.Cos
	Exp      = ops.Exp
	Add      = ops.Add
	Subtract = ops.Subtract
	Multiply = ops.Multiply
	Divide   = ops.Divide
	Power    = ops.Power
	Maximum  = ops.Maximum
	Minimum  = ops.Minimum
)

// Errors.
var (
	ErrTraceInconsistency = autodiff.ErrTraceInconsistency
	ErrShapeMismatch      = autodiff.ErrShapeMismatch
	ErrNoForward          = autodiff.ErrNoForward
	ErrInvalidGraph       = autodiff.ErrInvalidGraph
	ErrCycle              = autodiff.ErrCycle
	ErrUnknownOp          = ops.ErrUnknownOp
)

// Compile traces fn with numInputs inputs and prepares it for evaluation.
func Compile(fn Func, numInputs int, opts ...Option) (*CompiledFunction, error) {
	return autodiff.Compile(fn, numInputs, opts...)
}

// Record traces fn once without compiling it.
func Record(fn Func, numInputs int, opts ...Option) (*Recording, error) {
	return autodiff.Record(fn, numInputs, opts...)
}

// NewTrace creates a trace that reports nodes to rec.
func NewTrace(b tensor.Backend, rec Recorder, samples []float64) *Trace {
	return autodiff.NewTrace(b, rec, samples)
}

// NewGraph builds and validates a graph from recorded nodes.
func NewGraph(numInputs int, nodes []Node) (*Graph, error) {
	return autodiff.NewGraph(numInputs, nodes)
}

// NewCompiledFunction prepares a graph for evaluation.
func NewCompiledFunction(g *Graph) (*CompiledFunction, error) {
	return autodiff.NewCompiledFunction(g)
}

// Const returns a constant Value.
func Const(v float64) Value {
	return autodiff.Const(v)
}

// ParseOp returns the primitive with the given name.
func ParseOp(name string) (Op, error) {
	return ops.ParseOp(name)
}

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger logr.Logger) Option {
	return autodiff.WithLogger(logger)
}

// WithBackend sets the backend used while tracing.
func WithBackend(b tensor.Backend) Option {
	return autodiff.WithBackend(b)
}

// WithSeed seeds the placeholder input generator.
func WithSeed(seed uint64) Option {
	return autodiff.WithSeed(seed)
}

// WithSamples sets the placeholder input values.
func WithSamples(samples ...float64) Option {
	return autodiff.WithSamples(samples...)
}
