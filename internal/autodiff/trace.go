package autodiff

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/ndiff/internal/autodiff/ops"
	"github.com/born-ml/ndiff/internal/tensor"
)

// Func is a function that can be traced. It receives one Value per input,
// combines them only through the primitives of t, and returns the values it
// means as outputs.
//
// The trace records the path taken for the placeholder samples only: branching
// on Value.Float produces a graph for that one branch.
type Func func(t *Trace, in []Value) []Value

// Recorder receives every node produced while tracing, in creation order.
type Recorder interface {
	Record(n Node)
}

// nodeList collects recorded nodes.
type nodeList []Node

// Record implements Recorder.
func (l *nodeList) Record(n Node) {
	*l = append(*l, n)
}

// Trace is the graph builder handed to a traced function.
// Each primitive call computes a representative value with the backend and
// reports a Node to the recorder.
//
// A Trace is valid only while the traced function runs. Errors are sticky:
// after the first inconsistency every call returns an invalid Value and Err
// reports the cause.
type Trace struct {
	backend  tensor.Backend
	recorder Recorder
	inputs   []Value
	next     int
	closed   bool
	err      error
}

// NewTrace creates a trace with one input per sample. Node ids are assigned
// from len(samples) upwards.
func NewTrace(b tensor.Backend, rec Recorder, samples []float64) *Trace {
	t := &Trace{
		backend:  b,
		recorder: rec,
		inputs:   make([]Value, len(samples)),
		next:     len(samples),
	}
	for i, s := range samples {
		t.inputs[i] = Value{kind: kindInput, id: i, sample: b.Full(tensor.Shape{}, s), trace: t}
	}
	return t
}

// Inputs returns the placeholder input values.
func (t *Trace) Inputs() []Value {
	return t.inputs
}

// Err returns the first inconsistency seen by the trace.
func (t *Trace) Err() error {
	return t.err
}

// Close ends the trace. Primitive calls after Close fail.
func (t *Trace) Close() {
	t.closed = true
}

// Sin records sin(x).
func (t *Trace) Sin(x Value) Value { return t.Call(ops.Sin, x) }

// Cos records cos(x).
func (t *Trace) Cos(x Value) Value { return t.Call(ops.Cos, x) }

// Exp records exp(x).
func (t *Trace) Exp(x Value) Value { return t.Call(ops.Exp, x) }

// Add records a + b.
func (t *Trace) Add(a, b Value) Value { return t.Call(ops.Add, a, b) }

// Sub records a - b.
func (t *Trace) Sub(a, b Value) Value { return t.Call(ops.Subtract, a, b) }

// Mul records a * b.
func (t *Trace) Mul(a, b Value) Value { return t.Call(ops.Multiply, a, b) }

// Div records a / b.
func (t *Trace) Div(a, b Value) Value { return t.Call(ops.Divide, a, b) }

// Pow records a ^ b.
func (t *Trace) Pow(a, b Value) Value { return t.Call(ops.Power, a, b) }

// Max records max(a, b).
func (t *Trace) Max(a, b Value) Value { return t.Call(ops.Maximum, a, b) }

// Min records min(a, b).
func (t *Trace) Min(a, b Value) Value { return t.Call(ops.Minimum, a, b) }

// Call applies op to args and records the resulting node.
//
// Constant arguments are kept with their argument position so evaluation can
// reinsert them. A call whose arguments are all constants is folded into a
// constant and records nothing.
func (t *Trace) Call(op ops.Op, args ...Value) Value {
	if t.err != nil {
		return Value{}
	}
	if t.closed {
		t.fail("%v called after the trace ended", op)
		return Value{}
	}
	if op == ops.Input || op.Arity() != len(args) {
		t.fail("%v called with %d operands", op, len(args))
		return Value{}
	}

	node := Node{Op: op}
	operands := make([]*tensor.RawTensor, len(args))
	for pos, a := range args {
		switch a.kind {
		case kindConstant:
			node.Constants = append(node.Constants, Constant{Value: a.lit, Position: pos})
			operands[pos] = t.backend.Full(tensor.Shape{}, a.lit)
		case kindInput, kindTraced:
			if a.trace != t {
				t.fail("operand %d of %v belongs to another trace", pos, op)
				return Value{}
			}
			node.Operands = append(node.Operands, a.id)
			operands[pos] = a.sample
		default:
			t.fail("operand %d of %v is not a traced value", pos, op)
			return Value{}
		}
	}

	res, _, err := op.Apply(t.backend, operands...)
	if err != nil {
		t.fail("%v", err)
		return Value{}
	}

	if len(node.Operands) == 0 {
		return Const(res.Item())
	}

	node.ID = t.next
	t.next++
	t.recorder.Record(node)

	return Value{kind: kindTraced, id: node.ID, sample: res, trace: t}
}

func (t *Trace) fail(format string, args ...any) {
	if t.err == nil {
		t.err = fmt.Errorf("%w: %s", ErrTraceInconsistency, fmt.Sprintf(format, args...))
	}
}

// Recording is the raw output of tracing a function once.
type Recording struct {
	NumInputs int
	Nodes     []Node // in creation order, ids from NumInputs upwards
	Returned  []int  // node ids of the values the function returned
}

// Record traces fn once with numInputs placeholder inputs.
func Record(fn Func, numInputs int, opts ...Option) (*Recording, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return record(fn, numInputs, cfg)
}

func record(fn Func, numInputs int, cfg *config) (*Recording, error) {
	if numInputs < 1 {
		return nil, fmt.Errorf("%w: function needs at least one input, got %d", ErrInvalidGraph, numInputs)
	}

	samples := cfg.samples
	if samples == nil {
		rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
		samples = make([]float64, numInputs)
		for i := range samples {
			samples[i] = rng.Float64()
		}
	}
	if len(samples) != numInputs {
		return nil, fmt.Errorf("%w: %d samples for %d inputs", ErrTraceInconsistency, len(samples), numInputs)
	}

	var nodes nodeList
	t := NewTrace(cfg.backend, &nodes, samples)
	results := fn(t, t.Inputs())
	t.Close()

	if err := t.Err(); err != nil {
		return nil, err
	}

	rec := &Recording{NumInputs: numInputs, Nodes: nodes}
	for i, v := range results {
		switch v.kind {
		case kindConstant:
			cfg.logger.Info("traced function returned a constant, it is not part of the graph", "result", i, "value", v.lit)
		case kindInput, kindTraced:
			if v.trace != t {
				return nil, fmt.Errorf("%w: result %d belongs to another trace", ErrTraceInconsistency, i)
			}
			rec.Returned = append(rec.Returned, v.id)
		default:
			return nil, fmt.Errorf("%w: result %d is not a traced value", ErrTraceInconsistency, i)
		}
	}
	return rec, nil
}
