package autodiff

import (
	"fmt"

	"github.com/born-ml/ndiff/internal/autodiff/ops"
)

// Constant is an operand fixed at trace time, with the argument position it
// must be reinserted at during evaluation.
type Constant struct {
	Value    float64 `json:"value" yaml:"value"`
	Position int     `json:"position" yaml:"position"`
}

// Node is one recorded operation. Ids below the graph's input count are
// input leaves with no operands.
type Node struct {
	ID        int
	Op        ops.Op
	Operands  []int      // node ids consumed, in argument order, constants excluded
	Constants []Constant // literal arguments
}

// arguments returns the full argument list of n: operand ids in order, with
// -1 at every constant position.
func (n Node) arguments() []int {
	args := make([]int, len(n.Operands)+len(n.Constants))
	isConst := make([]bool, len(args))
	for _, c := range n.Constants {
		isConst[c.Position] = true
		args[c.Position] = -1
	}
	next := 0
	for i := range args {
		if isConst[i] {
			continue
		}
		args[i] = n.Operands[next]
		next++
	}
	return args
}

// Graph is a validated set of nodes indexed by id.
//
// Outputs are the sinks of the graph: nodes that no other node consumes,
// in ascending id order. An input that nothing consumes is therefore an output.
type Graph struct {
	nodes     []Node
	numInputs int
	outputs   []int
	outputPos []int // position of each node in outputs, -1 if not an output
}

// NewGraph adds numInputs input leaves (ids 0..numInputs-1) to the recorded
// nodes and validates the result. Recorded ids must cover
// numInputs..numInputs+len(recorded)-1 exactly once.
func NewGraph(numInputs int, recorded []Node) (*Graph, error) {
	if numInputs < 1 {
		return nil, fmt.Errorf("%w: need at least one input, got %d", ErrInvalidGraph, numInputs)
	}

	total := numInputs + len(recorded)
	nodes := make([]Node, total)
	filled := make([]bool, total)
	for i := 0; i < numInputs; i++ {
		nodes[i] = Node{ID: i, Op: ops.Input}
		filled[i] = true
	}

	for _, n := range recorded {
		if n.ID < numInputs || n.ID >= total {
			return nil, fmt.Errorf("%w: node id %d outside [%d, %d)", ErrInvalidGraph, n.ID, numInputs, total)
		}
		if filled[n.ID] {
			return nil, fmt.Errorf("%w: duplicate node id %d", ErrInvalidGraph, n.ID)
		}
		if err := validateNode(n, total); err != nil {
			return nil, err
		}
		nodes[n.ID] = Node{
			ID:        n.ID,
			Op:        n.Op,
			Operands:  append([]int(nil), n.Operands...),
			Constants: append([]Constant(nil), n.Constants...),
		}
		filled[n.ID] = true
	}

	consumed := make([]bool, total)
	for _, n := range nodes {
		for _, id := range n.Operands {
			consumed[id] = true
		}
	}

	g := &Graph{
		nodes:     nodes,
		numInputs: numInputs,
		outputPos: make([]int, total),
	}
	for id := range nodes {
		g.outputPos[id] = -1
		if !consumed[id] {
			g.outputPos[id] = len(g.outputs)
			g.outputs = append(g.outputs, id)
		}
	}
	return g, nil
}

func validateNode(n Node, total int) error {
	if !n.Op.Valid() || n.Op == ops.Input {
		return fmt.Errorf("%w: node %d has operator %v", ErrInvalidGraph, n.ID, n.Op)
	}
	arity := n.Op.Arity()
	if got := len(n.Operands) + len(n.Constants); got != arity {
		return fmt.Errorf("%w: node %d: %v takes %d arguments, got %d", ErrInvalidGraph, n.ID, n.Op, arity, got)
	}
	if len(n.Operands) == 0 {
		return fmt.Errorf("%w: node %d has only constant arguments", ErrInvalidGraph, n.ID)
	}
	taken := make([]bool, arity)
	for _, c := range n.Constants {
		if c.Position < 0 || c.Position >= arity || taken[c.Position] {
			return fmt.Errorf("%w: node %d has constant at position %d", ErrInvalidGraph, n.ID, c.Position)
		}
		taken[c.Position] = true
	}
	for _, id := range n.Operands {
		if id < 0 || id >= total {
			return fmt.Errorf("%w: node %d consumes unknown node %d", ErrInvalidGraph, n.ID, id)
		}
	}
	return nil
}

// NumInputs returns the number of input leaves.
func (g *Graph) NumInputs() int {
	return g.numInputs
}

// NumNodes returns the number of nodes, inputs included.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if id < 0 || id >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// OutputIDs returns the sink node ids in ascending order.
func (g *Graph) OutputIDs() []int {
	return append([]int(nil), g.outputs...)
}

// IsOutput reports whether id is a sink.
func (g *Graph) IsOutput(id int) bool {
	return id >= 0 && id < len(g.outputPos) && g.outputPos[id] >= 0
}
