package autodiff

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/born-ml/ndiff/internal/autodiff/ops"
	"gopkg.in/yaml.v3"
	"lukechampine.com/blake3"
)

// NodeExport describes one node for external tools.
type NodeExport struct {
	ID        int        `json:"id" yaml:"id"`
	Op        string     `json:"op" yaml:"op"`
	Operands  []int      `json:"operands,omitempty" yaml:"operands,omitempty,flow"`
	Constants []Constant `json:"constants,omitempty" yaml:"constants,omitempty"`
}

// Export is a snapshot of a compiled graph's structure, suitable for
// visualization or for comparing two compilations.
type Export struct {
	NumInputs    int          `json:"num_inputs" yaml:"num_inputs"`
	Outputs      []int        `json:"outputs" yaml:"outputs,flow"`
	ForwardOrder []int        `json:"forward_order" yaml:"forward_order,flow"`
	Nodes        []NodeExport `json:"nodes" yaml:"nodes"`
	Fingerprint  string       `json:"fingerprint" yaml:"fingerprint"`
}

// Export returns the structure of f. Input leaves are named in_<k>.
func (f *CompiledFunction) Export() Export {
	g := f.graph
	e := Export{
		NumInputs:    g.numInputs,
		Outputs:      g.OutputIDs(),
		ForwardOrder: f.ForwardOrder(),
		Nodes:        make([]NodeExport, len(g.nodes)),
	}
	for id, n := range g.nodes {
		name := n.Op.String()
		if id < g.numInputs {
			name = fmt.Sprintf("in_%d", id)
		}
		e.Nodes[id] = NodeExport{
			ID:        id,
			Op:        name,
			Operands:  append([]int(nil), n.Operands...),
			Constants: append([]Constant(nil), n.Constants...),
		}
	}
	e.Fingerprint = fingerprint(g)
	return e
}

// YAML encodes the export as YAML.
func (e Export) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// Graph rebuilds the graph e describes, for example after reading it back
// from YAML. Input leaves are recreated from NumInputs.
func (e Export) Graph() (*Graph, error) {
	nodes := make([]Node, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		if n.ID >= 0 && n.ID < e.NumInputs {
			if n.Op != fmt.Sprintf("in_%d", n.ID) || len(n.Operands) > 0 || len(n.Constants) > 0 {
				return nil, fmt.Errorf("%w: node %d is an input and must be in_%d without arguments", ErrInvalidGraph, n.ID, n.ID)
			}
			continue
		}
		op, err := ops.ParseOp(n.Op)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %w", ErrInvalidGraph, n.ID, err)
		}
		nodes = append(nodes, Node{
			ID:        n.ID,
			Op:        op,
			Operands:  n.Operands,
			Constants: n.Constants,
		})
	}
	return NewGraph(e.NumInputs, nodes)
}

// fingerprint hashes the graph structure with BLAKE3. Two graphs have the
// same fingerprint when they have the same inputs, operators, operand ids and
// constants.
func fingerprint(g *Graph) string {
	h := blake3.New(32, nil)
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	put(uint64(g.numInputs))
	put(uint64(len(g.nodes)))
	for _, n := range g.nodes[g.numInputs:] {
		put(uint64(n.Op))
		put(uint64(len(n.Operands)))
		for _, id := range n.Operands {
			put(uint64(id))
		}
		put(uint64(len(n.Constants)))
		for _, c := range n.Constants {
			put(uint64(c.Position))
			put(math.Float64bits(c.Value))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
