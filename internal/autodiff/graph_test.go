package autodiff_test

import (
	"testing"

	"github.com/born-ml/ndiff/internal/autodiff"
	"github.com/born-ml/ndiff/internal/autodiff/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_Outputs(t *testing.T) {
	// in_0 -> sin(2) -> add(3) <- in_1 ; cos(4) of in_0
	g, err := autodiff.NewGraph(2, []autodiff.Node{
		{ID: 2, Op: ops.Sin, Operands: []int{0}},
		{ID: 3, Op: ops.Add, Operands: []int{2, 1}},
		{ID: 4, Op: ops.Cos, Operands: []int{0}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, g.NumInputs())
	assert.Equal(t, 5, g.NumNodes())
	assert.Equal(t, []int{3, 4}, g.OutputIDs())
	assert.True(t, g.IsOutput(3))
	assert.False(t, g.IsOutput(2))
	assert.False(t, g.IsOutput(-1))
	assert.False(t, g.IsOutput(99))

	n, ok := g.Node(0)
	require.True(t, ok)
	assert.Equal(t, ops.Input, n.Op)
	assert.Empty(t, n.Operands)

	_, ok = g.Node(5)
	assert.False(t, ok)
}

func TestNewGraph_RecordedOrderDoesNotMatter(t *testing.T) {
	g, err := autodiff.NewGraph(1, []autodiff.Node{
		{ID: 2, Op: ops.Exp, Operands: []int{1}},
		{ID: 1, Op: ops.Sin, Operands: []int{0}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, g.OutputIDs())
}

func TestNewGraph_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		numInputs int
		nodes     []autodiff.Node
	}{
		{"no inputs", 0, nil},
		{"id below inputs", 1, []autodiff.Node{{ID: 0, Op: ops.Sin, Operands: []int{0}}}},
		{"id gap", 1, []autodiff.Node{{ID: 2, Op: ops.Sin, Operands: []int{0}}}},
		{"duplicate id", 1, []autodiff.Node{
			{ID: 1, Op: ops.Sin, Operands: []int{0}},
			{ID: 1, Op: ops.Cos, Operands: []int{0}},
		}},
		{"input op", 1, []autodiff.Node{{ID: 1, Op: ops.Input}}},
		{"unknown op", 1, []autodiff.Node{{ID: 1, Op: ops.Op(200), Operands: []int{0}}}},
		{"arity", 1, []autodiff.Node{{ID: 1, Op: ops.Add, Operands: []int{0}}}},
		{"only constants", 1, []autodiff.Node{{ID: 1, Op: ops.Sin, Constants: []autodiff.Constant{{Value: 1}}}}},
		{"constant position out of range", 1, []autodiff.Node{
			{ID: 1, Op: ops.Add, Operands: []int{0}, Constants: []autodiff.Constant{{Value: 1, Position: 2}}},
		}},
		{"unknown operand", 1, []autodiff.Node{{ID: 1, Op: ops.Sin, Operands: []int{7}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := autodiff.NewGraph(tt.numInputs, tt.nodes)
			assert.ErrorIs(t, err, autodiff.ErrInvalidGraph)
		})
	}
}

func TestTopologicalOrder_OperandsFirst(t *testing.T) {
	f := compile(t, polar, 2)
	g := f.Graph()

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, g.NumNodes())

	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	require.Len(t, pos, g.NumNodes())

	for id := 0; id < g.NumNodes(); id++ {
		n, _ := g.Node(id)
		for _, operand := range n.Operands {
			assert.Less(t, pos[operand], pos[id], "node %d before its operand %d", id, operand)
		}
	}

	back := f.BackwardOrder()
	for i, id := range f.ForwardOrder() {
		assert.Equal(t, id, back[len(back)-1-i])
	}
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	a := compile(t, sigmoid, 1)
	b := compile(t, sigmoid, 1)
	assert.Equal(t, a.ForwardOrder(), b.ForwardOrder())
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	// 1 = sin(2), 2 = cos(1)
	g, err := autodiff.NewGraph(1, []autodiff.Node{
		{ID: 1, Op: ops.Sin, Operands: []int{2}},
		{ID: 2, Op: ops.Cos, Operands: []int{1}},
		{ID: 3, Op: ops.Add, Operands: []int{0, 2}},
	})
	require.NoError(t, err)

	_, err = g.TopologicalOrder()
	assert.ErrorIs(t, err, autodiff.ErrCycle)

	_, err = autodiff.NewCompiledFunction(g)
	assert.ErrorIs(t, err, autodiff.ErrCycle)
}

func TestTopologicalOrder_SelfLoop(t *testing.T) {
	g, err := autodiff.NewGraph(1, []autodiff.Node{
		{ID: 1, Op: ops.Multiply, Operands: []int{0, 1}},
	})
	require.NoError(t, err)

	_, err = g.TopologicalOrder()
	assert.ErrorIs(t, err, autodiff.ErrCycle)
}

func TestTopologicalOrder_DeepChain(t *testing.T) {
	const depth = 100000
	nodes := make([]autodiff.Node, depth)
	for i := range nodes {
		nodes[i] = autodiff.Node{ID: i + 1, Op: ops.Sin, Operands: []int{i}}
	}
	g, err := autodiff.NewGraph(1, nodes)
	require.NoError(t, err)

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, depth+1)
	for i, id := range order {
		assert.Equal(t, i, id)
		if i > 10 {
			break
		}
	}
	assert.Equal(t, depth, order[len(order)-1])
}

func TestNewCompiledFunction_HandBuilt(t *testing.T) {
	// y = 2 - x, with the constant in the first slot.
	g, err := autodiff.NewGraph(1, []autodiff.Node{
		{ID: 1, Op: ops.Subtract, Operands: []int{0}, Constants: []autodiff.Constant{{Value: 2, Position: 0}}},
	})
	require.NoError(t, err)
	f, err := autodiff.NewCompiledFunction(g)
	require.NoError(t, err)

	out, err := f.Forward(batch(t, []float64{0.5}, []float64{5}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -3}, out.Data())

	jac, err := f.Backward()
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1}, jac.Data())
}
