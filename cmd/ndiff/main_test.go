package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/born-ml/ndiff/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "ndiff", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("v"), "klog flags should be registered")
	assert.NotNil(t, cmd.PersistentFlags().Lookup("seed"))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"version", "list", "graph", "eval"})
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ndiff "+version+"\n", out)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"double", "polar", "sigmoid"} {
		assert.Contains(t, out, name)
	}
}

func TestGraph_JSON(t *testing.T) {
	out, err := run(t, "graph", "sigmoid", "--format", "json")
	require.NoError(t, err)

	var e autodiff.Export
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.Equal(t, 1, e.NumInputs)
	assert.Equal(t, []int{4}, e.Outputs)
	require.Len(t, e.Nodes, 5)
	assert.Equal(t, "in_0", e.Nodes[0].Op)
	assert.Equal(t, "divide", e.Nodes[4].Op)
}

func TestGraph_YAML(t *testing.T) {
	out, err := run(t, "graph", "polar")
	require.NoError(t, err)
	assert.Contains(t, out, "num_inputs: 2")
	assert.Contains(t, out, "outputs: [3, 5]")
}

func TestEval_Sigmoid(t *testing.T) {
	out, err := run(t, "eval", "sigmoid", "--input", "0.75", "--input=-1", "--format", "json")
	require.NoError(t, err)

	var res evalResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Outputs, 2)
	assert.InDelta(t, 0.6792, res.Outputs[0][0], 1e-4)
	assert.InDelta(t, 0.2689, res.Outputs[1][0], 1e-4)
	assert.InDelta(t, 0.2178, res.Jacobian[0][0][0], 1e-4)
	assert.InDelta(t, 0.1966, res.Jacobian[1][0][0], 1e-4)
}

func TestEval_PolarYAML(t *testing.T) {
	out, err := run(t, "eval", "polar", "-i", "2, 0")
	require.NoError(t, err)

	var res evalResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, [][]float64{{2, 0}}, res.Outputs)
	assert.Equal(t, [][][]float64{{{1, 0}, {0, 2}}}, res.Jacobian)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown function", []string{"eval", "tanh", "--input", "1"}},
		{"missing input", []string{"eval", "sigmoid"}},
		{"wrong width", []string{"eval", "polar", "--input", "1"}},
		{"not a number", []string{"eval", "double", "--input", "abc"}},
		{"bad format", []string{"eval", "double", "--input", "1", "--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
