package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/ndiff/autodiff"
)

// builtin is a traceable example function.
type builtin struct {
	fn        autodiff.Func
	numInputs int
	help      string
}

var builtins = map[string]builtin{
	"sigmoid": {
		fn: func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
			x := t.Exp(t.Mul(in[0], autodiff.Const(-1)))
			return []autodiff.Value{t.Div(autodiff.Const(1), t.Add(autodiff.Const(1), x))}
		},
		numInputs: 1,
		help:      "1 / (1 + exp(-x))",
	},
	"double": {
		fn: func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
			return []autodiff.Value{t.Add(in[0], in[0])}
		},
		numInputs: 1,
		help:      "x + x",
	},
	"polar": {
		fn: func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
			r, theta := in[0], in[1]
			return []autodiff.Value{t.Mul(r, t.Cos(theta)), t.Mul(r, t.Sin(theta))}
		},
		numInputs: 2,
		help:      "(r, theta) -> (r cos theta, r sin theta)",
	},
}

func builtinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (builtin, error) {
	b, ok := builtins[name]
	if !ok {
		return builtin{}, fmt.Errorf("unknown function %q (available: %s)", name, strings.Join(builtinNames(), ", "))
	}
	return b, nil
}
