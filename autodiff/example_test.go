package autodiff_test

import (
	"fmt"

	"github.com/born-ml/ndiff/autodiff"
	"github.com/born-ml/ndiff/tensor"
	"github.com/go-logr/logr"
)

func ExampleCompile() {
	sigmoid := func(t *autodiff.Trace, in []autodiff.Value) []autodiff.Value {
		x := t.Exp(t.Mul(in[0], autodiff.Const(-1)))
		return []autodiff.Value{t.Div(autodiff.Const(1), t.Add(autodiff.Const(1), x))}
	}

	f, err := autodiff.Compile(sigmoid, 1, autodiff.WithLogger(logr.Discard()))
	if err != nil {
		panic(err)
	}

	x, err := tensor.FromSlice([]float64{0.75, -1}, tensor.Shape{2, 1}, tensor.CPU)
	if err != nil {
		panic(err)
	}
	y, err := f.Forward(x)
	if err != nil {
		panic(err)
	}
	jac, err := f.Backward()
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.4f %.4f\n", y.At(0, 0), y.At(1, 0))
	fmt.Printf("%.4f %.4f\n", jac.At(0, 0, 0), jac.At(1, 0, 0))
	// Output:
	// 0.6792 0.2689
	// 0.2179 0.1966
}

func ExampleParseOp() {
	op, err := autodiff.ParseOp("maximum")
	if err != nil {
		panic(err)
	}
	fmt.Println(op, op.Arity())
	// Output: maximum 2
}
