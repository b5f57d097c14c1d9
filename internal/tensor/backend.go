package tensor

// Backend defines the array backend the differentiation engine runs on.
// Backends own tensor allocation and the element-wise kernels; the engine
// never touches tensor storage directly.
//
// Implementations:
//   - CPU: pure Go host-memory kernels (internal/backend/cpu)
//   - accelerator backends register themselves for their own Device
//
// Kernels panic on programmer errors such as shapes that do not broadcast
// or invalid axes, like any slice index out of range.
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting).
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Pow(a, b *RawTensor) *RawTensor
	Maximum(a, b *RawTensor) *RawTensor
	Minimum(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Neg(x *RawTensor) *RawTensor

	// Comparison masks: 1 where the predicate holds, 0 elsewhere.
	GreaterEqual(a, b *RawTensor) *RawTensor
	LowerEqual(a, b *RawTensor) *RawTensor
	Equal(a, b *RawTensor) *RawTensor

	// Where selects x where cond is non-zero and y elsewhere.
	Where(cond, x, y *RawTensor) *RawTensor

	// Allocation.
	Full(shape Shape, value float64) *RawTensor
	FromSlice(data []float64, shape Shape) *RawTensor

	// Manipulation.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor // reverses axes when none are given
	Stack(ts []*RawTensor) *RawTensor               // stacks equal shapes along a new leading axis
	Outer(a, b *RawTensor) *RawTensor               // tensordot with axes=0
	Index(t *RawTensor, i int) *RawTensor           // selects t[i] along the leading axis

	// Metadata
	Name() string
	Device() Device
}
