package autodiff

import "errors"

var (
	// ErrTraceInconsistency is returned when a traced function combines values
	// the trace cannot resolve: values from another trace, zero Values, or a
	// primitive called with the wrong number of operands.
	ErrTraceInconsistency = errors.New("trace inconsistency")

	// ErrShapeMismatch is returned when a batch does not match the compiled
	// function's input layout.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNoForward is returned by Backward when no successful Forward preceded it.
	ErrNoForward = errors.New("backward called without a preceding forward")

	// ErrInvalidGraph is returned for node lists that do not describe a graph:
	// duplicate or out-of-range ids, unknown operators, bad operand counts.
	ErrInvalidGraph = errors.New("invalid graph")

	// ErrCycle is returned when a node list contains a dependency cycle.
	ErrCycle = errors.New("graph contains a cycle")
)
