package backends

import (
	"github.com/gomlx/elwise/types/shapes"
)

// Op represents the output of an operation while a computation is being built.
// It is opaque from the perspective of the caller: only the backend that created
// it knows its underlying type.
type Op any

// Builder defines the set of operations to build a computation.
// All operations return an error if the builder was already compiled, or if any
// of the operands is invalid.
type Builder interface {
	// Name of the computation being built.
	Name() string

	// OpShape returns the shape of a computation Op.
	OpShape(op Op) (shapes.Shape, error)

	// Parameter creates an input parameter for the computation.
	// During execution of the compiled computation, this value must be fed, in the same order it is created.
	Parameter(name string, shape shapes.Shape) (Op, error)

	// Constant creates a constant in the graph with the given flat values and the shape defined by the
	// dimensions. The flat value must be a slice of the Go type matching the wanted dtype.
	Constant(flat any, dimensions ...int) (Op, error)

	// Compile the computation built. The values for outputs will be returned in the given order when executing
	// the compiled computation. After Compile the builder is no longer valid.
	Compile(outputs ...Op) (Executable, error)

	StandardOps
}
