// Package tensors implements a local, in-memory Tensor: a multidimensional
// array of a uniform DType (see github.com/gomlx/gopjrt/dtypes).
//
// It is used both to feed values to a computation graph and to hold its
// results. Data is stored as a flat slice in row-major order, and accessed
// through the ConstFlatData/MutableFlatData accessors.
package tensors

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// Tensor is a multidimensional array of one of the supported DTypes.
// Create it with FromValue, FromAnyValue, FromShape or FromFlatDataAndDimensions.
//
// It is not thread-safe for mutation.
type Tensor struct {
	shape shapes.Shape

	// flat is a slice of the Go type corresponding to shape.DType, with
	// shape.Size() elements, in row-major order.
	flat any
}

// Shape of the Tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the Tensor's shape.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of the Tensor's shape.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Size returns the number of elements of the Tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// IsScalar returns whether the Tensor holds a single value.
func (t *Tensor) IsScalar() bool { return t.shape.IsScalar() }

// Memory returns the number of bytes used to store the Tensor data.
func (t *Tensor) Memory() uintptr { return t.shape.Memory() }

// Ok returns whether the Tensor holds a valid shape and data.
func (t *Tensor) Ok() bool { return t != nil && t.shape.Ok() && t.flat != nil }

// AssertValid panics if t is nil or invalid.
func (t *Tensor) AssertValid() {
	if !t.Ok() {
		panic(fmt.Sprintf("tensors: invalid tensor %v", t))
	}
}

// String prints a summary of the Tensor: shape and memory used.
func (t *Tensor) String() string {
	if !t.Ok() {
		return "tensors.Tensor(invalid)"
	}
	return fmt.Sprintf("tensors.Tensor%s: %s", t.shape, humanize.Bytes(uint64(t.Memory())))
}
