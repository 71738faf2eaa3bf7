package graph

import (
	"github.com/gomlx/gopjrt/dtypes"
)

// Scalar returns a constant scalar with the given value and dtype. Scalar constants
// are cached per graph, so it is cheap to call repeatedly with the same value.
func Scalar(g *Graph, dtype dtypes.DType, value float64) *Node {
	return g.getScalarConst(dtype, value)
}

// ScalarZero returns a zero-valued scalar constant of the given dtype.
func ScalarZero(g *Graph, dtype dtypes.DType) *Node {
	return Scalar(g, dtype, 0)
}

// ScalarOne returns a one-valued scalar constant of the given dtype.
func ScalarOne(g *Graph, dtype dtypes.DType) *Node {
	return Scalar(g, dtype, 1)
}

// FillScalar returns a node with the given dimensions filled with the scalar value,
// converted to the given dtype.
func FillScalar(g *Graph, dtype dtypes.DType, value float64, dimensions ...int) *Node {
	return BroadcastToDims(Scalar(g, dtype, value), dimensions...)
}

// ZerosLike returns a node with the same shape as x, filled with zeros.
func ZerosLike(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	return FillScalar(g, x.DType(), 0, x.Shape().Dimensions...)
}

// OnesLike returns a node with the same shape as x, filled with ones.
func OnesLike(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	return FillScalar(g, x.DType(), 1, x.Shape().Dimensions...)
}

// AddScalar adds the scalar value, converted to x's dtype, to every element of x.
func AddScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Add(x, Scalar(g, x.DType(), scalar))
}

// SubScalar subtracts the scalar value from every element of x.
func SubScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Sub(x, Scalar(g, x.DType(), scalar))
}

// MulScalar multiplies every element of x by the scalar value.
func MulScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Mul(x, Scalar(g, x.DType(), scalar))
}

// DivScalar divides every element of x by the scalar value.
func DivScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Div(x, Scalar(g, x.DType(), scalar))
}

// MaxScalar returns the element-wise maximum of x and the scalar value.
func MaxScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Max(x, Scalar(g, x.DType(), scalar))
}

// MinScalar returns the element-wise minimum of x and the scalar value.
func MinScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Min(x, Scalar(g, x.DType(), scalar))
}

// PowScalar raises every element of x to the scalar power.
func PowScalar(x *Node, scalar float64) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Pow(x, Scalar(g, x.DType(), scalar))
}

// OneMinus returns 1-x, element-wise.
func OneMinus(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	return Sub(ScalarOne(g, x.DType()), x)
}

// Clamp limits x element-wise to the closed interval [min, max]. Operands must share
// a dtype; min and max are usually scalars.
func Clamp(x, min, max *Node) *Node {
	return Min(Max(x, min), max)
}

// ClampScalar limits x element-wise to the closed interval [min, max].
func ClampScalar(x *Node, min, max float64) *Node {
	return MinScalar(MaxScalar(x, min), max)
}
