package graph

import (
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/elwise/types/tensors"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// validateBuildingGraphFromInputs checks that all inputs are non-nil, belong to the
// same graph, and that the graph is still building. It returns the common graph.
func validateBuildingGraphFromInputs(inputs ...*Node) *Graph {
	if len(inputs) == 0 {
		Panicf("no input nodes given")
	}
	var g *Graph
	for ii, node := range inputs {
		if node == nil {
			Panicf("input node #%d is nil", ii)
		}
		node.AssertValid()
		if g == nil {
			g = node.graph
		} else if node.graph != g {
			Panicf("input node #%d belongs to a different graph (%q != %q)",
				ii, node.graph.name, g.name)
		}
	}
	g.AssertBuilding()
	return g
}

// Parameter creates an input parameter for the graph. During execution of a compiled
// graph (see Graph.Run) one value per parameter must be fed, in the order they were created.
func Parameter(g *Graph, name string, shape shapes.Shape) *Node {
	g.AssertBuilding()
	if g.paramNames[name] {
		Panicf("Parameter: graph %q already has a parameter named %q", g.name, name)
	}
	op, err := g.builder.Parameter(name, shape)
	node := g.newNode(opNameParameter, op, err)
	node.parameterName = name
	g.paramNames[name] = true
	g.parameters = append(g.parameters, node)
	return node
}

// ConstTensor creates a constant node for the given tensor value.
//
// It's better to use Parameter for values that change often: constants are compiled
// into the graph, and a new value requires a re-compilation.
func ConstTensor(g *Graph, t *tensors.Tensor) *Node {
	g.AssertBuilding()
	t.AssertValid()
	var node *Node
	t.MustConstFlatData(func(flat any) {
		op, err := g.builder.Constant(flat, t.Shape().Dimensions...)
		node = g.newNode("Constant", op, err)
	})
	return node
}

// Const creates a constant node from a scalar or (multidimensional) slice value --
// anything accepted by tensors.FromAnyValue.
func Const(g *Graph, value any) *Node {
	return ConstTensor(g, tensors.FromAnyValue(value))
}

// ConstAsDType creates a constant node with the given dtype: value is cast accordingly,
// see shapes.CastAsDType.
func ConstAsDType(g *Graph, dtype dtypes.DType, value any) *Node {
	return Const(g, shapes.CastAsDType(value, dtype))
}

// ConstAs creates a constant node with the same dtype as base.
func ConstAs(base *Node, value any) *Node {
	return ConstAsDType(base.Graph(), base.DType(), value)
}

// Abs returns the element-wise absolute value of x.
func Abs(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Abs(x.outputOp)
	return g.newNode("Abs", op, err, x)
}

// Neg returns the element-wise negation of x.
func Neg(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Neg(x.outputOp)
	return g.newNode("Neg", op, err, x)
}

// Sign returns element-wise +1, +/-0 or -1 of x. It returns NaN for NaN values.
// It is not defined for unsigned or boolean dtypes -- see elwise.BuildSign for a
// version that handles those.
func Sign(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Sign(x.outputOp)
	return g.newNode("Sign", op, err, x)
}

// Exp returns the element-wise e^x.
func Exp(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Exp(x.outputOp)
	return g.newNode("Exp", op, err, x)
}

// Expm1 returns the element-wise e^x - 1, accurate for small x.
func Expm1(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Expm1(x.outputOp)
	return g.newNode("Expm1", op, err, x)
}

// Log returns the element-wise natural logarithm of x.
func Log(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Log(x.outputOp)
	return g.newNode("Log", op, err, x)
}

// Log1p returns the element-wise log(1+x), accurate for small x.
func Log1p(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Log1p(x.outputOp)
	return g.newNode("Log1p", op, err, x)
}

// Logistic returns the element-wise 1/(1+e^-x), also known as the sigmoid.
func Logistic(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Logistic(x.outputOp)
	return g.newNode("Logistic", op, err, x)
}

// Sigmoid is an alias for Logistic.
func Sigmoid(x *Node) *Node { return Logistic(x) }

// Erf returns the element-wise "error function" of x.
func Erf(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Erf(x.outputOp)
	return g.newNode("Erf", op, err, x)
}

// Sqrt returns the element-wise square root of x.
func Sqrt(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Sqrt(x.outputOp)
	return g.newNode("Sqrt", op, err, x)
}

// Tanh returns the element-wise hyperbolic tangent of x.
func Tanh(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Tanh(x.outputOp)
	return g.newNode("Tanh", op, err, x)
}

// IsFinite tests element-wise whether x is finite: not infinity and not NaN.
// It returns a boolean node with the same dimensions.
func IsFinite(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.IsFinite(x.outputOp)
	return g.newNode("IsFinite", op, err, x)
}

// Add returns the element-wise sum. It supports implicit broadcasting: operand
// dimensions must match, or be 1 (or a scalar).
func Add(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Add(lhs.outputOp, rhs.outputOp)
	return g.newNode("Add", op, err, lhs, rhs)
}

// Sub returns the element-wise subtraction, with implicit broadcasting.
func Sub(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Sub(lhs.outputOp, rhs.outputOp)
	return g.newNode("Sub", op, err, lhs, rhs)
}

// Mul returns the element-wise multiplication, with implicit broadcasting.
func Mul(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Mul(lhs.outputOp, rhs.outputOp)
	return g.newNode("Mul", op, err, lhs, rhs)
}

// Div returns the element-wise division, with implicit broadcasting.
func Div(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Div(lhs.outputOp, rhs.outputOp)
	return g.newNode("Div", op, err, lhs, rhs)
}

// Max returns the element-wise highest value, with implicit broadcasting.
func Max(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Max(lhs.outputOp, rhs.outputOp)
	return g.newNode("Max", op, err, lhs, rhs)
}

// Min returns the element-wise smallest value, with implicit broadcasting.
func Min(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Min(lhs.outputOp, rhs.outputOp)
	return g.newNode("Min", op, err, lhs, rhs)
}

// Pow returns the element-wise lhs^rhs, with implicit broadcasting.
func Pow(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Pow(lhs.outputOp, rhs.outputOp)
	return g.newNode("Pow", op, err, lhs, rhs)
}

// Equal performs the element-wise comparison, returning a boolean node.
func Equal(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.Equal(lhs.outputOp, rhs.outputOp)
	return g.newNode("Equal", op, err, lhs, rhs)
}

// NotEqual performs the element-wise comparison, returning a boolean node.
// Following IEEE 754, NaN is not equal to anything, including itself.
func NotEqual(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.NotEqual(lhs.outputOp, rhs.outputOp)
	return g.newNode("NotEqual", op, err, lhs, rhs)
}

// GreaterOrEqual performs the element-wise comparison, returning a boolean node.
func GreaterOrEqual(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.GreaterOrEqual(lhs.outputOp, rhs.outputOp)
	return g.newNode("GreaterOrEqual", op, err, lhs, rhs)
}

// GreaterThan performs the element-wise comparison, returning a boolean node.
func GreaterThan(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.GreaterThan(lhs.outputOp, rhs.outputOp)
	return g.newNode("GreaterThan", op, err, lhs, rhs)
}

// LessOrEqual performs the element-wise comparison, returning a boolean node.
func LessOrEqual(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.LessOrEqual(lhs.outputOp, rhs.outputOp)
	return g.newNode("LessOrEqual", op, err, lhs, rhs)
}

// LessThan performs the element-wise comparison, returning a boolean node.
func LessThan(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.LessThan(lhs.outputOp, rhs.outputOp)
	return g.newNode("LessThan", op, err, lhs, rhs)
}

// LogicalAnd returns the element-wise AND of the boolean operands.
func LogicalAnd(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.LogicalAnd(lhs.outputOp, rhs.outputOp)
	return g.newNode("LogicalAnd", op, err, lhs, rhs)
}

// LogicalOr returns the element-wise OR of the boolean operands.
func LogicalOr(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.LogicalOr(lhs.outputOp, rhs.outputOp)
	return g.newNode("LogicalOr", op, err, lhs, rhs)
}

// LogicalNot returns the element-wise NOT of the boolean operand.
func LogicalNot(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.LogicalNot(x.outputOp)
	return g.newNode("LogicalNot", op, err, x)
}

// BitwiseAnd returns the element-wise AND of the integer operands.
func BitwiseAnd(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.BitwiseAnd(lhs.outputOp, rhs.outputOp)
	return g.newNode("BitwiseAnd", op, err, lhs, rhs)
}

// BitwiseOr returns the element-wise OR of the integer operands.
func BitwiseOr(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.BitwiseOr(lhs.outputOp, rhs.outputOp)
	return g.newNode("BitwiseOr", op, err, lhs, rhs)
}

// BitwiseXor returns the element-wise XOR of the integer operands.
func BitwiseXor(lhs, rhs *Node) *Node {
	g := validateBuildingGraphFromInputs(lhs, rhs)
	op, err := g.builder.BitwiseXor(lhs.outputOp, rhs.outputOp)
	return g.newNode("BitwiseXor", op, err, lhs, rhs)
}

// BitwiseNot returns the element-wise NOT of the integer operand.
func BitwiseNot(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.BitwiseNot(x.outputOp)
	return g.newNode("BitwiseNot", op, err, x)
}

// ShiftLeft shifts x left by n bits, element-wise.
func ShiftLeft(x, n *Node) *Node {
	g := validateBuildingGraphFromInputs(x, n)
	op, err := g.builder.ShiftLeft(x.outputOp, n.outputOp)
	return g.newNode("ShiftLeft", op, err, x, n)
}

// ShiftRightArithmetic shifts x right by n bits, element-wise, preserving the sign bit.
func ShiftRightArithmetic(x, n *Node) *Node {
	g := validateBuildingGraphFromInputs(x, n)
	op, err := g.builder.ShiftRightArithmetic(x.outputOp, n.outputOp)
	return g.newNode("ShiftRightArithmetic", op, err, x, n)
}

// ShiftRightLogical shifts x right by n bits, element-wise, zeroing the leftmost bits.
func ShiftRightLogical(x, n *Node) *Node {
	g := validateBuildingGraphFromInputs(x, n)
	op, err := g.builder.ShiftRightLogical(x.outputOp, n.outputOp)
	return g.newNode("ShiftRightLogical", op, err, x, n)
}

// Where takes the element-wise selection based on the boolean condition: the
// corresponding element of onTrue where true, of onFalse otherwise.
// onTrue and onFalse may be scalars, broadcast to the condition's dimensions.
func Where(condition, onTrue, onFalse *Node) *Node {
	g := validateBuildingGraphFromInputs(condition, onTrue, onFalse)
	op, err := g.builder.Where(condition.outputOp, onTrue.outputOp, onFalse.outputOp)
	return g.newNode("Where", op, err, condition, onTrue, onFalse)
}

// ConvertDType converts x to the given dtype. It is a no-op if x is already of the
// given dtype.
func ConvertDType(x *Node, dtype dtypes.DType) *Node {
	if x.DType() == dtype {
		return x
	}
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.ConvertDType(x.outputOp, dtype)
	return g.newNode("ConvertDType", op, err, x)
}

// Reshape x to the given dimensions: the total size cannot change, the flat data is
// just reinterpreted.
func Reshape(x *Node, dimensions ...int) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Reshape(x.outputOp, dimensions...)
	return g.newNode("Reshape", op, err, x)
}

// Complex returns the complex node combining the real (re) and imaginary (im) parts.
// Operands must be Float32 or Float64.
func Complex(re, im *Node) *Node {
	g := validateBuildingGraphFromInputs(re, im)
	op, err := g.builder.Complex(re.outputOp, im.outputOp)
	return g.newNode("Complex", op, err, re, im)
}

// Real returns the real part of a complex node.
func Real(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Real(x.outputOp)
	return g.newNode("Real", op, err, x)
}

// Imag returns the imaginary part of a complex node.
func Imag(x *Node) *Node {
	g := validateBuildingGraphFromInputs(x)
	op, err := g.builder.Imag(x.outputOp)
	return g.newNode("Imag", op, err, x)
}

// BroadcastToDims broadcasts x to the given dimensions. x must either be a scalar, or
// have the same rank as the target dimensions, with each of its dimensions either
// matching or being 1.
func BroadcastToDims(x *Node, dimensions ...int) *Node {
	g := validateBuildingGraphFromInputs(x)
	outputShape := shapes.Make(x.DType(), dimensions...)
	if x.Shape().Equal(outputShape) {
		return x
	}
	var broadcastAxes []int
	if !x.IsScalar() {
		if x.Rank() != len(dimensions) {
			Panicf("BroadcastToDims: node %s must be a scalar or have rank %d", x, len(dimensions))
		}
		broadcastAxes = make([]int, x.Rank())
		for axis := range broadcastAxes {
			broadcastAxes[axis] = axis
		}
	}
	op, err := g.builder.BroadcastInDim(x.outputOp, outputShape, broadcastAxes)
	return g.newNode("BroadcastInDim", op, err, x)
}

// BroadcastToShape broadcasts x to the given shape's dimensions -- the shape's dtype is ignored.
func BroadcastToShape(x *Node, shape shapes.Shape) *Node {
	return BroadcastToDims(x, shape.Dimensions...)
}
