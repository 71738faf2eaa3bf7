package backends

import (
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
)

// StandardOps lists the primitive operations that a Builder must provide.
// They are the instruction set the elwise lowerings compose into formulas.
//
// Binary operations support implicit broadcasting: operands must either have
// the same dimensions, or a dimension of size 1 (or be a scalar), which is
// broadcast to the other operand's dimension.
type StandardOps interface {
	// Abs returns the Op that represents the output of the corresponding operation.
	Abs(x Op) (Op, error)

	// Add returns the element-wise sum of the two values.
	Add(lhs, rhs Op) (Op, error)

	// BitwiseAnd returns the element-wise bitwise AND operation.
	BitwiseAnd(lhs, rhs Op) (Op, error)

	// BitwiseNot returns the element-wise bitwise NOT operation.
	BitwiseNot(x Op) (Op, error)

	// BitwiseOr returns the element-wise bitwise OR operation.
	BitwiseOr(lhs, rhs Op) (Op, error)

	// BitwiseXor returns the element-wise bitwise XOR operation.
	BitwiseXor(lhs, rhs Op) (Op, error)

	// BroadcastInDim broadcasts x to an output with the given shape.
	// broadcastAxes has an output axis for each axis of x, which must be of the
	// same dimension in outputShape or of dimension 1 in x (in which case it is
	// expanded).
	BroadcastInDim(x Op, outputShape shapes.Shape, broadcastAxes []int) (Op, error)

	// Complex returns the complex number taking x0 as the real part and x1 as the imaginary part.
	// The real (x0) and imaginary (x1) must have the same dtype, and they must be either Float32 or Float64.
	Complex(re, im Op) (Op, error)

	// ConvertDType of x to dtype.
	ConvertDType(x Op, dtype dtypes.DType) (Op, error)

	// Div returns the element-wise division of the two values.
	Div(lhs, rhs Op) (Op, error)

	// Equal performs element-wise equality check, returns boolean results with the same dimensions as input.
	Equal(lhs, rhs Op) (Op, error)

	// Erf returns the "error function", defined as erf(x) = 2/Pi * \int_{0}^{x}{e^{-t^2}dt}.
	Erf(x Op) (Op, error)

	// Exp returns the Op that represents the output of the corresponding operation.
	Exp(x Op) (Op, error)

	// Expm1 returns e^x-1. It is more accurate than Exp(x)-1 for small values of x.
	Expm1(x Op) (Op, error)

	// GreaterOrEqual performs element-wise comparison, returns boolean results with the same dimensions as input.
	GreaterOrEqual(lhs, rhs Op) (Op, error)

	// GreaterThan performs element-wise comparison, returns boolean results with the same dimensions as input.
	GreaterThan(lhs, rhs Op) (Op, error)

	// Identity returns an Op whose output is the same as its input.
	// It's a no-op that can serve as a place-holder.
	Identity(x Op) (Op, error)

	// Imag returns the imaginary part of a complex number. It returns 0 if the x is a float number.
	Imag(x Op) (Op, error)

	// IsFinite tests whether each element of x is finite, i.e., not positive or negative infinity, and not NaN.
	// It returns booleans with the same dimensions as the input.
	IsFinite(x Op) (Op, error)

	// LessOrEqual performs element-wise comparison, returns boolean results with the same dimensions as input.
	LessOrEqual(lhs, rhs Op) (Op, error)

	// LessThan performs element-wise comparison, returns boolean results with the same dimensions as input.
	LessThan(lhs, rhs Op) (Op, error)

	// Log returns the element-wise natural logarithm of x.
	Log(x Op) (Op, error)

	// Log1p returns the expression log(x+1). It is more accurate than Log(1+x) for small values of x.
	Log1p(x Op) (Op, error)

	// LogicalAnd returns the element-wise logical AND operation. Operands must be boolean.
	LogicalAnd(lhs, rhs Op) (Op, error)

	// LogicalNot returns the element-wise logical NOT operation. The operand must be boolean.
	LogicalNot(x Op) (Op, error)

	// LogicalOr returns the element-wise logical OR operation. Operands must be boolean.
	LogicalOr(lhs, rhs Op) (Op, error)

	// Logistic returns the element-wise expression 1/(1+exp(-x)), also known as the Sigmoid function.
	Logistic(x Op) (Op, error)

	// Max returns the element-wise highest of the two values.
	Max(lhs, rhs Op) (Op, error)

	// Min returns the element-wise smallest of the two values.
	Min(lhs, rhs Op) (Op, error)

	// Mul returns the element-wise multiplication of the two values.
	Mul(lhs, rhs Op) (Op, error)

	// Neg returns the element-wise negation of x.
	Neg(x Op) (Op, error)

	// NotEqual performs element-wise inequality check, returns boolean results with the same dimensions as input.
	NotEqual(lhs, rhs Op) (Op, error)

	// Pow returns the element-wise lhs^rhs.
	Pow(lhs, rhs Op) (Op, error)

	// Real returns the real part of a complex number. It returns x if the x is a float number.
	Real(x Op) (Op, error)

	// Reshape reshapes x to the new dimensions. Total size cannot change, it's just a "reinterpretation"
	// of the same flat data.
	Reshape(x Op, dimensions ...int) (Op, error)

	// RNGBitGenerator generates the given shape filled with random bits.
	// It takes as input the current random number generator (RNG) state, see RNGStateShape.
	// It returns the new state of the RNG and the generated values with the given shape.
	RNGBitGenerator(state Op, shape shapes.Shape) (newState, values Op, err error)

	// ShiftLeft n bits of integer values. It implicitly preserves the sign bit, if there is no overflow.
	ShiftLeft(x, n Op) (Op, error)

	// ShiftRightArithmetic shifts right by n bits, preserving the sign bit.
	ShiftRightArithmetic(x, n Op) (Op, error)

	// ShiftRightLogical shifts right by n bits, zeroing the leftmost bits.
	ShiftRightLogical(x, n Op) (Op, error)

	// Sign returns element-wise +1, +/-0 or -1 depending on the sign of x.
	// It returns NaN for NaN values and is not defined for unsigned or boolean dtypes.
	Sign(x Op) (Op, error)

	// Sqrt returns the element-wise square root of x. It returns NaN for negative values.
	Sqrt(x Op) (Op, error)

	// Sub returns the element-wise subtraction of the two values.
	Sub(lhs, rhs Op) (Op, error)

	// Tanh returns the element-wise hyperbolic tangent of x.
	Tanh(x Op) (Op, error)

	// Where takes an element-wise selection based on the boolean condition: if true it takes the
	// corresponding element of onTrue, otherwise of onFalse.
	// onTrue and onFalse may be scalars, in which case they are broadcast to the condition's dimensions.
	Where(condition, onTrue, onFalse Op) (Op, error)
}
