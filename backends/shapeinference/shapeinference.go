// Package shapeinference calculates the shape resulting from operations, and validates
// the dtypes of their inputs.
//
// It is used by the simplego backend, but it can be used by any backend implementation:
// the rules are the same for all of them.
//
// The returned shape of binary operations accounts for implicit broadcasting: operands
// must either have the same dimensions, or one of them has dimension 1 (or is a scalar)
// on the axes they differ.
package shapeinference

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

var (
	// BooleanOperations take booleans as input, aka. logical operations.
	BooleanOperations = types.SetWith(
		backends.OpTypeLogicalAnd,
		backends.OpTypeLogicalOr,
		backends.OpTypeLogicalNot,
	)

	// BitwiseOperations operate only on integer (binary) numbers and won't work on floats or complex numbers.
	BitwiseOperations = types.SetWith(
		backends.OpTypeBitwiseAnd,
		backends.OpTypeBitwiseOr,
		backends.OpTypeBitwiseXor,
		backends.OpTypeBitwiseNot,
		backends.OpTypeShiftLeft,
		backends.OpTypeShiftRightArithmetic,
		backends.OpTypeShiftRightLogical,
	)

	// NumberOperations accept any type of number as input: integers, floats, or complex numbers.
	NumberOperations = types.SetWith(
		backends.OpTypeAbs,
		backends.OpTypeAdd,
		backends.OpTypeSub,
		backends.OpTypeMul,
		backends.OpTypeDiv,
		backends.OpTypeMax,
		backends.OpTypeMin,
		backends.OpTypePow,
		backends.OpTypeNeg,
		backends.OpTypeSign,
	)

	// FloatOperations operate only on float (and not on complex numbers).
	FloatOperations = types.SetWith(
		backends.OpTypeErf,
		backends.OpTypeLogistic,
		backends.OpTypeIsFinite,
	)

	// FloatOrComplexOperations operate only on float or complex numbers and won't work on integer or boolean values.
	FloatOrComplexOperations = types.SetWith(
		backends.OpTypeExp,
		backends.OpTypeExpm1,
		backends.OpTypeLog,
		backends.OpTypeLog1p,
		backends.OpTypeSqrt,
		backends.OpTypeTanh,
	)

	// ComplexOperations operate only on complex numbers.
	ComplexOperations = types.SetWith(
		backends.OpTypeImag,
		backends.OpTypeReal,
	)

	// StandardBinaryOperations include all operations that have two operands usually named lhs (left-hand-side)
	// and rhs (right-hand-side) and are usually commutative (invariant to order).
	StandardBinaryOperations = types.SetWith(
		backends.OpTypeAdd,
		backends.OpTypeSub,
		backends.OpTypeMul,
		backends.OpTypeDiv,
		backends.OpTypeMax,
		backends.OpTypeMin,
		backends.OpTypePow,
		backends.OpTypeBitwiseAnd,
		backends.OpTypeBitwiseOr,
		backends.OpTypeBitwiseXor,
		backends.OpTypeLogicalAnd,
		backends.OpTypeLogicalOr,
		backends.OpTypeShiftLeft,
		backends.OpTypeShiftRightArithmetic,
		backends.OpTypeShiftRightLogical,
	)

	// ComparisonOperations include all operations that take two inputs and return booleans with the results of
	// a comparison.
	ComparisonOperations = types.SetWith(
		backends.OpTypeEqual,
		backends.OpTypeNotEqual,
		backends.OpTypeGreaterOrEqual,
		backends.OpTypeGreaterThan,
		backends.OpTypeLessOrEqual,
		backends.OpTypeLessThan,
	)

	// StandardUnaryOperations include all operations that have a single operand as input, and the return shape is the
	// same as the input (dtype may change).
	StandardUnaryOperations = types.SetWith(
		backends.OpTypeAbs,
		backends.OpTypeNeg,
		backends.OpTypeSign,
		backends.OpTypeErf,
		backends.OpTypeExp,
		backends.OpTypeExpm1,
		backends.OpTypeLog,
		backends.OpTypeLog1p,
		backends.OpTypeLogistic,
		backends.OpTypeSqrt,
		backends.OpTypeTanh,
		backends.OpTypeIsFinite,
		backends.OpTypeLogicalNot,
		backends.OpTypeBitwiseNot,
		backends.OpTypeImag,
		backends.OpTypeReal,
	)
)

// BinaryOp returns the expected output shape for ops in the StandardBinaryOperations set.
//
// It excludes the comparison operations, see ComparisonOp for those.
func BinaryOp(opType backends.OpType, lhsShape, rhsShape shapes.Shape) (output shapes.Shape, err error) {
	if !StandardBinaryOperations.Has(opType) {
		err = errors.Errorf("op %s is not in the StandardBinaryOperations set, cannot process it with BinaryOp", opType)
		return
	}
	err = binaryOpCheckDType(opType, lhsShape, rhsShape)
	if err != nil {
		return
	}
	return binaryOpImpl(opType, lhsShape, rhsShape)
}

func binaryOpCheckDType(opType backends.OpType, lhsShape, rhsShape shapes.Shape) error {
	if lhsShape.DType != rhsShape.DType {
		return errors.Errorf("op %s must have the same dtype for both operands, got %s and %s",
			opType, lhsShape, rhsShape)
	}
	dtype := lhsShape.DType
	switch {
	case BooleanOperations.Has(opType) && dtype != dtypes.Bool:
		return errors.Errorf("op %s only accepts booleans, got %s", opType, lhsShape)
	case BitwiseOperations.Has(opType) && !dtype.IsInt():
		return errors.Errorf("op %s only accepts integers, got %s", opType, lhsShape)
	case FloatOperations.Has(opType) && !dtype.IsFloat():
		return errors.Errorf("op %s only accepts floats, got %s", opType, lhsShape)
	case FloatOrComplexOperations.Has(opType) && !dtype.IsFloat() && !dtype.IsComplex():
		return errors.Errorf("op %s only accepts floats or complex numbers, got %s", opType, lhsShape)
	case NumberOperations.Has(opType) && !(dtype.IsInt() || dtype.IsFloat() || dtype.IsComplex()):
		return errors.Errorf("op %s only accepts numbers, got %s", opType, lhsShape)
	}
	return nil
}

func binaryOpImpl(opType backends.OpType, lhsShape, rhsShape shapes.Shape) (output shapes.Shape, err error) {
	// Trivial cases: if one of the sides is a scalar, the output shape is the other side.
	if lhsShape.IsScalar() {
		return rhsShape.Clone(), nil
	}
	if rhsShape.IsScalar() {
		return lhsShape.Clone(), nil
	}
	if lhsShape.Rank() != rhsShape.Rank() {
		err = errors.Errorf("op %s operands must have the same rank or one of them must be a scalar, got %s and %s",
			opType, lhsShape, rhsShape)
		return
	}

	// Other cases, either the dimensions match or one of them is 1, in which case it is broadcast to the other.
	output = lhsShape.Clone()
	for axis := range output.Rank() {
		lhsDim := lhsShape.Dimensions[axis]
		rhsDim := rhsShape.Dimensions[axis]
		if lhsDim != 1 && rhsDim != 1 && lhsDim != rhsDim {
			err = errors.Errorf(
				"op %s dimension of axis #%d doesn't match and cannot be broadcast, got %s and %s",
				opType, axis, lhsShape, rhsShape)
			return
		}
		output.Dimensions[axis] = max(lhsDim, rhsDim)
	}
	return
}

// ComparisonOp returns the broadcast shape with dtype set to Bool, for comparison operations
// (Equal, LessThan, GreaterOrEqual, etc.)
func ComparisonOp(opType backends.OpType, lhsShape, rhsShape shapes.Shape) (output shapes.Shape, err error) {
	if !ComparisonOperations.Has(opType) {
		err = errors.Errorf("op %s is not in the ComparisonOperations set, cannot process it with ComparisonOp", opType)
		return
	}
	if lhsShape.DType != rhsShape.DType {
		err = errors.Errorf("op %s must have the same dtype for both operands, got %s and %s",
			opType, lhsShape, rhsShape)
		return
	}
	output, err = binaryOpImpl(opType, lhsShape, rhsShape)
	if err != nil {
		return
	}
	output.DType = dtypes.Bool
	return
}

// UnaryOp checks the validity of the input shape and returns the output shape of ops in the
// StandardUnaryOperations set.
func UnaryOp(opType backends.OpType, operand shapes.Shape) (output shapes.Shape, err error) {
	if !StandardUnaryOperations.Has(opType) {
		err = errors.Errorf("op %s is not in the StandardUnaryOperations set, cannot process it with UnaryOp", opType)
		return
	}
	dtype := operand.DType
	switch {
	case BooleanOperations.Has(opType) && dtype != dtypes.Bool:
		err = errors.Errorf("op %s only accepts booleans, got %s", opType, operand)
		return
	case BitwiseOperations.Has(opType) && !dtype.IsInt():
		err = errors.Errorf("op %s only accepts integers, got %s", opType, operand)
		return
	case FloatOperations.Has(opType) && !dtype.IsFloat():
		err = errors.Errorf("op %s only accepts floats, got %s", opType, operand)
		return
	case FloatOrComplexOperations.Has(opType) && !dtype.IsFloat() && !dtype.IsComplex():
		err = errors.Errorf("op %s only accepts floats or complex numbers, got %s", opType, operand)
		return
	case ComplexOperations.Has(opType) && !dtype.IsComplex():
		err = errors.Errorf("op %s only accepts complex numbers, got %s", opType, operand)
		return
	case opType == backends.OpTypeSign && (dtype == dtypes.Bool || dtype.IsUnsigned()):
		err = errors.Errorf("op %s is not defined for boolean or unsigned dtypes, got %s", opType, operand)
		return
	}

	output = operand.Clone()
	switch opType {
	case backends.OpTypeIsFinite:
		output.DType = dtypes.Bool
	case backends.OpTypeImag, backends.OpTypeReal:
		output.DType = dtype.RealDType()
	case backends.OpTypeAbs:
		if dtype.IsComplex() {
			output.DType = dtype.RealDType()
		}
	}
	return
}

// WhereOp returns the shape resulting from the Where operation.
//
// The condition must be a boolean. onTrue and onFalse must have the same dtype; either
// may be a scalar, broadcast to the other's dimensions, and the condition may be a scalar
// or match those dimensions.
func WhereOp(condition, onTrue, onFalse shapes.Shape) (output shapes.Shape, err error) {
	if condition.DType != dtypes.Bool {
		err = errors.Errorf("Where() requires condition to be a boolean, got %s", condition)
		return
	}
	if onTrue.DType != onFalse.DType {
		err = errors.Errorf("Where() requires onTrue (%s) and onFalse (%s) to have the same dtype",
			onTrue, onFalse)
		return
	}
	output = onTrue
	if output.IsScalar() {
		output = onFalse
	}
	if output.IsScalar() && !condition.IsScalar() {
		output = condition.Clone()
		output.DType = onTrue.DType
	}
	if !onTrue.IsScalar() && !onTrue.EqualDimensions(output) {
		err = errors.Errorf("Where() requires onTrue (%s) to either be a scalar or match the output dimensions (%s)",
			onTrue, output)
		return
	}
	if !onFalse.IsScalar() && !onFalse.EqualDimensions(output) {
		err = errors.Errorf("Where() requires onFalse (%s) to either be a scalar or match the output dimensions (%s)",
			onFalse, output)
		return
	}
	if !condition.IsScalar() && !condition.EqualDimensions(output) {
		err = errors.Errorf("Where() requires condition (%s) to either be a scalar or match the output dimensions (%s)",
			condition, output)
		return
	}
	output = output.Clone()
	return
}

// ConvertDTypeOp returns the shape of the ConvertDType operation.
func ConvertDTypeOp(operand shapes.Shape, dtype dtypes.DType) (output shapes.Shape, err error) {
	if dtype == dtypes.InvalidDType {
		err = errors.Errorf("ConvertDType() to an invalid dtype, from %s", operand)
		return
	}
	output = operand.Clone()
	output.DType = dtype
	return
}

// ComplexOp returns the shape of the Complex operation, combining a real and an imaginary part.
func ComplexOp(re, im shapes.Shape) (output shapes.Shape, err error) {
	if re.DType != im.DType {
		err = errors.Errorf("Complex() requires both operands to have the same dtype, got %s and %s", re, im)
		return
	}
	if !re.EqualDimensions(im) {
		err = errors.Errorf("Complex() requires both operands to have the same dimensions, got %s and %s", re, im)
		return
	}
	output = re.Clone()
	switch re.DType {
	case dtypes.Float32:
		output.DType = dtypes.Complex64
	case dtypes.Float64:
		output.DType = dtypes.Complex128
	default:
		err = errors.Errorf("Complex() requires operands to be Float32 or Float64, got %s", re)
	}
	return
}

// BroadcastInDimOp checks the arguments and returns the output shape (a clone of outputShape)
// for a BroadcastInDim operation.
func BroadcastInDimOp(operand, outputShape shapes.Shape, broadcastAxes []int) (output shapes.Shape, err error) {
	if operand.DType != outputShape.DType {
		err = errors.Errorf("BroadcastInDim() operand (%s) and output (%s) must have the same dtype",
			operand, outputShape)
		return
	}
	if len(broadcastAxes) != operand.Rank() {
		err = errors.Errorf("BroadcastInDim() requires one broadcastAxes element per axis of the operand (%s), got %v",
			operand, broadcastAxes)
		return
	}
	for operandAxis, outputAxis := range broadcastAxes {
		if outputAxis < 0 || outputAxis >= outputShape.Rank() {
			err = errors.Errorf("BroadcastInDim() broadcastAxes[%d]=%d out-of-bounds for output shape %s",
				operandAxis, outputAxis, outputShape)
			return
		}
		operandDim := operand.Dimensions[operandAxis]
		if operandDim != 1 && operandDim != outputShape.Dimensions[outputAxis] {
			err = errors.Errorf(
				"BroadcastInDim() operand (%s) axis #%d must either be 1 or match the output (%s) axis #%d",
				operand, operandAxis, outputShape, outputAxis)
			return
		}
	}
	output = outputShape.Clone()
	return
}

// ReshapeOp checks only the size of the output, since the reshape is simply a reinterpretation
// of the flat data with different dimensions.
func ReshapeOp(operand shapes.Shape, dims []int) (output shapes.Shape, err error) {
	output = shapes.Make(operand.DType, dims...)
	if output.Size() != operand.Size() {
		err = errors.Errorf("Reshape() from %s to dimensions %v would change the total size from %d to %d",
			operand, dims, operand.Size(), output.Size())
		return
	}
	return
}

// RNGBitGeneratorOp checks the state shape and returns the shapes of the new state and generated values.
func RNGBitGeneratorOp(state, valuesShape shapes.Shape) (newState, values shapes.Shape, err error) {
	if !state.Equal(backends.RNGStateShape) {
		err = errors.Errorf("RNGBitGenerator() state must be shaped %s, got %s", backends.RNGStateShape, state)
		return
	}
	if !valuesShape.DType.IsInt() {
		err = errors.Errorf("RNGBitGenerator() generates random bits for integer dtypes only, got %s", valuesShape)
		return
	}
	return state.Clone(), valuesShape.Clone(), nil
}
