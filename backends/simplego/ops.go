package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/backends/shapeinference"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// This file implements the backends.StandardOps methods of the Builder. The standard
// unary, binary and comparison ops delegate to the add*Op methods in builder.go; ops
// with extra static arguments get their own implementation.

func (b *Builder) Abs(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeAbs, x)
}

func (b *Builder) Add(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeAdd, lhs, rhs)
}

func (b *Builder) BitwiseAnd(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeBitwiseAnd, lhs, rhs)
}

func (b *Builder) BitwiseNot(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeBitwiseNot, x)
}

func (b *Builder) BitwiseOr(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeBitwiseOr, lhs, rhs)
}

func (b *Builder) BitwiseXor(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeBitwiseXor, lhs, rhs)
}

func (b *Builder) BroadcastInDim(x backends.Op, outputShape shapes.Shape, broadcastAxes []int) (backends.Op, error) {
	nodes, err := b.checkOps(backends.OpTypeBroadcastInDim.String(), x)
	if err != nil {
		return nil, err
	}
	shape, err := shapeinference.BroadcastInDimOp(nodes[0].shape, outputShape, broadcastAxes)
	if err != nil {
		return nil, err
	}
	node := b.newNode(backends.OpTypeBroadcastInDim, shape, nodes[0])
	node.data = append([]int(nil), broadcastAxes...)
	return node, nil
}

// Complex is not implemented: simplego doesn't support complex dtypes.
func (b *Builder) Complex(re, im backends.Op) (backends.Op, error) {
	return nil, errors.Errorf("%s: backend %s does not support complex dtypes", backends.OpTypeComplex, BackendName)
}

func (b *Builder) ConvertDType(x backends.Op, dtype dtypes.DType) (backends.Op, error) {
	nodes, err := b.checkOps(backends.OpTypeConvertDType.String(), x)
	if err != nil {
		return nil, err
	}
	if err := b.checkDType(backends.OpTypeConvertDType.String(), dtype); err != nil {
		return nil, err
	}
	if nodes[0].shape.DType == dtype {
		return nodes[0], nil
	}
	shape, err := shapeinference.ConvertDTypeOp(nodes[0].shape, dtype)
	if err != nil {
		return nil, err
	}
	return b.newNode(backends.OpTypeConvertDType, shape, nodes[0]), nil
}

func (b *Builder) Div(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeDiv, lhs, rhs)
}

func (b *Builder) Equal(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeEqual, lhs, rhs)
}

func (b *Builder) Erf(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeErf, x)
}

func (b *Builder) Exp(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeExp, x)
}

func (b *Builder) Expm1(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeExpm1, x)
}

func (b *Builder) GreaterOrEqual(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeGreaterOrEqual, lhs, rhs)
}

func (b *Builder) GreaterThan(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeGreaterThan, lhs, rhs)
}

// Imag is not implemented: simplego doesn't support complex dtypes.
func (b *Builder) Imag(x backends.Op) (backends.Op, error) {
	return nil, errors.Errorf("%s: backend %s does not support complex dtypes", backends.OpTypeImag, BackendName)
}

func (b *Builder) IsFinite(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeIsFinite, x)
}

func (b *Builder) LessOrEqual(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeLessOrEqual, lhs, rhs)
}

func (b *Builder) LessThan(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeLessThan, lhs, rhs)
}

func (b *Builder) Log(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeLog, x)
}

func (b *Builder) Log1p(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeLog1p, x)
}

func (b *Builder) LogicalAnd(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeLogicalAnd, lhs, rhs)
}

func (b *Builder) LogicalNot(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeLogicalNot, x)
}

func (b *Builder) LogicalOr(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeLogicalOr, lhs, rhs)
}

func (b *Builder) Logistic(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeLogistic, x)
}

func (b *Builder) Max(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeMax, lhs, rhs)
}

func (b *Builder) Min(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeMin, lhs, rhs)
}

func (b *Builder) Mul(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeMul, lhs, rhs)
}

func (b *Builder) Neg(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeNeg, x)
}

func (b *Builder) NotEqual(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addComparisonOp(backends.OpTypeNotEqual, lhs, rhs)
}

func (b *Builder) Pow(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypePow, lhs, rhs)
}

// Real is not implemented: simplego doesn't support complex dtypes.
func (b *Builder) Real(x backends.Op) (backends.Op, error) {
	return nil, errors.Errorf("%s: backend %s does not support complex dtypes", backends.OpTypeReal, BackendName)
}

func (b *Builder) Reshape(x backends.Op, dimensions ...int) (backends.Op, error) {
	nodes, err := b.checkOps(backends.OpTypeReshape.String(), x)
	if err != nil {
		return nil, err
	}
	shape, err := shapeinference.ReshapeOp(nodes[0].shape, dimensions)
	if err != nil {
		return nil, err
	}
	return b.newNode(backends.OpTypeReshape, shape, nodes[0]), nil
}

// rngRole tells apart the two outputs of an RNGBitGenerator call: both are modeled as
// separate nodes taking the same state as input.
type rngRole int

const (
	rngRoleState rngRole = iota
	rngRoleValues
)

func (b *Builder) RNGBitGenerator(state backends.Op, shape shapes.Shape) (newState, values backends.Op, err error) {
	nodes, err := b.checkOps(backends.OpTypeRNGBitGenerator.String(), state)
	if err != nil {
		return nil, nil, err
	}
	newStateShape, valuesShape, err := shapeinference.RNGBitGeneratorOp(nodes[0].shape, shape)
	if err != nil {
		return nil, nil, err
	}
	if err := b.checkDType(backends.OpTypeRNGBitGenerator.String(), valuesShape.DType); err != nil {
		return nil, nil, err
	}
	newStateNode := b.newNode(backends.OpTypeRNGBitGenerator, newStateShape, nodes[0])
	newStateNode.data = rngRoleState
	valuesNode := b.newNode(backends.OpTypeRNGBitGenerator, valuesShape, nodes[0])
	valuesNode.data = rngRoleValues
	return newStateNode, valuesNode, nil
}

func (b *Builder) ShiftLeft(x, n backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeShiftLeft, x, n)
}

func (b *Builder) ShiftRightArithmetic(x, n backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeShiftRightArithmetic, x, n)
}

func (b *Builder) ShiftRightLogical(x, n backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeShiftRightLogical, x, n)
}

func (b *Builder) Sign(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeSign, x)
}

func (b *Builder) Sqrt(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeSqrt, x)
}

func (b *Builder) Sub(lhs, rhs backends.Op) (backends.Op, error) {
	return b.addBinaryOp(backends.OpTypeSub, lhs, rhs)
}

func (b *Builder) Tanh(x backends.Op) (backends.Op, error) {
	return b.addUnaryOp(backends.OpTypeTanh, x)
}

func (b *Builder) Where(condition, onTrue, onFalse backends.Op) (backends.Op, error) {
	nodes, err := b.checkOps(backends.OpTypeWhere.String(), condition, onTrue, onFalse)
	if err != nil {
		return nil, err
	}
	shape, err := shapeinference.WhereOp(nodes[0].shape, nodes[1].shape, nodes[2].shape)
	if err != nil {
		return nil, err
	}
	return b.newNode(backends.OpTypeWhere, shape, nodes...), nil
}
