package backends

// OpType is an enum of all generic operations that can be supported by a Backend.Builder.
//
// Notice: nothing precludes a specialized backend Builder to support other ops not included here.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota
	OpTypeParameter
	OpTypeConstant
	OpTypeIdentity
	OpTypeRNGBitGenerator

	OpTypeAbs
	OpTypeAdd
	OpTypeBitwiseAnd
	OpTypeBitwiseNot
	OpTypeBitwiseOr
	OpTypeBitwiseXor
	OpTypeBroadcastInDim
	OpTypeComplex
	OpTypeConvertDType
	OpTypeDiv
	OpTypeEqual
	OpTypeErf
	OpTypeExp
	OpTypeExpm1
	OpTypeGreaterOrEqual
	OpTypeGreaterThan
	OpTypeImag
	OpTypeIsFinite
	OpTypeLessOrEqual
	OpTypeLessThan
	OpTypeLog
	OpTypeLog1p
	OpTypeLogicalAnd
	OpTypeLogicalNot
	OpTypeLogicalOr
	OpTypeLogistic
	OpTypeMax
	OpTypeMin
	OpTypeMul
	OpTypeNeg
	OpTypeNotEqual
	OpTypePow
	OpTypeReal
	OpTypeReshape
	OpTypeShiftLeft
	OpTypeShiftRightArithmetic
	OpTypeShiftRightLogical
	OpTypeSign
	OpTypeSqrt
	OpTypeSub
	OpTypeTanh
	OpTypeWhere

	// OpTypeLast is a marker, and not a real operation.
	OpTypeLast
)
