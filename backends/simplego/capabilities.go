package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/gopjrt/dtypes"
)

// Capabilities of the SimpleGo backend: the operations in backends.StandardOps, on every
// POD dtype except complex numbers.
//
// Float16 and BFloat16 are storage dtypes: they are supported by parameters, constants
// and ConvertDType, but not by the arithmetic operations.
var Capabilities = backends.Capabilities{
	Operations: map[backends.OpType]bool{
		backends.OpTypeParameter:       true,
		backends.OpTypeConstant:        true,
		backends.OpTypeIdentity:        true,
		backends.OpTypeRNGBitGenerator: true,

		backends.OpTypeAbs:                  true,
		backends.OpTypeAdd:                  true,
		backends.OpTypeBitwiseAnd:           true,
		backends.OpTypeBitwiseNot:           true,
		backends.OpTypeBitwiseOr:            true,
		backends.OpTypeBitwiseXor:           true,
		backends.OpTypeBroadcastInDim:       true,
		backends.OpTypeConvertDType:         true,
		backends.OpTypeDiv:                  true,
		backends.OpTypeEqual:                true,
		backends.OpTypeErf:                  true,
		backends.OpTypeExp:                  true,
		backends.OpTypeExpm1:                true,
		backends.OpTypeGreaterOrEqual:       true,
		backends.OpTypeGreaterThan:          true,
		backends.OpTypeIsFinite:             true,
		backends.OpTypeLessOrEqual:          true,
		backends.OpTypeLessThan:             true,
		backends.OpTypeLog:                  true,
		backends.OpTypeLog1p:                true,
		backends.OpTypeLogicalAnd:           true,
		backends.OpTypeLogicalNot:           true,
		backends.OpTypeLogicalOr:            true,
		backends.OpTypeLogistic:             true,
		backends.OpTypeMax:                  true,
		backends.OpTypeMin:                  true,
		backends.OpTypeMul:                  true,
		backends.OpTypeNeg:                  true,
		backends.OpTypeNotEqual:             true,
		backends.OpTypePow:                  true,
		backends.OpTypeReshape:              true,
		backends.OpTypeShiftLeft:            true,
		backends.OpTypeShiftRightArithmetic: true,
		backends.OpTypeShiftRightLogical:    true,
		backends.OpTypeSign:                 true,
		backends.OpTypeSqrt:                 true,
		backends.OpTypeSub:                  true,
		backends.OpTypeTanh:                 true,
		backends.OpTypeWhere:                true,
	},
	DTypes: map[dtypes.DType]bool{
		dtypes.Bool:     true,
		dtypes.Int8:     true,
		dtypes.Int16:    true,
		dtypes.Int32:    true,
		dtypes.Int64:    true,
		dtypes.Uint8:    true,
		dtypes.Uint16:   true,
		dtypes.Uint32:   true,
		dtypes.Uint64:   true,
		dtypes.Float16:  true,
		dtypes.BFloat16: true,
		dtypes.Float32:  true,
		dtypes.Float64:  true,
	},
}
