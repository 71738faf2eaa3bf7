package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

func init() {
	setNodeExecutor(backends.OpTypeConvertDType, execConvertDType)
}

func execConvertDType(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand := inputs[0]
	// The input buffer is never reused: the element sizes generally differ.
	output := backend.getBufferForShape(node.shape)
	var err error
	switch operand.shape.DType {
	case dtypes.Float32:
		err = execConvertDTypeFrom[float32](operand, output)
	case dtypes.Float64:
		err = execConvertDTypeFrom[float64](operand, output)
	case dtypes.Int8:
		err = execConvertDTypeFrom[int8](operand, output)
	case dtypes.Int16:
		err = execConvertDTypeFrom[int16](operand, output)
	case dtypes.Int32:
		err = execConvertDTypeFrom[int32](operand, output)
	case dtypes.Int64:
		err = execConvertDTypeFrom[int64](operand, output)
	case dtypes.Uint8:
		err = execConvertDTypeFrom[uint8](operand, output)
	case dtypes.Uint16:
		err = execConvertDTypeFrom[uint16](operand, output)
	case dtypes.Uint32:
		err = execConvertDTypeFrom[uint32](operand, output)
	case dtypes.Uint64:
		err = execConvertDTypeFrom[uint64](operand, output)
	case dtypes.Bool:
		err = execConvertDTypeFromBool(operand, output)
	case dtypes.Float16:
		err = execConvertDTypeFromFloat16(operand, output)
	case dtypes.BFloat16:
		err = execConvertDTypeFromBFloat16(operand, output)
	default:
		err = errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	if err != nil {
		backend.putBuffer(output)
		return nil, err
	}
	return output, nil
}

func execConvertDTypeGeneric[FromT, ToT PODNumericConstraints](operand, output *Buffer) {
	operandFlat := operand.flat.([]FromT)
	outputFlat := output.flat.([]ToT)
	for idx, value := range operandFlat {
		outputFlat[idx] = ToT(value)
	}
}

func execConvertDTypeFrom[FromT PODNumericConstraints](operand, output *Buffer) error {
	switch output.shape.DType {
	case dtypes.Float32:
		execConvertDTypeGeneric[FromT, float32](operand, output)
	case dtypes.Float64:
		execConvertDTypeGeneric[FromT, float64](operand, output)
	case dtypes.Int8:
		execConvertDTypeGeneric[FromT, int8](operand, output)
	case dtypes.Int16:
		execConvertDTypeGeneric[FromT, int16](operand, output)
	case dtypes.Int32:
		execConvertDTypeGeneric[FromT, int32](operand, output)
	case dtypes.Int64:
		execConvertDTypeGeneric[FromT, int64](operand, output)
	case dtypes.Uint8:
		execConvertDTypeGeneric[FromT, uint8](operand, output)
	case dtypes.Uint16:
		execConvertDTypeGeneric[FromT, uint16](operand, output)
	case dtypes.Uint32:
		execConvertDTypeGeneric[FromT, uint32](operand, output)
	case dtypes.Uint64:
		execConvertDTypeGeneric[FromT, uint64](operand, output)
	case dtypes.Bool:
		operandFlat := operand.flat.([]FromT)
		outputFlat := output.flat.([]bool)
		for idx, value := range operandFlat {
			outputFlat[idx] = value != 0
		}
	case dtypes.Float16:
		operandFlat := operand.flat.([]FromT)
		outputFlat := output.flat.([]float16.Float16)
		for idx, value := range operandFlat {
			outputFlat[idx] = float16.Fromfloat32(float32(value))
		}
	case dtypes.BFloat16:
		operandFlat := operand.flat.([]FromT)
		outputFlat := output.flat.([]bfloat16.BFloat16)
		for idx, value := range operandFlat {
			outputFlat[idx] = bfloat16.FromFloat32(float32(value))
		}
	default:
		return errors.Errorf("unsupported conversion from %s to %s in backend %s",
			operand.shape.DType, output.shape.DType, BackendName)
	}
	return nil
}

func execConvertDTypeFromBool(operand, output *Buffer) error {
	operandFlat := operand.flat.([]bool)
	asFloat32 := make([]float32, len(operandFlat))
	for idx, value := range operandFlat {
		if value {
			asFloat32[idx] = 1
		}
	}
	intermediary := &Buffer{shape: operand.shape.Clone(), flat: asFloat32, valid: true}
	intermediary.shape.DType = dtypes.Float32
	if output.shape.DType == dtypes.Bool {
		copy(output.flat.([]bool), operandFlat)
		return nil
	}
	return execConvertDTypeFrom[float32](intermediary, output)
}

func execConvertDTypeFromFloat16(operand, output *Buffer) error {
	operandFlat := operand.flat.([]float16.Float16)
	asFloat32 := make([]float32, len(operandFlat))
	for idx, value := range operandFlat {
		asFloat32[idx] = value.Float32()
	}
	intermediary := &Buffer{shape: operand.shape.Clone(), flat: asFloat32, valid: true}
	intermediary.shape.DType = dtypes.Float32
	return execConvertDTypeFrom[float32](intermediary, output)
}

func execConvertDTypeFromBFloat16(operand, output *Buffer) error {
	operandFlat := operand.flat.([]bfloat16.BFloat16)
	asFloat32 := make([]float32, len(operandFlat))
	for idx, value := range operandFlat {
		asFloat32[idx] = value.Float32()
	}
	intermediary := &Buffer{shape: operand.shape.Clone(), flat: asFloat32, valid: true}
	intermediary.shape.DType = dtypes.Float32
	return execConvertDTypeFrom[float32](intermediary, output)
}
