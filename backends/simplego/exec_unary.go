package simplego

import (
	"math"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

func init() {
	setNodeExecutor(backends.OpTypeIdentity, execIdentity)
	setNodeExecutor(backends.OpTypeNeg, execNeg)
	setNodeExecutor(backends.OpTypeAbs, execAbs)
	setNodeExecutor(backends.OpTypeSign, execSign)
	setNodeExecutor(backends.OpTypeBitwiseNot, execBitwiseNot)
	setNodeExecutor(backends.OpTypeLogicalNot, execLogicalNot)
	setNodeExecutor(backends.OpTypeIsFinite, execIsFinite)

	setNodeExecutor(backends.OpTypeErf, makeFloatUnaryExecutor(math.Erf))
	setNodeExecutor(backends.OpTypeExp, makeFloatUnaryExecutor(math.Exp))
	setNodeExecutor(backends.OpTypeExpm1, makeFloatUnaryExecutor(math.Expm1))
	setNodeExecutor(backends.OpTypeLog, makeFloatUnaryExecutor(math.Log))
	setNodeExecutor(backends.OpTypeLog1p, makeFloatUnaryExecutor(math.Log1p))
	setNodeExecutor(backends.OpTypeSqrt, makeFloatUnaryExecutor(math.Sqrt))
	setNodeExecutor(backends.OpTypeTanh, makeFloatUnaryExecutor(math.Tanh))
	setNodeExecutor(backends.OpTypeLogistic, makeFloatUnaryExecutor(func(x float64) float64 {
		return 1.0 / (1.0 + math.Exp(-x))
	}))
}

// unaryOperandAndOutput returns the operand buffer and the output buffer for a unary op:
// the operand buffer is reused as the output whenever it is owned and the shapes match.
func unaryOperandAndOutput(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (operand, output *Buffer) {
	operand = inputs[0]
	if inputsOwned[0] && operand.shape.Equal(node.shape) {
		output = operand
		return
	}
	output = backend.getBufferForShape(node.shape)
	return
}

func execIdentity(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	if inputsOwned[0] {
		return inputs[0], nil
	}
	return backend.cloneBuffer(inputs[0]), nil
}

// makeFloatUnaryExecutor returns an executor that applies fn element-wise, for float operands.
func makeFloatUnaryExecutor(fn func(float64) float64) nodeExecutor {
	return func(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
		operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
		switch operand.shape.DType {
		case dtypes.Float32:
			operandFlat := operand.flat.([]float32)
			outputFlat := output.flat.([]float32)
			for idx, value := range operandFlat {
				outputFlat[idx] = float32(fn(float64(value)))
			}
		case dtypes.Float64:
			operandFlat := operand.flat.([]float64)
			outputFlat := output.flat.([]float64)
			for idx, value := range operandFlat {
				outputFlat[idx] = fn(value)
			}
		default:
			return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
				operand.shape.DType, node.opType, BackendName)
		}
		return output, nil
	}
}

func execUnaryGeneric[T PODNumericConstraints](operand, output *Buffer, fn func(T) T) {
	operandFlat := operand.flat.([]T)
	outputFlat := output.flat.([]T)
	for idx, value := range operandFlat {
		outputFlat[idx] = fn(value)
	}
}

func execNeg(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
	switch operand.shape.DType {
	case dtypes.Float32:
		execUnaryGeneric(operand, output, func(v float32) float32 { return -v })
	case dtypes.Float64:
		execUnaryGeneric(operand, output, func(v float64) float64 { return -v })
	case dtypes.Int8:
		execUnaryGeneric(operand, output, func(v int8) int8 { return -v })
	case dtypes.Int16:
		execUnaryGeneric(operand, output, func(v int16) int16 { return -v })
	case dtypes.Int32:
		execUnaryGeneric(operand, output, func(v int32) int32 { return -v })
	case dtypes.Int64:
		execUnaryGeneric(operand, output, func(v int64) int64 { return -v })
	case dtypes.Uint8:
		execUnaryGeneric(operand, output, func(v uint8) uint8 { return -v })
	case dtypes.Uint16:
		execUnaryGeneric(operand, output, func(v uint16) uint16 { return -v })
	case dtypes.Uint32:
		execUnaryGeneric(operand, output, func(v uint32) uint32 { return -v })
	case dtypes.Uint64:
		execUnaryGeneric(operand, output, func(v uint64) uint64 { return -v })
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	return output, nil
}

func absSigned[T PODSignedConstraints](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func execAbs(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
	switch operand.shape.DType {
	case dtypes.Float32:
		execUnaryGeneric(operand, output, func(v float32) float32 { return float32(math.Abs(float64(v))) })
	case dtypes.Float64:
		execUnaryGeneric(operand, output, math.Abs)
	case dtypes.Int8:
		execUnaryGeneric(operand, output, absSigned[int8])
	case dtypes.Int16:
		execUnaryGeneric(operand, output, absSigned[int16])
	case dtypes.Int32:
		execUnaryGeneric(operand, output, absSigned[int32])
	case dtypes.Int64:
		execUnaryGeneric(operand, output, absSigned[int64])
	// Unsigned: Abs is the identity.
	case dtypes.Uint8:
		execUnaryGeneric(operand, output, func(v uint8) uint8 { return v })
	case dtypes.Uint16:
		execUnaryGeneric(operand, output, func(v uint16) uint16 { return v })
	case dtypes.Uint32:
		execUnaryGeneric(operand, output, func(v uint32) uint32 { return v })
	case dtypes.Uint64:
		execUnaryGeneric(operand, output, func(v uint64) uint64 { return v })
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	return output, nil
}

func signFloat[T PODFloatConstraints](v T) T {
	if math.IsNaN(float64(v)) {
		return v
	}
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return v // Keeps +/-0.
}

func signInt[T PODSignedConstraints](v T) T {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func execSign(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
	switch operand.shape.DType {
	case dtypes.Float32:
		execUnaryGeneric(operand, output, signFloat[float32])
	case dtypes.Float64:
		execUnaryGeneric(operand, output, signFloat[float64])
	case dtypes.Int8:
		execUnaryGeneric(operand, output, signInt[int8])
	case dtypes.Int16:
		execUnaryGeneric(operand, output, signInt[int16])
	case dtypes.Int32:
		execUnaryGeneric(operand, output, signInt[int32])
	case dtypes.Int64:
		execUnaryGeneric(operand, output, signInt[int64])
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	return output, nil
}

func execBitwiseNot(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
	switch operand.shape.DType {
	case dtypes.Int8:
		execUnaryGeneric(operand, output, func(v int8) int8 { return ^v })
	case dtypes.Int16:
		execUnaryGeneric(operand, output, func(v int16) int16 { return ^v })
	case dtypes.Int32:
		execUnaryGeneric(operand, output, func(v int32) int32 { return ^v })
	case dtypes.Int64:
		execUnaryGeneric(operand, output, func(v int64) int64 { return ^v })
	case dtypes.Uint8:
		execUnaryGeneric(operand, output, func(v uint8) uint8 { return ^v })
	case dtypes.Uint16:
		execUnaryGeneric(operand, output, func(v uint16) uint16 { return ^v })
	case dtypes.Uint32:
		execUnaryGeneric(operand, output, func(v uint32) uint32 { return ^v })
	case dtypes.Uint64:
		execUnaryGeneric(operand, output, func(v uint64) uint64 { return ^v })
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	return output, nil
}

func execLogicalNot(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand, output := unaryOperandAndOutput(backend, node, inputs, inputsOwned)
	if operand.shape.DType != dtypes.Bool {
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	operandFlat := operand.flat.([]bool)
	outputFlat := output.flat.([]bool)
	for idx, value := range operandFlat {
		outputFlat[idx] = !value
	}
	return output, nil
}

func execIsFinite(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand := inputs[0]
	output := backend.getBufferForShape(node.shape)
	outputFlat := output.flat.([]bool)
	switch operand.shape.DType {
	case dtypes.Float32:
		operandFlat := operand.flat.([]float32)
		for idx, value := range operandFlat {
			v := float64(value)
			outputFlat[idx] = !math.IsNaN(v) && !math.IsInf(v, 0)
		}
	case dtypes.Float64:
		operandFlat := operand.flat.([]float64)
		for idx, value := range operandFlat {
			outputFlat[idx] = !math.IsNaN(value) && !math.IsInf(value, 0)
		}
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			operand.shape.DType, node.opType, BackendName)
	}
	return output, nil
}
