package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

func init() {
	setNodeExecutor(backends.OpTypeWhere, execWhere)
	setNodeExecutor(backends.OpTypeBroadcastInDim, execBroadcastInDim)
	setNodeExecutor(backends.OpTypeReshape, execReshape)
}

func execReshape(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	// A reshape is simply a reinterpretation of the same flat data.
	operand := inputs[0]
	var output *Buffer
	if inputsOwned[0] {
		output = operand
	} else {
		output = backend.cloneBuffer(operand)
	}
	output.shape = node.shape.Clone()
	return output, nil
}

func execWhereGeneric[T SupportedTypesConstraints](cond, onTrue, onFalse, output *Buffer) {
	condFlat := cond.flat.([]bool)
	onTrueFlat := onTrue.flat.([]T)
	onFalseFlat := onFalse.flat.([]T)
	outputFlat := output.flat.([]T)

	condStrides := broadcastStrides(cond.shape, output.shape)
	onTrueStrides := broadcastStrides(onTrue.shape, output.shape)
	onFalseStrides := broadcastStrides(onFalse.shape, output.shape)
	dims := output.shape.Dimensions
	index := make([]int, len(dims))
	condIdx, onTrueIdx, onFalseIdx := 0, 0, 0
	for outIdx := range outputFlat {
		if condFlat[condIdx] {
			outputFlat[outIdx] = onTrueFlat[onTrueIdx]
		} else {
			outputFlat[outIdx] = onFalseFlat[onFalseIdx]
		}
		for axis := len(dims) - 1; axis >= 0; axis-- {
			index[axis]++
			condIdx += condStrides[axis]
			onTrueIdx += onTrueStrides[axis]
			onFalseIdx += onFalseStrides[axis]
			if index[axis] < dims[axis] {
				break
			}
			index[axis] = 0
			condIdx -= dims[axis] * condStrides[axis]
			onTrueIdx -= dims[axis] * onTrueStrides[axis]
			onFalseIdx -= dims[axis] * onFalseStrides[axis]
		}
	}
}

func execWhere(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	cond, onTrue, onFalse := inputs[0], inputs[1], inputs[2]
	var output *Buffer
	if inputsOwned[1] && onTrue.shape.Equal(node.shape) {
		output = onTrue
	} else if inputsOwned[2] && onFalse.shape.Equal(node.shape) {
		output = onFalse
	} else {
		output = backend.getBufferForShape(node.shape)
	}
	switch node.shape.DType {
	case dtypes.Bool:
		execWhereGeneric[bool](cond, onTrue, onFalse, output)
	case dtypes.Float32:
		execWhereGeneric[float32](cond, onTrue, onFalse, output)
	case dtypes.Float64:
		execWhereGeneric[float64](cond, onTrue, onFalse, output)
	case dtypes.Int8:
		execWhereGeneric[int8](cond, onTrue, onFalse, output)
	case dtypes.Int16:
		execWhereGeneric[int16](cond, onTrue, onFalse, output)
	case dtypes.Int32:
		execWhereGeneric[int32](cond, onTrue, onFalse, output)
	case dtypes.Int64:
		execWhereGeneric[int64](cond, onTrue, onFalse, output)
	case dtypes.Uint8:
		execWhereGeneric[uint8](cond, onTrue, onFalse, output)
	case dtypes.Uint16:
		execWhereGeneric[uint16](cond, onTrue, onFalse, output)
	case dtypes.Uint32:
		execWhereGeneric[uint32](cond, onTrue, onFalse, output)
	case dtypes.Uint64:
		execWhereGeneric[uint64](cond, onTrue, onFalse, output)
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			node.shape.DType, node.opType, BackendName)
	}
	return output, nil
}

func execBroadcastInDimGeneric[T SupportedTypesConstraints](operand, output *Buffer, strides []int) {
	operandFlat := operand.flat.([]T)
	outputFlat := output.flat.([]T)
	dims := output.shape.Dimensions
	index := make([]int, len(dims))
	operandIdx := 0
	for outIdx := range outputFlat {
		outputFlat[outIdx] = operandFlat[operandIdx]
		for axis := len(dims) - 1; axis >= 0; axis-- {
			index[axis]++
			operandIdx += strides[axis]
			if index[axis] < dims[axis] {
				break
			}
			index[axis] = 0
			operandIdx -= dims[axis] * strides[axis]
		}
	}
}

func execBroadcastInDim(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	operand := inputs[0]
	broadcastAxes := node.data.([]int)
	output := backend.getBufferForShape(node.shape)

	// Project the operand's strides on the output axes: 0 for the new and expanded axes.
	strides := make([]int, node.shape.Rank())
	stride := 1
	for operandAxis := operand.shape.Rank() - 1; operandAxis >= 0; operandAxis-- {
		operandDim := operand.shape.Dimensions[operandAxis]
		if operandDim != 1 {
			strides[broadcastAxes[operandAxis]] = stride
		}
		stride *= operandDim
	}

	switch node.shape.DType {
	case dtypes.Bool:
		execBroadcastInDimGeneric[bool](operand, output, strides)
	case dtypes.Float32:
		execBroadcastInDimGeneric[float32](operand, output, strides)
	case dtypes.Float64:
		execBroadcastInDimGeneric[float64](operand, output, strides)
	case dtypes.Int8:
		execBroadcastInDimGeneric[int8](operand, output, strides)
	case dtypes.Int16:
		execBroadcastInDimGeneric[int16](operand, output, strides)
	case dtypes.Int32:
		execBroadcastInDimGeneric[int32](operand, output, strides)
	case dtypes.Int64:
		execBroadcastInDimGeneric[int64](operand, output, strides)
	case dtypes.Uint8:
		execBroadcastInDimGeneric[uint8](operand, output, strides)
	case dtypes.Uint16:
		execBroadcastInDimGeneric[uint16](operand, output, strides)
	case dtypes.Uint32:
		execBroadcastInDimGeneric[uint32](operand, output, strides)
	case dtypes.Uint64:
		execBroadcastInDimGeneric[uint64](operand, output, strides)
	default:
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			node.shape.DType, node.opType, BackendName)
	}
	return output, nil
}
