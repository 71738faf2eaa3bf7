package simplego

import (
	"math"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

func init() {
	for _, opType := range []backends.OpType{
		backends.OpTypeAdd, backends.OpTypeSub, backends.OpTypeMul, backends.OpTypeDiv,
		backends.OpTypeMax, backends.OpTypeMin, backends.OpTypePow,
	} {
		setNodeExecutor(opType, execNumericBinary)
	}
	for _, opType := range []backends.OpType{
		backends.OpTypeBitwiseAnd, backends.OpTypeBitwiseOr, backends.OpTypeBitwiseXor,
		backends.OpTypeShiftLeft, backends.OpTypeShiftRightArithmetic, backends.OpTypeShiftRightLogical,
	} {
		setNodeExecutor(opType, execBitwiseBinary)
	}
	setNodeExecutor(backends.OpTypeLogicalAnd, execLogicalBinary)
	setNodeExecutor(backends.OpTypeLogicalOr, execLogicalBinary)
	for _, opType := range []backends.OpType{
		backends.OpTypeEqual, backends.OpTypeNotEqual,
		backends.OpTypeGreaterOrEqual, backends.OpTypeGreaterThan,
		backends.OpTypeLessOrEqual, backends.OpTypeLessThan,
	} {
		setNodeExecutor(opType, execComparison)
	}
}

// broadcastIterator iterates over the flat indices of two operands of a binary op, in the
// order of the output's flat (row-major) indices: axes of dimension 1 (and scalars) are
// broadcast by using a stride of 0.
type broadcastIterator struct {
	dims                   []int
	index                  []int
	lhsStrides, rhsStrides []int
	lhsIdx, rhsIdx         int
}

func newBroadcastIterator(lhs, rhs, output shapes.Shape) *broadcastIterator {
	it := &broadcastIterator{
		dims:       output.Dimensions,
		index:      make([]int, output.Rank()),
		lhsStrides: broadcastStrides(lhs, output),
		rhsStrides: broadcastStrides(rhs, output),
	}
	return it
}

// broadcastStrides returns the operand's strides projected on the output axes: 0 for
// broadcast axes (and for all axes of a scalar operand).
func broadcastStrides(operand, output shapes.Shape) []int {
	strides := make([]int, output.Rank())
	if operand.IsScalar() {
		return strides
	}
	stride := 1
	for axis := output.Rank() - 1; axis >= 0; axis-- {
		if operand.Dimensions[axis] != 1 {
			strides[axis] = stride
			stride *= operand.Dimensions[axis]
		}
	}
	return strides
}

// Next returns the operands' flat indices for the current output position, and moves to the next.
func (it *broadcastIterator) Next() (lhsIdx, rhsIdx int) {
	lhsIdx, rhsIdx = it.lhsIdx, it.rhsIdx
	for axis := len(it.dims) - 1; axis >= 0; axis-- {
		it.index[axis]++
		it.lhsIdx += it.lhsStrides[axis]
		it.rhsIdx += it.rhsStrides[axis]
		if it.index[axis] < it.dims[axis] {
			break
		}
		it.index[axis] = 0
		it.lhsIdx -= it.dims[axis] * it.lhsStrides[axis]
		it.rhsIdx -= it.dims[axis] * it.rhsStrides[axis]
	}
	return
}

// binaryOperandsAndOutput returns the operands and the output buffer for a binary op:
// one of the operand buffers is reused as the output whenever it is owned and its shape
// matches the output's.
func binaryOperandsAndOutput(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (lhs, rhs, output *Buffer) {
	lhs, rhs = inputs[0], inputs[1]
	if inputsOwned[0] && lhs.shape.Equal(node.shape) {
		output = lhs
	} else if inputsOwned[1] && rhs.shape.Equal(node.shape) {
		output = rhs
	} else {
		output = backend.getBufferForShape(node.shape)
	}
	return
}

func execBinaryGeneric[T PODNumericConstraints](lhs, rhs, output *Buffer, fn func(a, b T) T) {
	lhsFlat := lhs.flat.([]T)
	rhsFlat := rhs.flat.([]T)
	outputFlat := output.flat.([]T)
	it := newBroadcastIterator(lhs.shape, rhs.shape, output.shape)
	for outIdx := range outputFlat {
		lhsIdx, rhsIdx := it.Next()
		outputFlat[outIdx] = fn(lhsFlat[lhsIdx], rhsFlat[rhsIdx])
	}
}

// maxGeneric and minGeneric propagate NaN from either operand, like XLA's Max/Min.
// a != a is only ever true for NaN, so the checks are free for integer dtypes.

func maxGeneric[T PODNumericConstraints](a, b T) T {
	if a != a {
		return a
	}
	if b != b {
		return b
	}
	if a > b {
		return a
	}
	return b
}

func minGeneric[T PODNumericConstraints](a, b T) T {
	if a != a {
		return a
	}
	if b != b {
		return b
	}
	if a < b {
		return a
	}
	return b
}

// powGeneric computes lhs^rhs going through float64: exact for floats and for the
// small integer exponents used in practice.
func powGeneric[T PODNumericConstraints](a, b T) T {
	return T(math.Pow(float64(a), float64(b)))
}

func execBinaryForType[T PODNumericConstraints](opType backends.OpType, lhs, rhs, output *Buffer) error {
	var fn func(a, b T) T
	switch opType {
	case backends.OpTypeAdd:
		fn = func(a, b T) T { return a + b }
	case backends.OpTypeSub:
		fn = func(a, b T) T { return a - b }
	case backends.OpTypeMul:
		fn = func(a, b T) T { return a * b }
	case backends.OpTypeDiv:
		fn = func(a, b T) T { return a / b }
	case backends.OpTypeMax:
		fn = maxGeneric[T]
	case backends.OpTypeMin:
		fn = minGeneric[T]
	case backends.OpTypePow:
		fn = powGeneric[T]
	default:
		return errors.Errorf("op %s is not a numeric binary operation", opType)
	}
	execBinaryGeneric(lhs, rhs, output, fn)
	return nil
}

func execNumericBinary(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	lhs, rhs, output := binaryOperandsAndOutput(backend, node, inputs, inputsOwned)
	var err error
	switch node.shape.DType {
	case dtypes.Float32:
		err = execBinaryForType[float32](node.opType, lhs, rhs, output)
	case dtypes.Float64:
		err = execBinaryForType[float64](node.opType, lhs, rhs, output)
	case dtypes.Int8:
		err = execBinaryForType[int8](node.opType, lhs, rhs, output)
	case dtypes.Int16:
		err = execBinaryForType[int16](node.opType, lhs, rhs, output)
	case dtypes.Int32:
		err = execBinaryForType[int32](node.opType, lhs, rhs, output)
	case dtypes.Int64:
		err = execBinaryForType[int64](node.opType, lhs, rhs, output)
	case dtypes.Uint8:
		err = execBinaryForType[uint8](node.opType, lhs, rhs, output)
	case dtypes.Uint16:
		err = execBinaryForType[uint16](node.opType, lhs, rhs, output)
	case dtypes.Uint32:
		err = execBinaryForType[uint32](node.opType, lhs, rhs, output)
	case dtypes.Uint64:
		err = execBinaryForType[uint64](node.opType, lhs, rhs, output)
	default:
		err = errors.Errorf("unsupported dtype %s for op %s in backend %s",
			node.shape.DType, node.opType, BackendName)
	}
	if err != nil {
		return nil, err
	}
	return output, nil
}

func execBitwiseForType[T PODIntegerConstraints](opType backends.OpType, lhs, rhs, output *Buffer, shiftRightLogicalFn, shiftRightArithmeticFn func(a, b T) T) error {
	var fn func(a, b T) T
	switch opType {
	case backends.OpTypeBitwiseAnd:
		fn = func(a, b T) T { return a & b }
	case backends.OpTypeBitwiseOr:
		fn = func(a, b T) T { return a | b }
	case backends.OpTypeBitwiseXor:
		fn = func(a, b T) T { return a ^ b }
	case backends.OpTypeShiftLeft:
		fn = func(a, b T) T { return a << b }
	case backends.OpTypeShiftRightLogical:
		fn = shiftRightLogicalFn
	case backends.OpTypeShiftRightArithmetic:
		fn = shiftRightArithmeticFn
	default:
		return errors.Errorf("op %s is not a bitwise binary operation", opType)
	}
	execBinaryGeneric(lhs, rhs, output, fn)
	return nil
}

func execBitwiseBinary(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	lhs, rhs, output := binaryOperandsAndOutput(backend, node, inputs, inputsOwned)
	var err error
	// The shift right variants differ only on signed dtypes: Go's >> is arithmetic for
	// signed and logical for unsigned, so each gets the correct one via casting.
	switch node.shape.DType {
	case dtypes.Int8:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b int8) int8 { return int8(uint8(a) >> uint8(b)) },
			func(a, b int8) int8 { return a >> b })
	case dtypes.Int16:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b int16) int16 { return int16(uint16(a) >> uint16(b)) },
			func(a, b int16) int16 { return a >> b })
	case dtypes.Int32:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b int32) int32 { return int32(uint32(a) >> uint32(b)) },
			func(a, b int32) int32 { return a >> b })
	case dtypes.Int64:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b int64) int64 { return int64(uint64(a) >> uint64(b)) },
			func(a, b int64) int64 { return a >> b })
	case dtypes.Uint8:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b uint8) uint8 { return a >> b },
			func(a, b uint8) uint8 { return uint8(int8(a) >> b) })
	case dtypes.Uint16:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b uint16) uint16 { return a >> b },
			func(a, b uint16) uint16 { return uint16(int16(a) >> b) })
	case dtypes.Uint32:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b uint32) uint32 { return a >> b },
			func(a, b uint32) uint32 { return uint32(int32(a) >> b) })
	case dtypes.Uint64:
		err = execBitwiseForType(node.opType, lhs, rhs, output,
			func(a, b uint64) uint64 { return a >> b },
			func(a, b uint64) uint64 { return uint64(int64(a) >> b) })
	default:
		err = errors.Errorf("unsupported dtype %s for op %s in backend %s",
			node.shape.DType, node.opType, BackendName)
	}
	if err != nil {
		return nil, err
	}
	return output, nil
}

func execLogicalBinary(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	lhs, rhs, output := binaryOperandsAndOutput(backend, node, inputs, inputsOwned)
	if node.shape.DType != dtypes.Bool {
		return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
			node.shape.DType, node.opType, BackendName)
	}
	lhsFlat := lhs.flat.([]bool)
	rhsFlat := rhs.flat.([]bool)
	outputFlat := output.flat.([]bool)
	isOr := node.opType == backends.OpTypeLogicalOr
	it := newBroadcastIterator(lhs.shape, rhs.shape, output.shape)
	for outIdx := range outputFlat {
		lhsIdx, rhsIdx := it.Next()
		if isOr {
			outputFlat[outIdx] = lhsFlat[lhsIdx] || rhsFlat[rhsIdx]
		} else {
			outputFlat[outIdx] = lhsFlat[lhsIdx] && rhsFlat[rhsIdx]
		}
	}
	return output, nil
}

func execComparisonForType[T PODNumericConstraints](opType backends.OpType, lhs, rhs, output *Buffer) error {
	var fn func(a, b T) bool
	switch opType {
	case backends.OpTypeEqual:
		fn = func(a, b T) bool { return a == b }
	case backends.OpTypeNotEqual:
		fn = func(a, b T) bool { return a != b }
	case backends.OpTypeGreaterOrEqual:
		fn = func(a, b T) bool { return a >= b }
	case backends.OpTypeGreaterThan:
		fn = func(a, b T) bool { return a > b }
	case backends.OpTypeLessOrEqual:
		fn = func(a, b T) bool { return a <= b }
	case backends.OpTypeLessThan:
		fn = func(a, b T) bool { return a < b }
	default:
		return errors.Errorf("op %s is not a comparison operation", opType)
	}
	lhsFlat := lhs.flat.([]T)
	rhsFlat := rhs.flat.([]T)
	outputFlat := output.flat.([]bool)
	it := newBroadcastIterator(lhs.shape, rhs.shape, output.shape)
	for outIdx := range outputFlat {
		lhsIdx, rhsIdx := it.Next()
		outputFlat[outIdx] = fn(lhsFlat[lhsIdx], rhsFlat[rhsIdx])
	}
	return nil
}

func execComparison(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	lhs, rhs := inputs[0], inputs[1]
	output := backend.getBufferForShape(node.shape)
	var err error
	switch lhs.shape.DType {
	case dtypes.Float32:
		err = execComparisonForType[float32](node.opType, lhs, rhs, output)
	case dtypes.Float64:
		err = execComparisonForType[float64](node.opType, lhs, rhs, output)
	case dtypes.Int8:
		err = execComparisonForType[int8](node.opType, lhs, rhs, output)
	case dtypes.Int16:
		err = execComparisonForType[int16](node.opType, lhs, rhs, output)
	case dtypes.Int32:
		err = execComparisonForType[int32](node.opType, lhs, rhs, output)
	case dtypes.Int64:
		err = execComparisonForType[int64](node.opType, lhs, rhs, output)
	case dtypes.Uint8:
		err = execComparisonForType[uint8](node.opType, lhs, rhs, output)
	case dtypes.Uint16:
		err = execComparisonForType[uint16](node.opType, lhs, rhs, output)
	case dtypes.Uint32:
		err = execComparisonForType[uint32](node.opType, lhs, rhs, output)
	case dtypes.Uint64:
		err = execComparisonForType[uint64](node.opType, lhs, rhs, output)
	default:
		err = errors.Errorf("unsupported dtype %s for op %s in backend %s",
			lhs.shape.DType, node.opType, BackendName)
	}
	if err != nil {
		backend.putBuffer(output)
		return nil, err
	}
	return output, nil
}
