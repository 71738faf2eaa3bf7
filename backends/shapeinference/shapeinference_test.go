package shapeinference

import (
	"testing"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryOp(t *testing.T) {
	f32 := func(dims ...int) shapes.Shape { return shapes.Make(dtypes.Float32, dims...) }

	// Equal shapes.
	output, err := BinaryOp(backends.OpTypeAdd, f32(2, 3), f32(2, 3))
	require.NoError(t, err)
	assert.True(t, output.Equal(f32(2, 3)))

	// Scalar broadcasts to the other operand.
	output, err = BinaryOp(backends.OpTypeMul, f32(2, 3), f32())
	require.NoError(t, err)
	assert.True(t, output.Equal(f32(2, 3)))

	// Degenerate (1) dimensions broadcast.
	output, err = BinaryOp(backends.OpTypeSub, f32(2, 1), f32(1, 3))
	require.NoError(t, err)
	assert.True(t, output.Equal(f32(2, 3)))

	// Mismatched dtypes and incompatible dimensions are rejected.
	_, err = BinaryOp(backends.OpTypeAdd, f32(2), shapes.Make(dtypes.Int32, 2))
	require.Error(t, err)
	_, err = BinaryOp(backends.OpTypeAdd, f32(2), f32(3))
	require.Error(t, err)
	// Ranks must match unless one side is a scalar.
	_, err = BinaryOp(backends.OpTypeAdd, f32(2, 3), f32(3))
	require.Error(t, err)
}

func TestBinaryOpDTypeSets(t *testing.T) {
	boolShape := shapes.Make(dtypes.Bool, 2)
	_, err := BinaryOp(backends.OpTypeAdd, boolShape, boolShape)
	require.Error(t, err, "arithmetic on booleans")
	_, err = BinaryOp(backends.OpTypeLogicalAnd, boolShape, boolShape)
	require.NoError(t, err)

	f32 := shapes.Make(dtypes.Float32, 2)
	_, err = BinaryOp(backends.OpTypeBitwiseAnd, f32, f32)
	require.Error(t, err, "bitwise on floats")
}

func TestComparisonOp(t *testing.T) {
	output, err := ComparisonOp(backends.OpTypeGreaterThan,
		shapes.Make(dtypes.Int32, 4), shapes.Make(dtypes.Int32))
	require.NoError(t, err)
	assert.True(t, output.Equal(shapes.Make(dtypes.Bool, 4)))
}

func TestUnaryOp(t *testing.T) {
	output, err := UnaryOp(backends.OpTypeExp, shapes.Make(dtypes.Float64, 2))
	require.NoError(t, err)
	assert.Equal(t, dtypes.Float64, output.DType)

	// Exp is only defined for floats (and complexes).
	_, err = UnaryOp(backends.OpTypeExp, shapes.Make(dtypes.Int32, 2))
	require.Error(t, err)

	// Sign has no meaning for unsigned dtypes.
	_, err = UnaryOp(backends.OpTypeSign, shapes.Make(dtypes.Uint8, 2))
	require.Error(t, err)

	// IsFinite yields booleans.
	output, err = UnaryOp(backends.OpTypeIsFinite, shapes.Make(dtypes.Float32, 2))
	require.NoError(t, err)
	assert.Equal(t, dtypes.Bool, output.DType)

	// Abs of a complex value is its real magnitude.
	output, err = UnaryOp(backends.OpTypeAbs, shapes.Make(dtypes.Complex64, 2))
	require.NoError(t, err)
	assert.Equal(t, dtypes.Float32, output.DType)
}

func TestWhereOp(t *testing.T) {
	cond := shapes.Make(dtypes.Bool, 2, 3)
	f32 := func(dims ...int) shapes.Shape { return shapes.Make(dtypes.Float32, dims...) }

	output, err := WhereOp(cond, f32(2, 3), f32(2, 3))
	require.NoError(t, err)
	assert.True(t, output.Equal(f32(2, 3)))

	// Scalar branches broadcast.
	output, err = WhereOp(cond, f32(), f32(2, 3))
	require.NoError(t, err)
	assert.True(t, output.Equal(f32(2, 3)))

	// The condition must be boolean.
	_, err = WhereOp(f32(2, 3), f32(2, 3), f32(2, 3))
	require.Error(t, err)

	// Branch dtypes must match.
	_, err = WhereOp(cond, f32(2, 3), shapes.Make(dtypes.Int32, 2, 3))
	require.Error(t, err)
}

func TestBroadcastInDimOp(t *testing.T) {
	operand := shapes.Make(dtypes.Float32, 2, 1)
	output := shapes.Make(dtypes.Float32, 2, 3)
	got, err := BroadcastInDimOp(operand, output, []int{0, 1})
	require.NoError(t, err)
	assert.True(t, got.Equal(output))

	// Scalars broadcast with no axes mapping.
	got, err = BroadcastInDimOp(shapes.Make(dtypes.Float32), output, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(output))

	// A non-degenerate operand dimension must match the output dimension it maps to.
	_, err = BroadcastInDimOp(shapes.Make(dtypes.Float32, 2, 2), output, []int{0, 1})
	require.Error(t, err)
}

func TestReshapeOp(t *testing.T) {
	output, err := ReshapeOp(shapes.Make(dtypes.Int32, 2, 3), []int{6})
	require.NoError(t, err)
	assert.True(t, output.Equal(shapes.Make(dtypes.Int32, 6)))

	_, err = ReshapeOp(shapes.Make(dtypes.Int32, 2, 3), []int{5})
	require.Error(t, err)
}

func TestRNGBitGeneratorOp(t *testing.T) {
	state := backends.RNGStateShape
	newState, values, err := RNGBitGeneratorOp(state, shapes.Make(dtypes.Uint64, 4))
	require.NoError(t, err)
	assert.True(t, newState.Equal(state))
	assert.True(t, values.Equal(shapes.Make(dtypes.Uint64, 4)))

	// Only integer value dtypes can be generated directly.
	_, _, err = RNGBitGeneratorOp(state, shapes.Make(dtypes.Float32, 4))
	require.Error(t, err)

	// The state shape is fixed.
	_, _, err = RNGBitGeneratorOp(shapes.Make(dtypes.Uint64, 2), shapes.Make(dtypes.Uint64, 4))
	require.Error(t, err)
}
