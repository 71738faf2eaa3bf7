package simplego

import (
	"math"
	"reflect"
	"testing"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInput struct {
	flat any
	dims []int
}

// runProgram builds a computation with build, feeds the inputs as parameters and
// returns the flat data of every output.
func runProgram(t *testing.T, inputs []testInput, build func(b backends.Builder, params []backends.Op) []backends.Op) []any {
	t.Helper()
	backend, err := New("")
	require.NoError(t, err)
	defer backend.Finalize()

	b := backend.Builder(t.Name())
	params := make([]backends.Op, len(inputs))
	buffers := make([]backends.Buffer, len(inputs))
	for ii, input := range inputs {
		shape := shapeForFlat(input.flat, input.dims...)
		var err error
		params[ii], err = b.Parameter(paramName(ii), shape)
		require.NoError(t, err)
		buffers[ii], err = backend.BufferFromFlatData(0, input.flat, shape)
		require.NoError(t, err)
	}
	outputs := build(b, params)
	exec, err := b.Compile(outputs...)
	require.NoError(t, err)
	defer exec.Finalize()

	results, err := exec.Execute(buffers, make([]bool, len(buffers)))
	require.NoError(t, err)
	flats := make([]any, len(results))
	for ii, result := range results {
		shape, err := backend.BufferShape(result)
		require.NoError(t, err)
		flat := flatForShape(shape)
		require.NoError(t, backend.BufferToFlatData(result, flat))
		flats[ii] = flat
	}
	return flats
}

func paramName(ii int) string { return string(rune('a' + ii)) }

func shapeForFlat(flat any, dims ...int) shapes.Shape {
	dtype := dtypes.FromGoType(reflect.TypeOf(flat).Elem())
	return shapes.Make(dtype, dims...)
}

func flatForShape(shape shapes.Shape) any {
	switch shape.DType {
	case dtypes.Bool:
		return make([]bool, shape.Size())
	case dtypes.Int32:
		return make([]int32, shape.Size())
	case dtypes.Int64:
		return make([]int64, shape.Size())
	case dtypes.Uint8:
		return make([]uint8, shape.Size())
	case dtypes.Uint32:
		return make([]uint32, shape.Size())
	case dtypes.Uint64:
		return make([]uint64, shape.Size())
	case dtypes.Float32:
		return make([]float32, shape.Size())
	case dtypes.Float64:
		return make([]float64, shape.Size())
	}
	panic("test does not support dtype " + shape.DType.String())
}

func TestBinaryBroadcast(t *testing.T) {
	// [2,3] + [2,1]: the rhs row value broadcasts over the lhs columns.
	got := runProgram(t,
		[]testInput{
			{[]float32{1, 2, 3, 4, 5, 6}, []int{2, 3}},
			{[]float32{10, 100}, []int{2, 1}},
		},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			sum, err := b.Add(params[0], params[1])
			require.NoError(t, err)
			return []backends.Op{sum}
		})
	assert.Equal(t, []float32{11, 12, 13, 104, 105, 106}, got[0])
}

func TestBinaryScalarBroadcast(t *testing.T) {
	got := runProgram(t,
		[]testInput{{[]int32{3, -4, 5}, []int{3}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			two, err := b.Constant([]int32{2}) // scalar
			require.NoError(t, err)
			product, err := b.Mul(params[0], two)
			require.NoError(t, err)
			return []backends.Op{product}
		})
	assert.Equal(t, []int32{6, -8, 10}, got[0])
}

func TestUnaryOps(t *testing.T) {
	nan := float32(math.NaN())
	got := runProgram(t,
		[]testInput{{[]float32{-2, 0, 2, nan}, []int{4}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			x := params[0]
			neg, err := b.Neg(x)
			require.NoError(t, err)
			abs, err := b.Abs(x)
			require.NoError(t, err)
			sign, err := b.Sign(x)
			require.NoError(t, err)
			isFinite, err := b.IsFinite(x)
			require.NoError(t, err)
			return []backends.Op{neg, abs, sign, isFinite}
		})
	neg := got[0].([]float32)
	assert.Equal(t, []float32{2, 0, -2}, neg[:3])
	assert.True(t, math.IsNaN(float64(neg[3])))
	abs := got[1].([]float32)
	assert.Equal(t, []float32{2, 0, 2}, abs[:3])
	assert.True(t, math.IsNaN(float64(abs[3])))
	sign := got[2].([]float32)
	assert.Equal(t, []float32{-1, 0, 1}, sign[:3])
	assert.True(t, math.IsNaN(float64(sign[3])))
	assert.Equal(t, []bool{true, true, true, false}, got[3])
}

func TestComparisonNaNSemantics(t *testing.T) {
	nan := float64(math.NaN())
	got := runProgram(t,
		[]testInput{{[]float64{1, nan}, []int{2}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			x := params[0]
			ne, err := b.NotEqual(x, x)
			require.NoError(t, err)
			eq, err := b.Equal(x, x)
			require.NoError(t, err)
			return []backends.Op{ne, eq}
		})
	assert.Equal(t, []bool{false, true}, got[0])
	assert.Equal(t, []bool{true, false}, got[1])
}

func TestMaxMinNaNPropagation(t *testing.T) {
	nan := float32(math.NaN())
	got := runProgram(t,
		[]testInput{
			{[]float32{nan, 1, nan}, []int{3}},
			{[]float32{2, nan, nan}, []int{3}},
		},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			maxOp, err := b.Max(params[0], params[1])
			require.NoError(t, err)
			minOp, err := b.Min(params[0], params[1])
			require.NoError(t, err)
			return []backends.Op{maxOp, minOp}
		})
	for _, flat := range [][]float32{got[0].([]float32), got[1].([]float32)} {
		for idx, value := range flat {
			assert.Truef(t, math.IsNaN(float64(value)), "element %d: got %v, want NaN", idx, value)
		}
	}
}

func TestConvertDTypeIntegerExact(t *testing.T) {
	// Large 64-bit masks convert to narrower integers by truncation, not through
	// a float64 round trip.
	got := runProgram(t,
		[]testInput{{[]int64{0x1_0000_00FF, -1}, []int{2}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			converted, err := b.ConvertDType(params[0], dtypes.Uint32)
			require.NoError(t, err)
			return []backends.Op{converted}
		})
	assert.Equal(t, []uint32{0xFF, 0xFFFFFFFF}, got[0])
}

func TestConvertDTypeBool(t *testing.T) {
	got := runProgram(t,
		[]testInput{{[]bool{false, true}, []int{2}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			converted, err := b.ConvertDType(params[0], dtypes.Uint8)
			require.NoError(t, err)
			back, err := b.ConvertDType(params[0], dtypes.Float32)
			require.NoError(t, err)
			return []backends.Op{converted, back}
		})
	assert.Equal(t, []uint8{0, 1}, got[0])
	assert.Equal(t, []float32{0, 1}, got[1])
}

func TestBitwiseAndShifts(t *testing.T) {
	got := runProgram(t,
		[]testInput{{[]int32{-1, 256}, []int{2}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			x := params[0]
			mask, err := b.Constant([]int32{0xFF, 0xFF}, 2)
			require.NoError(t, err)
			masked, err := b.BitwiseAnd(x, mask)
			require.NoError(t, err)
			eight, err := b.Constant([]int32{8, 8}, 2)
			require.NoError(t, err)
			shifted, err := b.ShiftLeft(x, eight)
			require.NoError(t, err)
			arith, err := b.ShiftRightArithmetic(x, eight)
			require.NoError(t, err)
			logical, err := b.ShiftRightLogical(x, eight)
			require.NoError(t, err)
			return []backends.Op{masked, shifted, arith, logical}
		})
	assert.Equal(t, []int32{0xFF, 0}, got[0])
	assert.Equal(t, []int32{-256, 65536}, got[1])
	assert.Equal(t, []int32{-1, 1}, got[2])
	assert.Equal(t, []int32{0xFFFFFF, 1}, got[3])
}

func TestWhereScalarBranches(t *testing.T) {
	got := runProgram(t,
		[]testInput{{[]float32{-1, 0, 2}, []int{3}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			x := params[0]
			zero, err := b.Constant([]float32{0})
			require.NoError(t, err)
			seven, err := b.Constant([]float32{7})
			require.NoError(t, err)
			cond, err := b.GreaterThan(x, zero)
			require.NoError(t, err)
			selected, err := b.Where(cond, x, seven)
			require.NoError(t, err)
			return []backends.Op{selected}
		})
	assert.Equal(t, []float32{7, 7, 2}, got[0])
}

func TestBroadcastInDim(t *testing.T) {
	got := runProgram(t,
		[]testInput{{[]float32{1, 2}, []int{2, 1}}},
		func(b backends.Builder, params []backends.Op) []backends.Op {
			broadcast, err := b.BroadcastInDim(params[0],
				shapes.Make(dtypes.Float32, 2, 3), []int{0, 1})
			require.NoError(t, err)
			return []backends.Op{broadcast}
		})
	assert.Equal(t, []float32{1, 1, 1, 2, 2, 2}, got[0])
}

func TestRNGBitGeneratorDeterminism(t *testing.T) {
	state := []uint64{1, 2, 3}
	run := func() ([]uint64, []uint64) {
		got := runProgram(t,
			[]testInput{{state, []int{3}}},
			func(b backends.Builder, params []backends.Op) []backends.Op {
				newState, values, err := b.RNGBitGenerator(params[0],
					shapes.Make(dtypes.Uint64, 8))
				require.NoError(t, err)
				return []backends.Op{newState, values}
			})
		return got[0].([]uint64), got[1].([]uint64)
	}
	state1, values1 := run()
	state2, values2 := run()
	assert.Equal(t, state1, state2)
	assert.Equal(t, values1, values2)
	assert.NotEqual(t, state, state1)
}

func TestCapabilities(t *testing.T) {
	backend, err := New("")
	require.NoError(t, err)
	capabilities := backend.Capabilities()
	assert.True(t, capabilities.Operations[backends.OpTypeAdd])
	assert.True(t, capabilities.DTypes[dtypes.Float32])
	assert.True(t, capabilities.DTypes[dtypes.BFloat16])
	assert.False(t, capabilities.DTypes[dtypes.Complex64])
}
