package elwise

import (
	"testing"

	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/graph/graphtest"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestAlphaArithmetic(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	inputs := []any{[]float32{1, 2, 3}, []float32{10, 20, 30}, float32(2)}
	results := graphtest.RunGraph(t, backend, inputs,
		func(_ *Graph, ins []*Node) []*Node {
			input, other, alpha := ins[0], ins[1], ins[2]
			return []*Node{
				BuildAdd(input, other, alpha),
				BuildSub(input, other, alpha),
				BuildRsub(input, other, alpha),
			}
		})
	requireInDelta(t, []float32{21, 42, 63}, results[0], 0)
	requireInDelta(t, []float32{-19, -38, -57}, results[1], 0)
	requireInDelta(t, []float32{8, 16, 24}, results[2], 0)
}

func TestAlphaArithmeticPromotes(t *testing.T) {
	// int32 input, float32 other and a float64 alpha end up all float64.
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend,
		[]any{[]int32{1, 2}, []float32{0.5, 0.25}, float64(2)},
		func(_ *Graph, ins []*Node) []*Node {
			return []*Node{BuildAdd(ins[0], ins[1], ins[2])}
		})
	require.Equal(t, dtypes.Float64, results[0].DType())
	requireInDelta(t, []float64{2, 2.5}, results[0], 1e-6)
}

func TestBuildMulDiv(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend,
		[]any{[]int32{3, 8}, []float32{2, 0.5}},
		func(_ *Graph, ins []*Node) []*Node {
			return []*Node{
				BuildMul(ins[0], ins[1]),
				BuildDiv(ins[0], ins[1]),
			}
		})
	requireInDelta(t, []float32{6, 4}, results[0], 0)
	requireInDelta(t, []float32{1.5, 16}, results[1], 1e-6)
}

func TestBuildLerp(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend,
		[]any{[]float32{0, 10}, []float32{10, 20}, float32(0.5)},
		func(_ *Graph, ins []*Node) []*Node {
			return []*Node{BuildLerp(ins[0], ins[1], ins[2])}
		})
	requireInDelta(t, []float32{5, 15}, results[0], 1e-6)
}

func TestPromotedDType(t *testing.T) {
	for _, test := range []struct {
		a, b, want dtypes.DType
	}{
		{dtypes.Float32, dtypes.Float32, dtypes.Float32},
		{dtypes.Bool, dtypes.Int8, dtypes.Int8},
		{dtypes.Bool, dtypes.Float64, dtypes.Float64},
		{dtypes.Int8, dtypes.Int32, dtypes.Int32},
		{dtypes.Uint8, dtypes.Uint16, dtypes.Uint16},
		{dtypes.Uint8, dtypes.Int8, dtypes.Int16},
		{dtypes.Uint8, dtypes.Int32, dtypes.Int32},
		{dtypes.Uint32, dtypes.Int32, dtypes.Int64},
		{dtypes.Int64, dtypes.Float32, dtypes.Float32},
		{dtypes.Float16, dtypes.BFloat16, dtypes.Float32},
		{dtypes.Float32, dtypes.Float64, dtypes.Float64},
		{dtypes.Float64, dtypes.Complex64, dtypes.Complex64},
		{dtypes.Complex64, dtypes.Complex128, dtypes.Complex128},
	} {
		require.Equal(t, test.want, promotedDType(test.a, test.b),
			"promotedDType(%s, %s)", test.a, test.b)
		require.Equal(t, test.want, promotedDType(test.b, test.a),
			"promotedDType(%s, %s)", test.b, test.a)
	}
}
