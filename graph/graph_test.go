package graph_test

import (
	"math"
	"testing"

	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/graph/graphtest"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/elwise/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndRun(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, "sum_and_product")
	x := Parameter(g, "x", shapes.Make(dtypes.Float32, 3))
	y := Parameter(g, "y", shapes.Make(dtypes.Float32, 3))
	g.Compile(Add(x, y), Mul(x, y))

	results := g.Run([]float32{1, 2, 3}, []float32{10, 20, 30})
	require.Len(t, results, 2)
	require.True(t, tensors.FromValue([]float32{11, 22, 33}).Equal(results[0]))
	require.True(t, tensors.FromValue([]float32{10, 40, 90}).Equal(results[1]))

	// Compiled graphs are reusable.
	results = g.Run([]float32{0, 0, 1}, []float32{5, 6, 7})
	require.True(t, tensors.FromValue([]float32{5, 6, 8}).Equal(results[0]))
}

func TestRunValidatesInputs(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Parameter(g, "x", shapes.Make(dtypes.Float32, 2))
	g.Compile(Neg(x))

	require.Panics(t, func() { g.Run() })
	require.Panics(t, func() { g.Run([]float32{1, 2, 3}) })
	require.Panics(t, func() { g.Run([]int32{1, 2}) })
}

func TestDuplicateParameterName(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	_ = Parameter(g, "x", shapes.Make(dtypes.Float32, 2))
	require.Panics(t, func() { Parameter(g, "x", shapes.Make(dtypes.Float32, 2)) })
}

func TestScalarCache(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	a := Scalar(g, dtypes.Float32, 3)
	b := Scalar(g, dtypes.Float32, 3)
	assert.Same(t, a, b)
	assert.NotSame(t, a, Scalar(g, dtypes.Float32, 4))
	assert.NotSame(t, a, Scalar(g, dtypes.Float64, 3))
}

func TestConstAndConvert(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Const(g, [][]float32{{1.7, -2.4}, {0, 3.9}})
	require.Equal(t, shapes.Make(dtypes.Float32, 2, 2), x.Shape())
	converted := ConvertDType(x, dtypes.Int32)
	// Same-dtype conversion is a no-op.
	require.Same(t, converted, ConvertDType(converted, dtypes.Int32))
	g.Compile(converted)
	got := g.Run()[0]
	require.Equal(t, [][]int32{{1, -2}, {0, 3}}, got.Value())
}

func TestBroadcastAndWhere(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend, []any{[]float32{-1, 0, 2}},
		func(g *Graph, inputs []*Node) []*Node {
			x := inputs[0]
			ones := BroadcastToShape(ScalarOne(g, x.DType()), x.Shape())
			return []*Node{Where(GreaterThan(x, ScalarZero(g, x.DType())), x, Neg(ones))}
		})
	require.Equal(t, []float32{-1, -1, 2}, results[0].Value())
}

func TestComparisonNaN(t *testing.T) {
	nan := float32(math.NaN())
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend, []any{[]float32{nan, 1}},
		func(_ *Graph, inputs []*Node) []*Node {
			x := inputs[0]
			return []*Node{NotEqual(x, x), Equal(x, x)}
		})
	require.Equal(t, []bool{true, false}, results[0].Value())
	require.Equal(t, []bool{false, true}, results[1].Value())
}

func TestRandomUniform(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	state := RNGStateFromSeed(g, 7)
	state, values1 := RandomUniform(state, shapes.Make(dtypes.Float32, 1000))
	_, values2 := RandomUniform(state, shapes.Make(dtypes.Float32, 1000))
	g.Compile(values1, values2)
	results := g.Run()

	var sum float64
	for _, result := range results {
		result.MustConstFlatData(func(flat any) {
			for _, v := range flat.([]float32) {
				require.GreaterOrEqual(t, v, float32(0))
				require.Less(t, v, float32(1))
				sum += float64(v)
			}
		})
	}
	// Mean of 2000 uniform samples stays near 0.5.
	assert.InDelta(t, 0.5, sum/2000, 0.05)
	// Advancing the state produces different samples.
	require.False(t, results[0].Equal(results[1]))
}

func TestNodeString(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Parameter(g, "x", shapes.Make(dtypes.Float32, 2, 3))
	require.Contains(t, x.String(), "Parameter")
	require.Equal(t, "x", x.ParameterName())
	require.Equal(t, 2, x.Rank())
	require.Equal(t, dtypes.Float32, x.DType())
}
