package elwise

import (
	"testing"

	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/graph/graphtest"
	"github.com/stretchr/testify/require"
)

func TestBuildComparisonOp(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	input := []float32{-1, 0, 1}
	other := []float32{0, 0, 0}
	want := map[Kind][]bool{
		KindNe: {true, false, true},
		KindEq: {false, true, false},
		KindGe: {false, true, true},
		KindLe: {true, true, false},
		KindGt: {false, false, true},
		KindLt: {true, false, false},
	}
	for kind, wantValues := range want {
		results := graphtest.RunGraph(t, backend, []any{input, other},
			func(_ *Graph, inputs []*Node) []*Node {
				return []*Node{BuildComparisonOp(kind, inputs[0], inputs[1])}
			})
		requireInDelta(t, wantValues, results[0], 0)
	}
}

func TestBuildComparisonOpPromotes(t *testing.T) {
	// Mixed int32/float32 operands promote to float32 before comparing.
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend,
		[]any{[]int32{-1, 0, 1}, []float32{-0.5, 0, 0.5}},
		func(_ *Graph, inputs []*Node) []*Node {
			return []*Node{BuildComparisonOp(KindGt, inputs[0], inputs[1])}
		})
	requireInDelta(t, []bool{false, false, true}, results[0], 0)
}

func TestBuildComparisonOpInvalidKind(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Const(g, []float32{1, 2})
	require.Panics(t, func() { BuildComparisonOp(Kind(17), x, x) })
}

func TestBetween(t *testing.T) {
	got := execUnary(t, []float32{-2, -1, 0, 1, 2}, func(x *Node) *Node {
		return Between(x, -1, 1)
	})
	// Both bounds are inclusive.
	requireInDelta(t, []bool{false, true, true, true, false}, got, 0)
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "Gt", KindGt.String())
	kind, err := KindString("Le")
	require.NoError(t, err)
	require.Equal(t, KindLe, kind)
	require.False(t, Kind(17).IsAKind())
}
