package elwise

import (
	"math"
	"testing"

	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/graph/graphtest"
	"github.com/gomlx/elwise/types/tensors"
	"github.com/stretchr/testify/require"
)

// execUnary runs fn over a single parameter fed with input, on the test backend.
func execUnary(t *testing.T, input any, fn func(x *Node) *Node) *tensors.Tensor {
	t.Helper()
	return graphtest.RunUnary(t, graphtest.BuildTestBackend(), input, fn)
}

// requireInDelta checks the result against the expected values, dtype included.
// NaN entries compare equal to NaN.
func requireInDelta(t *testing.T, want any, got *tensors.Tensor, delta float64) {
	t.Helper()
	wantTensor := tensors.FromAnyValue(want)
	require.Truef(t, wantTensor.InDelta(got, delta),
		"wanted %s, got %s", wantTensor.GoStr(), got.GoStr())
}

func TestBuildRelu(t *testing.T) {
	nan := float32(math.NaN())
	got := execUnary(t, []float32{-2, 0, 3, nan}, BuildRelu)
	requireInDelta(t, []float32{0, 0, 3, nan}, got, 0)
}

func TestBuildThreshold(t *testing.T) {
	got := execUnary(t, []float32{-2, 1, 1.001, 3}, func(x *Node) *Node {
		return BuildThreshold(x, 1, 7)
	})
	requireInDelta(t, []float32{7, 7, 1.001, 3}, got, 0)

	got = execUnary(t, []float32{-2, 1, 3}, func(x *Node) *Node {
		return BuildThresholdBackward(OnesLike(x), x, 1)
	})
	requireInDelta(t, []float32{0, 0, 1}, got, 0)
}

func TestShrinkFamily(t *testing.T) {
	// The [-lambda, lambda] band is closed: +/-1 shrink to 0.
	got := execUnary(t, []float32{-2, -1, 0, 1, 2}, func(x *Node) *Node {
		return BuildHardshrink(x, 1)
	})
	requireInDelta(t, []float32{-2, 0, 0, 0, 2}, got, 0)

	got = execUnary(t, []float32{-2, 0, 2}, func(x *Node) *Node {
		return BuildSoftshrink(x, 1)
	})
	requireInDelta(t, []float32{-1, 0, 1}, got, 0)

	got = execUnary(t, []float32{-2, -1, 0, 1, 2}, func(x *Node) *Node {
		return BuildShrinkBackward(OnesLike(x), x, 1)
	})
	requireInDelta(t, []float32{1, 0, 0, 0, 1}, got, 0)
}

func TestHardSigmoid(t *testing.T) {
	got := execUnary(t, []float32{-6, -3, 0, 1.2, 3, 6}, BuildHardSigmoid)
	requireInDelta(t, []float32{0, 0, 0.5, 0.7, 1, 1}, got, 1e-6)

	got = execUnary(t, []float32{-4, -3, 0, 3, 4}, func(x *Node) *Node {
		return BuildHardSigmoidBackward(OnesLike(x), x)
	})
	requireInDelta(t, []float32{0, 1.0 / 6, 1.0 / 6, 1.0 / 6, 0}, got, 1e-6)
}

func TestHardSwish(t *testing.T) {
	got := execUnary(t, []float32{-4, -3, 0, 1, 3, 4}, BuildHardSwish)
	requireInDelta(t, []float32{0, 0, 0, 4.0 / 6, 3, 4}, got, 1e-6)
}

func TestHardSwishBackwardBoundary(t *testing.T) {
	// At exactly input == 3 the non-strict >= 3 branch wins and the gradient is the
	// incoming gradient, not the interior formula's 1.5.
	got := execUnary(t, []float32{-4, -3, 0, 3, 4}, func(x *Node) *Node {
		return BuildHardSwishBackward(OnesLike(x), x)
	})
	requireInDelta(t, []float32{0, -0.5, 0.5, 1, 1}, got, 1e-6)
}

func TestBuildHardtanhBackward(t *testing.T) {
	got := execUnary(t, []float32{-2, -1, 0, 1, 2}, func(x *Node) *Node {
		return BuildHardtanhBackward(OnesLike(x), x, -1, 1)
	})
	requireInDelta(t, []float32{0, 1, 1, 1, 0}, got, 0)
}

func TestLeakyRelu(t *testing.T) {
	got := execUnary(t, []float32{-2, 0, 3}, func(x *Node) *Node {
		return BuildLeakyRelu(x, 0.1)
	})
	requireInDelta(t, []float32{-0.2, 0, 3}, got, 1e-6)

	got = execUnary(t, []float32{-2, 0, 3}, func(x *Node) *Node {
		return BuildLeakyReluBackward(OnesLike(x), x, 0.1)
	})
	requireInDelta(t, []float32{0.1, 0.1, 1}, got, 1e-6)
}

func TestPrelu(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend,
		[]any{[]float32{-2, 0, 3}, float32(0.25)},
		func(_ *Graph, inputs []*Node) []*Node {
			input, weight := inputs[0], inputs[1]
			gradInput, gradWeight := BuildPreluBackward(OnesLike(input), input, weight)
			return []*Node{BuildPrelu(input, weight), gradInput, gradWeight}
		})
	requireInDelta(t, []float32{-0.5, 0, 3}, results[0], 1e-6)
	requireInDelta(t, []float32{0.25, 0.25, 1}, results[1], 1e-6)
	requireInDelta(t, []float32{-2, 0, 0}, results[2], 1e-6)
}

func TestEluFamily(t *testing.T) {
	expm1 := func(x float64) float32 { return float32(math.Expm1(x)) }

	got := execUnary(t, []float32{-1, 0, 2}, func(x *Node) *Node {
		return BuildElu(x, 1, 1, 1)
	})
	requireInDelta(t, []float32{expm1(-1), 0, 2}, got, 1e-6)

	// Backward branches on the forward output.
	got = execUnary(t, []float32{expm1(-1), 0, 2}, func(output *Node) *Node {
		return BuildEluBackward(OnesLike(output), output, 1, 1, 1)
	})
	requireInDelta(t, []float32{expm1(-1) + 1, 1, 1}, got, 1e-6)

	got = execUnary(t, []float32{-2, 0, 2}, func(x *Node) *Node {
		return BuildCelu(x, 2)
	})
	requireInDelta(t, []float32{2 * expm1(-1), 0, 2}, got, 1e-6)
}

func TestBuildSelu(t *testing.T) {
	got := execUnary(t, []float32{-1, 0, 2}, BuildSelu)
	requireInDelta(t, []float32{
		float32(seluScale * seluAlpha * math.Expm1(-1)),
		0,
		float32(seluScale * 2),
	}, got, 1e-6)
}

func TestBuildGelu(t *testing.T) {
	inputs := []float32{-3, -1, -0.1, 0, 0.1, 1, 3}
	got := execUnary(t, inputs, BuildGelu)
	want := make([]float32, len(inputs))
	for ii, x := range inputs {
		want[ii] = float32(float64(x) * 0.5 * (math.Erf(float64(x)/math.Sqrt2) + 1))
	}
	requireInDelta(t, want, got, 1e-6)
	require.Equal(t, float32(0), want[3])

	// Monotonically increasing.
	values := flatFloat32(t, got)
	for ii := 1; ii < len(values); ii++ {
		require.Less(t, values[ii-1], values[ii])
	}

	got = execUnary(t, inputs, func(x *Node) *Node {
		return BuildGeluBackward(OnesLike(x), x)
	})
	for ii, x := range inputs {
		xF := float64(x)
		want[ii] = float32(0.5*(1+math.Erf(xF/math.Sqrt2)) +
			xF*math.Exp(-xF*xF/2)/math.Sqrt(2*math.Pi))
	}
	requireInDelta(t, want, got, 1e-6)
}

func flatFloat32(t *testing.T, tensor *tensors.Tensor) []float32 {
	t.Helper()
	var values []float32
	tensor.MustConstFlatData(func(flat any) {
		values = flat.([]float32)
	})
	return values
}

func TestBuildSoftplus(t *testing.T) {
	got := execUnary(t, []float32{0, 1, 30}, func(x *Node) *Node {
		return BuildSoftplus(x, 1, 20)
	})
	requireInDelta(t, []float32{
		float32(math.Log(2)),
		float32(math.Log1p(math.Exp(1))),
		30, // past the threshold the input passes through untouched.
	}, got, 1e-6)
}

func TestBuildSigmoidAndSiLUBackward(t *testing.T) {
	inputs := []float32{-2, 0, 2}
	got := execUnary(t, inputs, BuildSigmoid)
	want := make([]float32, len(inputs))
	sigmoid := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	for ii, x := range inputs {
		want[ii] = float32(sigmoid(float64(x)))
	}
	requireInDelta(t, want, got, 1e-6)

	got = execUnary(t, inputs, func(x *Node) *Node {
		return BuildSiLUBackward(OnesLike(x), x)
	})
	for ii, x := range inputs {
		sig := sigmoid(float64(x))
		want[ii] = float32(sig * (1 + float64(x)*(1-sig)))
	}
	requireInDelta(t, want, got, 1e-6)
}

func TestBuildReciprocal(t *testing.T) {
	got := execUnary(t, []float32{2, 4, -0.5}, BuildReciprocal)
	requireInDelta(t, []float32{0.5, 0.25, -2}, got, 1e-6)
}

func TestBuildLogSigmoid(t *testing.T) {
	inputs := []float32{-30, -2, 0, 2, 30}
	backend := graphtest.BuildTestBackend()
	results := graphtest.RunGraph(t, backend, []any{inputs},
		func(_ *Graph, ins []*Node) []*Node {
			output, buffer := BuildLogSigmoid(ins[0])
			return []*Node{output, BuildLogSigmoidBackward(OnesLike(ins[0]), ins[0], buffer)}
		})

	want := make([]float32, len(inputs))
	for ii, x := range inputs {
		want[ii] = float32(-math.Log1p(math.Exp(-math.Abs(float64(x)))) +
			math.Min(float64(x), 0))
	}
	requireInDelta(t, want, results[0], 1e-5)

	// d/dx log(sigmoid(x)) == 1 - sigmoid(x).
	for ii, x := range inputs {
		want[ii] = float32(1 - 1/(1+math.Exp(-float64(x))))
	}
	requireInDelta(t, want, results[1], 1e-5)
}

func TestBuildLogit(t *testing.T) {
	nan := float32(math.NaN())
	got := execUnary(t, []float32{-0.5, 0.25, 0.5, 1.5}, func(x *Node) *Node {
		return BuildLogit(x, -1)
	})
	requireInDelta(t, []float32{nan, float32(math.Log(1.0 / 3)), 0, nan}, got, 1e-6)

	// With eps set, in-range values clamp to [eps, 1-eps], but the domain check
	// still looks at the original input: out-of-range stays NaN.
	got = execUnary(t, []float32{-0.5, 0.001, 0.5, 0.999, 1.5}, func(x *Node) *Node {
		return BuildLogit(x, 0.01)
	})
	edge := float32(math.Log(0.99 / 0.01))
	requireInDelta(t, []float32{nan, -edge, 0, edge, nan}, got, 1e-5)
}

func TestBuildSign(t *testing.T) {
	device := DeviceFromCapabilities(graphtest.BuildTestBackend().Capabilities())
	sign := func(x *Node) *Node { return BuildSign(x, device) }

	got := execUnary(t, []float32{-3, 0, 4, float32(math.NaN())}, sign)
	requireInDelta(t, []float32{-1, 0, 1, 0}, got, 0)

	got = execUnary(t, []int32{-3, 0, 4}, sign)
	requireInDelta(t, []int32{-1, 0, 1}, got, 0)

	got = execUnary(t, []uint8{0, 5}, sign)
	requireInDelta(t, []uint8{0, 1}, got, 0)

	// Booleans are promoted to the device's Uint8 before taking the sign.
	got = execUnary(t, []bool{false, true}, sign)
	requireInDelta(t, []uint8{0, 1}, got, 0)

	// BuildSgn on real dtypes is BuildSign.
	got = execUnary(t, []float32{-3, float32(math.NaN()), 4}, func(x *Node) *Node {
		return BuildSgn(x, device)
	})
	requireInDelta(t, []float32{-1, 0, 1}, got, 0)
}

func TestBuildAbs(t *testing.T) {
	got := execUnary(t, []int32{-3, 0, 4}, BuildAbs)
	requireInDelta(t, []int32{3, 0, 4}, got, 0)

	// Unsigned dtypes pass through without any op emitted.
	backend := graphtest.BuildTestBackend()
	graphtest.RunGraph(t, backend, []any{[]uint16{0, 5}},
		func(_ *Graph, inputs []*Node) []*Node {
			require.Same(t, inputs[0], BuildAbs(inputs[0]))
			return []*Node{inputs[0]}
		})
}

func TestBuildRrelu(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	const lower, upper = 0.125, 0.5
	inputs := []float32{-4, -2, -1, 0, 1, 2, 4}

	results := graphtest.RunGraph(t, backend, []any{inputs},
		func(g *Graph, ins []*Node) []*Node {
			output, noise, _ := BuildRrelu(ins[0], RNGStateFromSeed(g, 42), lower, upper, true)
			return []*Node{output, noise}
		})
	output, noise := flatFloat32(t, results[0]), flatFloat32(t, results[1])
	for ii, x := range inputs {
		if x > 0 {
			require.Equal(t, float32(1), noise[ii])
			require.Equal(t, x, output[ii])
			continue
		}
		require.GreaterOrEqual(t, noise[ii], float32(lower))
		require.LessOrEqual(t, noise[ii], float32(upper))
		require.InDelta(t, x*noise[ii], output[ii], 1e-6)
	}

	// Evaluation mode: fixed slope, all-zeros noise.
	results = graphtest.RunGraph(t, backend, []any{inputs},
		func(g *Graph, ins []*Node) []*Node {
			output, noise, _ := BuildRrelu(ins[0], RNGStateFromSeed(g, 42), lower, upper, false)
			backward := BuildRreluBackward(OnesLike(ins[0]), ins[0], noise, lower, upper, false)
			return []*Node{output, noise, backward}
		})
	const slope = (lower + upper) / 2
	want := make([]float32, len(inputs))
	wantBackward := make([]float32, len(inputs))
	for ii, x := range inputs {
		if x > 0 {
			want[ii], wantBackward[ii] = x, 1
		} else {
			want[ii], wantBackward[ii] = slope*x, slope
		}
	}
	requireInDelta(t, want, results[0], 1e-6)
	requireInDelta(t, make([]float32, len(inputs)), results[1], 0)
	requireInDelta(t, wantBackward, results[2], 1e-6)
}
