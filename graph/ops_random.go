package graph

import (
	"math"
	"math/rand/v2"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// RNGStateFromSeed creates a constant random number generator state node, deterministically
// initialized from the given seed. The state is consumed and renewed by each sampling op.
func RNGStateFromSeed(g *Graph, seed int64) *Node {
	rngSrc := rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))
	state := make([]uint64, backends.RNGStateShape.Size())
	for ii := range state {
		state[ii] = rngSrc.Uint64()
	}
	return Const(g, state)
}

// RNGState creates a random number generator state node initialized from a random seed.
func RNGState(g *Graph) *Node {
	return RNGStateFromSeed(g, rand.Int64())
}

func validateRNGState(state *Node) {
	if !state.Shape().Equal(backends.RNGStateShape) {
		Panicf("invalid random number generator state %s, expected shape %s",
			state.Shape(), backends.RNGStateShape)
	}
}

// RandomBits generates random bits for the given integer shape. It returns the updated
// random number generator state and the sampled values.
func RandomBits(state *Node, shape shapes.Shape) (newState, values *Node) {
	g := validateBuildingGraphFromInputs(state)
	validateRNGState(state)
	if !shape.DType.IsInt() {
		Panicf("RandomBits requires an integer dtype, got shape %s", shape)
	}
	stateOp, valuesOp, err := g.builder.RNGBitGenerator(state.outputOp, shape)
	newState = g.newNode("RNGBitGenerator", stateOp, err, state)
	values = g.newNode("RNGBitGenerator", valuesOp, nil, state)
	return
}

// RandomUniform generates values uniformly sampled from [0, 1) with the given shape,
// which must be of a float dtype. It returns the updated random number generator state
// and the sampled values.
//
// Float16 and BFloat16 values are sampled as Float32 and converted down.
func RandomUniform(state *Node, shape shapes.Shape) (newState, values *Node) {
	_ = validateBuildingGraphFromInputs(state)
	validateRNGState(state)
	switch shape.DType {
	case dtypes.Float64:
		var bits *Node
		newState, bits = RandomBits(state, shapes.Make(dtypes.Uint64, shape.Dimensions...))
		values = MulScalar(ConvertDType(bits, dtypes.Float64), math.Exp2(-64))
		values = MinScalar(values, math.Nextafter(1.0, 0.0))
	case dtypes.Float32:
		var bits *Node
		newState, bits = RandomBits(state, shapes.Make(dtypes.Uint32, shape.Dimensions...))
		values = MulScalar(ConvertDType(bits, dtypes.Float32), math.Exp2(-32))
		values = MinScalar(values, float64(math.Nextafter32(1.0, 0.0)))
	case dtypes.Float16, dtypes.BFloat16:
		newState, values = RandomUniform(state, shapes.Make(dtypes.Float32, shape.Dimensions...))
		values = ConvertDType(values, shape.DType)
	default:
		Panicf("RandomUniform requires a float dtype, got shape %s", shape)
	}
	return
}
