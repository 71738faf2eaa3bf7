package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

func init() {
	setNodeExecutor(backends.OpTypeRNGBitGenerator, execRNGBitGenerator)
}

// splitMix64 is the splitmix64 mixer, used both to advance the rng state and to
// generate the random bits. It's not Philox, but the generator is backend-specific
// anyway: only the distribution of the bits matters.
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// execRNGBitGenerator computes one of the two outputs of an RNGBitGenerator call,
// according to the node's rngRole: both outputs are functions of the input state only,
// so they can be computed independently.
func execRNGBitGenerator(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error) {
	state := inputs[0].flat.([]uint64)
	if len(state) != backends.RNGStateShape.Size() {
		return nil, errors.Errorf("invalid rng state size %d", len(state))
	}
	output := backend.getBufferForShape(node.shape)
	switch node.data.(rngRole) {
	case rngRoleState:
		outputFlat := output.flat.([]uint64)
		for ii, value := range state {
			outputFlat[ii] = splitMix64(value + uint64(ii) + 1)
		}
	case rngRoleValues:
		// The bits stream is seeded deterministically from the state.
		seed := splitMix64(state[0]) ^ splitMix64(state[1]<<1) ^ splitMix64(state[2]<<2)
		size := node.shape.Size()
		bits := make([]uint64, size)
		for ii := range bits {
			seed = splitMix64(seed)
			bits[ii] = seed
		}
		switch node.shape.DType {
		case dtypes.Uint8:
			outputFlat := output.flat.([]uint8)
			for ii, b := range bits {
				outputFlat[ii] = uint8(b)
			}
		case dtypes.Uint16:
			outputFlat := output.flat.([]uint16)
			for ii, b := range bits {
				outputFlat[ii] = uint16(b)
			}
		case dtypes.Uint32:
			outputFlat := output.flat.([]uint32)
			for ii, b := range bits {
				outputFlat[ii] = uint32(b)
			}
		case dtypes.Uint64:
			outputFlat := output.flat.([]uint64)
			copy(outputFlat, bits)
		case dtypes.Int8:
			outputFlat := output.flat.([]int8)
			for ii, b := range bits {
				outputFlat[ii] = int8(b)
			}
		case dtypes.Int16:
			outputFlat := output.flat.([]int16)
			for ii, b := range bits {
				outputFlat[ii] = int16(b)
			}
		case dtypes.Int32:
			outputFlat := output.flat.([]int32)
			for ii, b := range bits {
				outputFlat[ii] = int32(b)
			}
		case dtypes.Int64:
			outputFlat := output.flat.([]int64)
			for ii, b := range bits {
				outputFlat[ii] = int64(b)
			}
		default:
			backend.putBuffer(output)
			return nil, errors.Errorf("unsupported dtype %s for op %s in backend %s",
				node.shape.DType, node.opType, BackendName)
		}
	}
	return output, nil
}
