package elwise

import (
	"testing"

	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/graph/graphtest"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestConvertToIdentity(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Const(g, []float32{1, 2})
	// Identity conversions return the same node, no instruction is emitted.
	require.Same(t, x, ConvertTo(x, dtypes.Float32))
	require.Same(t, x, MaybeConvertTo(x, dtypes.Float32))
	require.NotSame(t, x, ConvertTo(x, dtypes.Float64))
}

func TestConvertTo(t *testing.T) {
	got := execUnary(t, []float32{-1.5, 0, 2.5}, func(x *Node) *Node {
		return ConvertTo(x, dtypes.Int32)
	})
	requireInDelta(t, []int32{-1, 0, 2}, got, 0)
}

func TestMaskDataUnsigned(t *testing.T) {
	// A Uint8 logical value stored in Uint32 keeps only its low byte.
	got := execUnary(t, []uint32{0x1FF, 0xABCD00FE, 0x7F}, func(x *Node) *Node {
		return MaskData(x, dtypes.Uint8)
	})
	requireInDelta(t, []uint32{0xFF, 0xFE, 0x7F}, got, 0)
}

func TestMaskDataSigned(t *testing.T) {
	// The signed mask is sign extended from the top bit of the narrow width: for an
	// Int8 stored in Int32 it covers the whole word, so sign-correct wide values pass
	// through unchanged.
	got := execUnary(t, []int32{-123, 127, -128}, func(x *Node) *Node {
		return MaskData(x, dtypes.Int8)
	})
	requireInDelta(t, []int32{-123, 127, -128}, got, 0)
}

func TestMaskDataNoOpAndFatal(t *testing.T) {
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())

	// Non-integral dtypes pass through.
	x := Const(g, []float32{1, 2})
	require.Same(t, x, MaskData(x, dtypes.Float32))

	// Same-width pairs pass through.
	y := Const(g, []int32{1, 2})
	require.Same(t, y, MaskData(y, dtypes.Int32))
	require.Same(t, y, MaskData(y, dtypes.Uint32))

	// A logical dtype wider than its raw storage is a contract violation.
	require.Panics(t, func() { MaskData(y, dtypes.Int64) })
}

func TestConvertToRaw(t *testing.T) {
	// A Uint8 logical value carried in Uint32 with corrupted high bits, converted to
	// an Int16 carried in Int32: unmask to Uint8, convert, re-mask into Int32.
	got := execUnary(t, []uint32{0x1FF, 0x30}, func(x *Node) *Node {
		return ConvertToRaw(x, dtypes.Uint8, dtypes.Uint32, dtypes.Int16, dtypes.Int32)
	})
	requireInDelta(t, []int32{0xFF, 0x30}, got, 0)

	// Matching logical/raw pairs skip the masking stages.
	got = execUnary(t, []int32{-3, 4}, func(x *Node) *Node {
		return ConvertToRaw(x, dtypes.Int32, dtypes.Int32, dtypes.Float32, dtypes.Float32)
	})
	requireInDelta(t, []float32{-3, 4}, got, 0)
}

func TestMaskRoundTrip(t *testing.T) {
	// Masking an already-valid narrow value is idempotent.
	inputs := []uint32{0, 1, 0x7F, 0xFF}
	got := execUnary(t, inputs, func(x *Node) *Node {
		return MaskData(MaskData(x, dtypes.Uint8), dtypes.Uint8)
	})
	requireInDelta(t, inputs, got, 0)
}

func TestConvertToNumeric(t *testing.T) {
	device := DeviceFromCapabilities(graphtest.BuildTestBackend().Capabilities())

	got := execUnary(t, []bool{false, true, true}, func(x *Node) *Node {
		return ConvertToNumeric(x, device)
	})
	require.Equal(t, dtypes.Uint8, got.DType())
	requireInDelta(t, []uint8{0, 1, 1}, got, 0)

	// Non-boolean dtypes pass through.
	backend := graphtest.BuildTestBackend()
	g := NewGraph(backend, t.Name())
	x := Const(g, []float32{1, 2})
	require.Same(t, x, ConvertToNumeric(x, device))
}

func TestCastToScalarType(t *testing.T) {
	device := DeviceFromCapabilities(graphtest.BuildTestBackend().Capabilities())

	// An explicit target dtype wins.
	got := execUnary(t, []bool{false, true}, func(x *Node) *Node {
		return CastToScalarType(x, dtypes.Float32, device)
	})
	requireInDelta(t, []float32{0, 1}, got, 0)

	// Without one, only the boolean promotion applies.
	got = execUnary(t, []bool{false, true}, func(x *Node) *Node {
		return CastToScalarType(x, dtypes.InvalidDType, device)
	})
	require.Equal(t, dtypes.Uint8, got.DType())
}

func TestDeviceDTypeFor(t *testing.T) {
	device := DeviceWithDTypes(dtypes.Bool, dtypes.Uint8, dtypes.Int32, dtypes.Float32)
	require.True(t, device.Supports(dtypes.Float32))
	require.False(t, device.Supports(dtypes.Float64))

	require.Equal(t, dtypes.Float32, device.DTypeFor(dtypes.Float32))
	require.Equal(t, dtypes.Float32, device.DTypeFor(dtypes.Float64))
	require.Equal(t, dtypes.Float32, device.DTypeFor(dtypes.Float16))
	require.Equal(t, dtypes.Float32, device.DTypeFor(dtypes.BFloat16))
	require.Equal(t, dtypes.Int32, device.DTypeFor(dtypes.Int64))
	require.Equal(t, dtypes.Uint32, device.DTypeFor(dtypes.Uint64))
	require.Equal(t, dtypes.Complex64, device.DTypeFor(dtypes.Complex128))
	// No fallback defined: returned unchanged.
	require.Equal(t, dtypes.Int16, device.DTypeFor(dtypes.Int16))
}
