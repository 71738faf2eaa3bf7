package elwise

import (
	"github.com/gomlx/elwise/backends"
	. "github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/types"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Device describes which dtypes an execution backend can natively store. It replaces
// any notion of an ambient "current device": callers thread it explicitly into the
// conversions that need backend-specific dtype resolution.
type Device struct {
	supported types.Set[dtypes.DType]
}

// DeviceFromCapabilities builds a Device from a backend's advertised capabilities.
func DeviceFromCapabilities(capabilities backends.Capabilities) Device {
	supported := types.MakeSet[dtypes.DType](len(capabilities.DTypes))
	for dtype, ok := range capabilities.DTypes {
		if ok {
			supported.Insert(dtype)
		}
	}
	return Device{supported: supported}
}

// DeviceWithDTypes builds a Device supporting exactly the given dtypes.
func DeviceWithDTypes(supported ...dtypes.DType) Device {
	return Device{supported: types.SetWith(supported...)}
}

// Supports reports whether the device natively stores the given dtype.
func (d Device) Supports(dtype dtypes.DType) bool {
	return d.supported.Has(dtype)
}

// DTypeFor resolves the dtype actually used to store the given dtype on the device:
// unsupported 64-bit dtypes fall back to their 32-bit renditions, unsupported 16-bit
// floats to Float32. A dtype with no fallback is returned unchanged.
func (d Device) DTypeFor(dtype dtypes.DType) dtypes.DType {
	if d.supported.Has(dtype) {
		return dtype
	}
	switch dtype {
	case dtypes.Float64:
		return dtypes.Float32
	case dtypes.Complex128:
		return dtypes.Complex64
	case dtypes.Int64:
		return dtypes.Int32
	case dtypes.Uint64:
		return dtypes.Uint32
	case dtypes.Float16, dtypes.BFloat16:
		return dtypes.Float32
	}
	return dtype
}

// ConvertTo converts x to the given dtype. When x is already of that dtype it is
// returned unchanged and no instruction is emitted.
func ConvertTo(x *Node, to dtypes.DType) *Node {
	return ConvertDType(x, to)
}

// MaybeConvertTo normalizes an auxiliary operand (a threshold, slope or other scalar
// companion) to the given dtype, since the primitive instruction set forbids
// mixed-dtype operands. Identity when the dtypes already match.
func MaybeConvertTo(x *Node, to dtypes.DType) *Node {
	return ConvertDType(x, to)
}

// rawMask builds the bitmask that truncates a raw integer value of x's dtype down to
// narrowBytes: all ones over the narrow width. For signed dtypes the mask's top narrow
// bit is replicated upward by shifting it to the top of the raw width and arithmetic
// shifting back, reproducing two's-complement sign extension.
func rawMask(g *Graph, dtype dtypes.DType, narrowBytes int) *Node {
	maskValue := uint64(1)<<(8*narrowBytes) - 1
	mask := ConstAsDType(g, dtype, maskValue)
	if !dtype.IsUnsigned() {
		shift := ConstAsDType(g, dtype, 8*(dtype.Size()-narrowBytes))
		mask = ShiftRightArithmetic(ShiftLeft(mask, shift), shift)
	}
	return mask
}

// MaskData re-truncates x, an integer value stored in a raw dtype wider than its
// logical dtype narrow, after an operation that may have corrupted the unused high
// bits. It is a no-op unless both dtypes are integral or when the widths match; a
// narrow dtype wider than the raw dtype is a backend-configuration bug and panics.
func MaskData(x *Node, narrow dtypes.DType) *Node {
	raw := x.DType()
	if !raw.IsInt() || !narrow.IsInt() {
		return x
	}
	if narrow.Size() > raw.Size() {
		Panicf("MaskData: logical dtype %s is wider than its raw storage dtype %s", narrow, raw)
	}
	if narrow.Size() == raw.Size() {
		return x
	}
	return BitwiseAnd(x, rawMask(x.Graph(), raw, narrow.Size()))
}

// ConvertToRaw converts x between raw on-device representations: it unmasks x from
// its raw storage dtype rawFrom to the logical view from, converts the logical dtypes
// from to to, and re-masks the result into the raw storage dtype rawTo.
func ConvertToRaw(x *Node, from, rawFrom, to, rawTo dtypes.DType) *Node {
	if from != rawFrom {
		x = ConvertTo(x, from)
	}
	x = ConvertTo(x, to)
	if to != rawTo {
		x = MaskData(ConvertTo(x, rawTo), to)
	}
	return x
}

// ConvertToNumeric promotes boolean values to the device's rendition of Uint8, so
// they can participate in arithmetic; any other dtype passes through unchanged.
func ConvertToNumeric(x *Node, device Device) *Node {
	if x.DType() == dtypes.Bool {
		return ConvertTo(x, device.DTypeFor(dtypes.Uint8))
	}
	return x
}

// CastToScalarType converts x to the explicitly requested dtype, or, when dtype is
// dtypes.InvalidDType, applies only the boolean-to-numeric promotion. This is the
// single entry point operator lowerings use to decide between an explicit cast and
// plain numeric-safety promotion.
func CastToScalarType(x *Node, dtype dtypes.DType, device Device) *Node {
	if dtype == dtypes.InvalidDType {
		return ConvertToNumeric(x, device)
	}
	return ConvertTo(x, dtype)
}
