package elwise

import (
	. "github.com/gomlx/elwise/graph"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// promotedDType returns the common dtype two operands are implicitly promoted to
// before a binary primitive. The lattice follows the usual numeric promotion rules:
// bool promotes to any numeric kind, integers promote to floats, floats to complex,
// and within a category the wider dtype wins. Mixed signed/unsigned integers promote
// to the signed dtype if it is strictly wider, else to the signed dtype twice the
// unsigned width (capped at Int64).
func promotedDType(a, b dtypes.DType) dtypes.DType {
	if a == b {
		return a
	}
	if a.IsComplex() || b.IsComplex() {
		if a.IsComplex() && b.IsComplex() {
			return widerOf(a, b)
		}
		if a.IsComplex() {
			return a
		}
		return b
	}
	if a.IsFloat() || b.IsFloat() {
		if a.IsFloat() && b.IsFloat() {
			if a.Size() == b.Size() {
				// Float16 and BFloat16 have no common 16-bit representation.
				return dtypes.Float32
			}
			return widerOf(a, b)
		}
		if a.IsFloat() {
			return a
		}
		return b
	}
	if a == dtypes.Bool {
		return b
	}
	if b == dtypes.Bool {
		return a
	}
	// Both integers.
	if a.IsUnsigned() == b.IsUnsigned() {
		return widerOf(a, b)
	}
	signed, unsigned := a, b
	if a.IsUnsigned() {
		signed, unsigned = b, a
	}
	if signed.Size() > unsigned.Size() {
		return signed
	}
	return signedIntOfSize(2 * unsigned.Size())
}

func widerOf(a, b dtypes.DType) dtypes.DType {
	if a.Size() >= b.Size() {
		return a
	}
	return b
}

func signedIntOfSize(bytes int) dtypes.DType {
	switch {
	case bytes <= 1:
		return dtypes.Int8
	case bytes <= 2:
		return dtypes.Int16
	case bytes <= 4:
		return dtypes.Int32
	default:
		return dtypes.Int64
	}
}

// promote converts a and b to their common promoted dtype. Shapes are left as is:
// the primitive instructions broadcast implicitly (dimensions must match or be 1, or
// an operand is a scalar).
func promote(a, b *Node) (*Node, *Node) {
	dtype := promotedDType(a.DType(), b.DType())
	return ConvertDType(a, dtype), ConvertDType(b, dtype)
}

// scalarOf creates a scalar constant with x's dtype.
func scalarOf(x *Node, value float64) *Node {
	return Scalar(x.Graph(), x.DType(), value)
}

// mustFloat panics unless x has a float dtype. The transcendental lowerings are only
// defined over floats.
func mustFloat(x *Node) {
	if !x.DType().IsFloat() {
		Panicf("operation requires a float operand, got %s", x.Shape())
	}
}
