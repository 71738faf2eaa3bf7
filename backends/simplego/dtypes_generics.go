package simplego

import (
	"golang.org/x/exp/constraints"
)

// PODIntegerConstraints are the plain Go integer types supported by the backend.
type PODIntegerConstraints interface {
	constraints.Signed | constraints.Unsigned
}

// PODSignedConstraints are the plain Go signed numeric types supported by the backend.
type PODSignedConstraints interface {
	constraints.Signed | constraints.Float
}

// PODFloatConstraints are the plain Go float types supported by the backend.
type PODFloatConstraints interface {
	constraints.Float
}

// PODNumericConstraints are the plain Go numeric types supported by the backend:
// no complex numbers, and Float16/BFloat16 are handled separately.
type PODNumericConstraints interface {
	constraints.Signed | constraints.Unsigned | constraints.Float
}

// SupportedTypesConstraints are the Go types the backend operates on (Float16 and
// BFloat16 are storage-only and handled with their own implementations).
type SupportedTypesConstraints interface {
	PODNumericConstraints | bool
}
