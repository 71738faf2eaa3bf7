package elwise

import (
	. "github.com/gomlx/elwise/graph"
	. "github.com/gomlx/exceptions"
)

// Kind is the comparison operator tag Compare dispatches on.
type Kind int

//go:generate go tool enumer -type=Kind -trimprefix=Kind -output=gen_kind_enumer.go comparison.go

const (
	// KindNe compares not-equal. Per IEEE 754, NaN is not equal to anything, itself included.
	KindNe Kind = iota
	// KindEq compares equal.
	KindEq
	// KindGe compares greater-or-equal.
	KindGe
	// KindLe compares less-or-equal.
	KindLe
	// KindGt compares greater-than.
	KindGt
	// KindLt compares less-than.
	KindLt
)

// BuildComparisonOp builds the element-wise comparison of kind over input and other,
// returning a boolean node. Operands are promoted to a common dtype and
// broadcast-compatible shape first. An unknown kind panics: it indicates a caller bug,
// never a recoverable state.
func BuildComparisonOp(kind Kind, input, other *Node) *Node {
	input, other = promote(input, other)
	switch kind {
	case KindNe:
		return NotEqual(input, other)
	case KindEq:
		return Equal(input, other)
	case KindGe:
		return GreaterOrEqual(input, other)
	case KindLe:
		return LessOrEqual(input, other)
	case KindGt:
		return GreaterThan(input, other)
	case KindLt:
		return LessThan(input, other)
	}
	Panicf("BuildComparisonOp: invalid comparison kind %s", kind)
	return nil
}

// Between returns the element-wise test lower <= input <= upper, with the bounds
// materialized as scalar constants of input's dtype.
func Between(input *Node, lower, upper float64) *Node {
	g := input.Graph()
	dtype := input.DType()
	return LogicalAnd(
		GreaterOrEqual(input, Scalar(g, dtype, lower)),
		LessOrEqual(input, Scalar(g, dtype, upper)))
}
