package elwise

import (
	. "github.com/gomlx/elwise/graph"
)

// promoteWithAlpha applies the three-way promotion the alpha-scaled arithmetic family
// uses: (input, other), then (input, alpha), then (input, other) again. The repeated
// pairwise passes guarantee all three operands end on a mutually compatible dtype even
// when they start with three different ones.
func promoteWithAlpha(input, other, alpha *Node) (*Node, *Node, *Node) {
	input, other = promote(input, other)
	input, alpha = promote(input, alpha)
	input, other = promote(input, other)
	return input, other, alpha
}

// BuildAdd returns input + alpha*other, after promoting the three operands to a
// common dtype.
func BuildAdd(input, other, alpha *Node) *Node {
	input, other, alpha = promoteWithAlpha(input, other, alpha)
	return Add(input, Mul(other, alpha))
}

// BuildSub returns input - alpha*other, after promoting the three operands to a
// common dtype.
func BuildSub(input, other, alpha *Node) *Node {
	input, other, alpha = promoteWithAlpha(input, other, alpha)
	return Sub(input, Mul(other, alpha))
}

// BuildRsub returns other - alpha*input, after promoting the three operands to a
// common dtype.
func BuildRsub(input, other, alpha *Node) *Node {
	input, other, alpha = promoteWithAlpha(input, other, alpha)
	return Sub(other, Mul(input, alpha))
}

// BuildMul returns input*other on the promoted common dtype.
func BuildMul(input, other *Node) *Node {
	input, other = promote(input, other)
	return Mul(input, other)
}

// BuildDiv returns input/other on the promoted common dtype.
func BuildDiv(input, other *Node) *Node {
	input, other = promote(input, other)
	return Div(input, other)
}

// BuildLerp returns start + weight*(end-start), the linear interpolation between
// start and end, with the same three-way promotion as the alpha-scaled family.
func BuildLerp(start, end, weight *Node) *Node {
	start, end, weight = promoteWithAlpha(start, end, weight)
	return Add(start, Mul(weight, Sub(end, start)))
}
