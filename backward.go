package elwise

import (
	. "github.com/gomlx/elwise/graph"
)

// BuildShrinkBackward returns the shared gradient of BuildHardshrink and
// BuildSoftshrink: 0 where input is in [-lambda, lambda], and grad elsewhere.
func BuildShrinkBackward(grad, input *Node, lambda float64) *Node {
	return Where(Between(input, -lambda, lambda), scalarOf(grad, 0), grad)
}

// BuildHardSigmoidBackward returns grad/6 where input is in [-3, 3], and 0 elsewhere.
func BuildHardSigmoidBackward(grad, input *Node) *Node {
	return Where(
		Between(input, -3, 3),
		DivScalar(grad, 6),
		scalarOf(grad, 0))
}

// BuildHardSwishBackward returns the gradient of BuildHardSwish: grad where
// input >= 3, grad*(input/3 + 0.5) where input is in [-3, 3], and 0 elsewhere.
//
// Note the boundary conventions: at input == 3 the non-strict >= 3 test wins and the
// gradient is grad, while the interior band is the closed interval [-3, 3]. The
// asymmetry is kept as is.
func BuildHardSwishBackward(grad, input *Node) *Node {
	stepVal := Where(
		Between(input, -3, 3),
		Mul(grad, AddScalar(DivScalar(input, 3), 0.5)),
		scalarOf(grad, 0))
	return Where(GreaterOrEqual(input, scalarOf(input, 3)), grad, stepVal)
}

// BuildHardtanhBackward returns grad where input is in [minVal, maxVal], and 0 elsewhere.
func BuildHardtanhBackward(grad, input *Node, minVal, maxVal float64) *Node {
	return Where(Between(input, minVal, maxVal), grad, scalarOf(grad, 0))
}

// BuildPreluBackward returns the gradients of BuildPrelu with respect to its input and
// weight, in that order: (grad, weight*grad) selected by the input sign for the input
// gradient, and (0, input*grad) for the weight gradient.
func BuildPreluBackward(grad, input, weight *Node) (gradInput, gradWeight *Node) {
	positive := GreaterThan(input, scalarOf(input, 0))
	gradInput = Where(positive, grad, Mul(weight, grad))
	gradWeight = Where(positive, scalarOf(grad, 0), Mul(input, grad))
	return
}
