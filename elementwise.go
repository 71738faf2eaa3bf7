package elwise

import (
	"math"

	. "github.com/gomlx/elwise/graph"
)

const (
	// Fixed SELU coefficients, see "Self-Normalizing Neural Networks"
	// (https://arxiv.org/abs/1706.02515).
	seluAlpha = 1.6732632423543772848170429916717
	seluScale = 1.0507009873554804934193349852946
)

// buildThreshold selects output where input > threshold, and the constant value elsewhere.
// Forward and backward threshold differ only on which node is selected, hence the split.
func buildThreshold(input, output *Node, threshold, value float64) *Node {
	return Where(
		GreaterThan(input, scalarOf(input, threshold)),
		output,
		Scalar(output.Graph(), output.DType(), value))
}

// BuildThreshold returns input where input > threshold, and value elsewhere.
func BuildThreshold(input *Node, threshold, value float64) *Node {
	return buildThreshold(input, input, threshold, value)
}

// BuildThresholdBackward returns grad where input > threshold, and 0 elsewhere.
func BuildThresholdBackward(grad, input *Node, threshold float64) *Node {
	return buildThreshold(input, grad, threshold, 0)
}

// BuildRelu returns max(input, 0).
func BuildRelu(input *Node) *Node {
	return MaxScalar(input, 0)
}

// BuildHardshrink returns 0 where input is in [-lambda, lambda], and input elsewhere.
func BuildHardshrink(input *Node, lambda float64) *Node {
	return Where(Between(input, -lambda, lambda), scalarOf(input, 0), input)
}

// BuildSoftshrink returns 0 where input is in [-lambda, lambda], input-lambda where
// input > lambda and input+lambda where input < -lambda.
func BuildSoftshrink(input *Node, lambda float64) *Node {
	zero := scalarOf(input, 0)
	return Where(
		Between(input, -lambda, lambda),
		zero,
		Where(GreaterThan(input, zero),
			SubScalar(input, lambda),
			AddScalar(input, lambda)))
}

// BuildHardSigmoid returns min(max(input+3, 0), 6) / 6.
func BuildHardSigmoid(input *Node) *Node {
	return DivScalar(ClampScalar(AddScalar(input, 3), 0, 6), 6)
}

// BuildHardSwish returns 0 where input < -3, input where input > 3 and
// input*(input+3)/6 in between.
func BuildHardSwish(input *Node) *Node {
	zero := scalarOf(input, 0)
	return Where(
		LessThan(input, scalarOf(input, -3)),
		zero,
		Where(GreaterThan(input, scalarOf(input, 3)),
			input,
			DivScalar(Mul(input, AddScalar(input, 3)), 6)))
}

// BuildLeakyRelu returns input where input > 0, and negativeSlope*input elsewhere.
func BuildLeakyRelu(input *Node, negativeSlope float64) *Node {
	return BuildLeakyReluBackward(input, input, negativeSlope)
}

// BuildLeakyReluBackward returns grad where input > 0, and negativeSlope*grad elsewhere.
func BuildLeakyReluBackward(grad, input *Node, negativeSlope float64) *Node {
	return Where(
		GreaterThan(input, scalarOf(input, 0)),
		grad,
		MulScalar(grad, negativeSlope))
}

// BuildRrelu returns the randomized leaky ReLU of input along with the per-element
// noise tensor its backward pass needs and the updated random number generator state.
//
// In training mode the negative slope of each element is sampled uniformly from
// [lower, upper): noise is 1 where input > 0 and the sampled slope elsewhere, and the
// output is input*noise. In evaluation mode the slope is fixed at (lower+upper)/2, the
// returned noise is all zeros (kept for shape compatibility) and rngState is returned
// unchanged.
func BuildRrelu(input, rngState *Node, lower, upper float64, training bool) (output, noise, newState *Node) {
	mustFloat(input)
	g := input.Graph()
	if training {
		var sampled *Node
		newState, sampled = RandomUniform(rngState, input.Shape())
		slope := AddScalar(MulScalar(sampled, upper-lower), lower)
		noise = Where(GreaterThan(input, scalarOf(input, 0)), ScalarOne(g, input.DType()), slope)
		output = Mul(input, noise)
		return
	}
	negativeSlope := (lower + upper) / 2
	output = BuildLeakyRelu(input, negativeSlope)
	noise = ZerosLike(input)
	newState = rngState
	return
}

// BuildRreluBackward returns the gradient of BuildRrelu: grad*noise in training mode,
// the leaky ReLU gradient with the fixed slope (lower+upper)/2 otherwise.
func BuildRreluBackward(grad, input, noise *Node, lower, upper float64, training bool) *Node {
	if training {
		return Mul(grad, noise)
	}
	return BuildLeakyReluBackward(grad, input, (lower+upper)/2)
}

// BuildPrelu returns input where input > 0, and weight*input elsewhere. Input and
// weight are promoted to a common dtype.
func BuildPrelu(input, weight *Node) *Node {
	input, weight = promote(input, weight)
	return Where(
		GreaterThan(input, scalarOf(input, 0)),
		input,
		Mul(weight, input))
}

// BuildSigmoid returns the logistic function 1/(1+exp(-input)).
func BuildSigmoid(input *Node) *Node {
	return Sigmoid(input)
}

// BuildSiLUBackward returns the gradient of input*sigmoid(input):
// grad * sigmoid(input) * (1 + input*(1-sigmoid(input))).
func BuildSiLUBackward(grad, input *Node) *Node {
	sigmoid := Sigmoid(input)
	return Mul(grad, Mul(sigmoid, AddScalar(Mul(input, OneMinus(sigmoid)), 1)))
}

// BuildReciprocal returns 1/input.
func BuildReciprocal(input *Node) *Node {
	return Div(scalarOf(input, 1), input)
}

// BuildSign returns the element-wise sign of input, mapping NaN to 0. Boolean inputs
// are first promoted via ConvertToNumeric, so their sign is 0 or 1 in the device's
// rendition of Uint8. For unsigned dtypes, where there is no negative branch, it
// returns input > 0 converted back to input's dtype.
func BuildSign(input *Node, device Device) *Node {
	input = ConvertToNumeric(input, device)
	if input.DType().IsUnsigned() {
		return ConvertDType(GreaterThan(input, scalarOf(input, 0)), input.DType())
	}
	sign := Sign(input)
	return Where(NotEqual(input, input), scalarOf(input, 0), sign)
}

// BuildSgn returns the element-wise sign of input. For complex dtypes it returns
// input/|input|, replaced by NaN wherever that has a non-finite real or imaginary
// component; for real dtypes it behaves like BuildSign.
func BuildSgn(input *Node, device Device) *Node {
	if !input.DType().IsComplex() {
		return BuildSign(input, device)
	}
	sign := Sign(input)
	isFinite := LogicalAnd(IsFinite(Real(sign)), IsFinite(Imag(sign)))
	nan := Scalar(input.Graph(), input.DType().RealDType(), math.NaN())
	return Where(isFinite, sign, Complex(nan, nan))
}

// BuildAbs returns the element-wise absolute value of input. Unsigned dtypes are
// returned unchanged.
func BuildAbs(input *Node) *Node {
	if input.DType().IsUnsigned() {
		return input
	}
	return Abs(input)
}

// BuildSoftplus returns log1p(exp(beta*input))/beta, or input itself where
// beta*input > threshold, guarding the exponential against overflow.
func BuildSoftplus(input *Node, beta, threshold float64) *Node {
	mustFloat(input)
	scaled := MulScalar(input, beta)
	return Where(
		GreaterThan(scaled, scalarOf(input, threshold)),
		input,
		DivScalar(Log1p(Exp(scaled)), beta))
}

// BuildGelu returns the exact (erf-based) Gaussian error linear unit:
// input * 0.5 * (erf(input/sqrt(2)) + 1).
func BuildGelu(input *Node) *Node {
	mustFloat(input)
	return MulScalar(Mul(input, AddScalar(Erf(MulScalar(input, 1/math.Sqrt2)), 1)), 0.5)
}

// BuildGeluBackward returns the gradient of BuildGelu:
// grad * (0.5*(1+erf(input/sqrt(2))) + input*exp(-input²/2)/sqrt(2*pi)).
func BuildGeluBackward(grad, input *Node) *Node {
	kAlpha := 2 / math.Sqrt(math.Pi) * (1 / math.Sqrt2) * 0.5
	scratch := Erf(MulScalar(input, 1/math.Sqrt2))
	dInput := Exp(MulScalar(Mul(input, input), -0.5))
	return Mul(grad,
		Add(MulScalar(AddScalar(scratch, 1), 0.5),
			MulScalar(Mul(input, dInput), kAlpha)))
}

// BuildCelu returns max(0, input) + min(0, alpha*(exp(input/alpha)-1)).
func BuildCelu(input *Node, alpha float64) *Node {
	return Add(
		MaxScalar(input, 0),
		MinScalar(MulScalar(Expm1(DivScalar(input, alpha)), alpha), 0))
}

// BuildSelu returns scale*(max(0, input) + min(0, alpha*(exp(input)-1))) with the
// fixed self-normalizing coefficients.
func BuildSelu(input *Node) *Node {
	return MulScalar(
		Add(MaxScalar(input, 0),
			MinScalar(MulScalar(Expm1(input), seluAlpha), 0)),
		seluScale)
}

// BuildLogSigmoid returns log(sigmoid(input)) computed in a numerically stable form,
// along with the intermediate buffer exp(-max(0,-input)) + exp(-input-max(0,-input))
// that BuildLogSigmoidBackward consumes.
func BuildLogSigmoid(input *Node) (output, buffer *Node) {
	mustFloat(input)
	negInput := Neg(input)
	maxElem := MaxScalar(negInput, 0)
	buffer = Add(Exp(Neg(maxElem)), Exp(Sub(negInput, maxElem)))
	output = Neg(Add(maxElem, Log(buffer)))
	return
}

// BuildLogSigmoidBackward returns the gradient of BuildLogSigmoid given the forward
// pass' buffer output.
func BuildLogSigmoidBackward(grad, input, buffer *Node) *Node {
	zero := scalarOf(input, 0)
	one := scalarOf(input, 1)
	minusOne := scalarOf(input, -1)
	negative := LessThan(input, zero)
	maxDeriv := Where(negative, minusOne, zero)
	sign := Where(negative, one, minusOne)
	return Mul(grad,
		Sub(Neg(maxDeriv),
			Mul(sign, Div(SubScalar(buffer, 1), buffer))))
}

// BuildLogit returns log(input/(1-input)), the inverse of the logistic function.
// If eps >= 0, input is first clamped to [eps, 1-eps]. Inputs outside [0, 1]
// yield NaN regardless of eps: the out-of-domain check is taken on the original
// input, before any clamping.
func BuildLogit(input *Node, eps float64) *Node {
	mustFloat(input)
	invalid := LogicalOr(
		LessThan(input, scalarOf(input, 0)),
		GreaterThan(input, scalarOf(input, 1)))
	clamped := input
	if eps >= 0 {
		clamped = ClampScalar(input, eps, 1-eps)
	}
	return Where(invalid,
		scalarOf(input, math.NaN()),
		Log(Div(clamped, OneMinus(clamped))))
}

// BuildElu returns scale*input where input > 0, and scale*alpha*(exp(input*inputScale)-1)
// elsewhere.
func BuildElu(input *Node, alpha, scale, inputScale float64) *Node {
	return Where(
		LessOrEqual(input, scalarOf(input, 0)),
		MulScalar(Expm1(MulScalar(input, inputScale)), alpha*scale),
		MulScalar(input, scale))
}

// BuildEluBackward returns the gradient of BuildElu. It branches on the sign of the
// forward pass' output, which is already available at backward time: grad*scale on the
// positive branch, grad*(output+alpha*scale)*inputScale on the other.
func BuildEluBackward(grad, output *Node, alpha, scale, inputScale float64) *Node {
	return Where(
		GreaterThan(output, scalarOf(output, 0)),
		MulScalar(grad, scale),
		MulScalar(Mul(grad, AddScalar(output, alpha*scale)), inputScale))
}
