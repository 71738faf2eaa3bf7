// Package elwise is a library of element-wise operator lowerings: each Build* function
// composes primitive graph instructions (comparison, select, arithmetic,
// transcendental) into the forward or backward formula of an activation function or
// arithmetic operator, over deferred-execution graph nodes.
//
// Nothing here executes: every function is a pure transformation that appends nodes
// to the graph the operands belong to and returns new handles. Execution is the graph
// and backends packages' business.
//
// Value-domain edge cases are encoded in the numeric result (NaN for out-of-domain
// logit inputs, sign of NaN is 0) and never abort; contract violations (an invalid
// comparison Kind, a raw integer width narrower than the logical width) panic.
//
// Functions taking two or more tensor operands promote them to a common dtype first,
// see BuildAdd and BuildLerp; functions taking host scalars materialize them as
// constants of the operand's dtype. Lowerings with multiple outputs (BuildRrelu,
// BuildLogSigmoid, BuildPreluBackward) return them in a fixed positional order that
// backward functions rely on.
//
// Graph construction is not safe for concurrent use of the same graph; independent
// graphs can be built concurrently without coordination.
package elwise
