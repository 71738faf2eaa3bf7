package simplego

import (
	"reflect"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/backends/shapeinference"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Builder keeps track of the computation graph being built: a flat list of nodes in
// DAG order (inputs always precede the nodes using them).
type Builder struct {
	backend  *Backend
	name     string
	compiled bool

	nodes  []*Node
	inputs []*Node
}

// Compile-time check that simplego.Builder implements backends.Builder.
var _ backends.Builder = &Builder{}

// Node represents the computation of an op in the Builder graph.
type Node struct {
	builder    *Builder
	builderIdx int
	opType     backends.OpType
	shape      shapes.Shape
	inputs     []*Node

	// data holds op-specific static information: the constant buffer for OpTypeConstant,
	// the parameter name for OpTypeParameter, broadcast axes, the rng output role, etc.
	data any
}

// Name of the computation being built.
func (b *Builder) Name() string { return b.name }

func (b *Builder) newNode(opType backends.OpType, shape shapes.Shape, inputs ...*Node) *Node {
	node := &Node{
		builder:    b,
		builderIdx: len(b.nodes),
		opType:     opType,
		shape:      shape,
		inputs:     inputs,
	}
	b.nodes = append(b.nodes, node)
	return node
}

// checkOps checks that the builder is valid and the ops were created by it, and returns
// them cast to *Node.
func (b *Builder) checkOps(opName string, ops ...backends.Op) ([]*Node, error) {
	if b == nil {
		return nil, errors.Errorf("%s: builder is nil", opName)
	}
	if b.compiled {
		return nil, errors.Errorf("%s: builder %q was already compiled", opName, b.name)
	}
	nodes := make([]*Node, len(ops))
	for ii, op := range ops {
		node, ok := op.(*Node)
		if !ok {
			return nil, errors.Errorf("%s: op #%d (%T) was not created by this backend (%s)",
				opName, ii, op, BackendName)
		}
		if node.builder != b {
			return nil, errors.Errorf("%s: op #%d was created by a different builder (%q)",
				opName, ii, node.builder.name)
		}
		nodes[ii] = node
	}
	return nodes, nil
}

func (b *Builder) checkDType(opName string, dtype dtypes.DType) error {
	if !Capabilities.DTypes[dtype] {
		return errors.Errorf("%s: dtype %s is not supported by backend %s", opName, dtype, BackendName)
	}
	return nil
}

// OpShape returns the shape of a computation Op.
func (b *Builder) OpShape(op backends.Op) (shapes.Shape, error) {
	nodes, err := b.checkOps("OpShape", op)
	if err != nil {
		return shapes.Invalid(), err
	}
	return nodes[0].shape, nil
}

// Parameter creates an input parameter for the computation.
func (b *Builder) Parameter(name string, shape shapes.Shape) (backends.Op, error) {
	if _, err := b.checkOps("Parameter"); err != nil {
		return nil, err
	}
	if err := b.checkDType("Parameter", shape.DType); err != nil {
		return nil, err
	}
	node := b.newNode(backends.OpTypeParameter, shape.Clone())
	node.data = name
	b.inputs = append(b.inputs, node)
	return node, nil
}

// Constant creates a constant in the graph with the given flat values and the shape
// defined by the dimensions.
func (b *Builder) Constant(flat any, dimensions ...int) (backends.Op, error) {
	if _, err := b.checkOps("Constant"); err != nil {
		return nil, err
	}
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("Constant: flat must be a slice, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("Constant: unsupported element type in %T", flat)
	}
	if err := b.checkDType("Constant", dtype); err != nil {
		return nil, err
	}
	shape := shapes.Make(dtype, dimensions...)
	if flatV.Len() != shape.Size() {
		return nil, errors.Errorf("Constant: flat has %d values, shape %s requires %d",
			flatV.Len(), shape, shape.Size())
	}
	buffer := b.backend.getBufferForShape(shape)
	reflect.Copy(reflect.ValueOf(buffer.flat), flatV)
	node := b.newNode(backends.OpTypeConstant, shape)
	node.data = buffer
	return node, nil
}

// Identity returns an Op whose output is the same as its input.
func (b *Builder) Identity(x backends.Op) (backends.Op, error) {
	nodes, err := b.checkOps("Identity", x)
	if err != nil {
		return nil, err
	}
	return b.newNode(backends.OpTypeIdentity, nodes[0].shape.Clone(), nodes[0]), nil
}

// addUnaryOp adds a generic unary op to the graph, with the shape inferred by shapeinference.
func (b *Builder) addUnaryOp(opType backends.OpType, x backends.Op) (backends.Op, error) {
	nodes, err := b.checkOps(opType.String(), x)
	if err != nil {
		return nil, err
	}
	if err := b.checkDType(opType.String(), nodes[0].shape.DType); err != nil {
		return nil, err
	}
	shape, err := shapeinference.UnaryOp(opType, nodes[0].shape)
	if err != nil {
		return nil, err
	}
	return b.newNode(opType, shape, nodes[0]), nil
}

// addBinaryOp adds a generic binary op to the graph, with the shape inferred by
// shapeinference -- hence accounting for implicit broadcasting.
func (b *Builder) addBinaryOp(opType backends.OpType, lhs, rhs backends.Op) (backends.Op, error) {
	nodes, err := b.checkOps(opType.String(), lhs, rhs)
	if err != nil {
		return nil, err
	}
	if err := b.checkDType(opType.String(), nodes[0].shape.DType); err != nil {
		return nil, err
	}
	shape, err := shapeinference.BinaryOp(opType, nodes[0].shape, nodes[1].shape)
	if err != nil {
		return nil, err
	}
	return b.newNode(opType, shape, nodes...), nil
}

// addComparisonOp adds a comparison op to the graph: same as addBinaryOp, but the
// output dtype is Bool.
func (b *Builder) addComparisonOp(opType backends.OpType, lhs, rhs backends.Op) (backends.Op, error) {
	nodes, err := b.checkOps(opType.String(), lhs, rhs)
	if err != nil {
		return nil, err
	}
	if err := b.checkDType(opType.String(), nodes[0].shape.DType); err != nil {
		return nil, err
	}
	shape, err := shapeinference.ComparisonOp(opType, nodes[0].shape, nodes[1].shape)
	if err != nil {
		return nil, err
	}
	return b.newNode(opType, shape, nodes...), nil
}

// Compile the computation built. After Compile the builder is no longer valid.
func (b *Builder) Compile(outputs ...backends.Op) (backends.Executable, error) {
	outputNodes, err := b.checkOps("Compile", outputs...)
	if err != nil {
		return nil, err
	}
	if len(outputNodes) == 0 {
		return nil, errors.Errorf("Compile: computation %q has no outputs", b.name)
	}
	b.compiled = true
	return newExecutable(b, outputNodes), nil
}
