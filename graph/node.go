package graph

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// NodeId is a unique identifier of a Node within a Graph.
type NodeId int

// InvalidNodeId indicates a node that failed to be created or is not set.
const InvalidNodeId = NodeId(-1)

// Node is a handle to an op in a computation Graph. It is a immutable value, it
// should only be created by the graph ops functions (Add, Where, ConvertDType, etc.).
type Node struct {
	graph *Graph
	id    NodeId

	// outputOp is the backend's handle to the node's output.
	outputOp backends.Op
	shape    shapes.Shape

	// opName is the operation name, used for messages and pretty-printing only.
	opName     string
	inputNodes []*Node

	// parameterName is set only for parameter nodes.
	parameterName string
}

const opNameParameter = "Parameter"

// newNode creates a Node for the backend op and registers it in the graph. The op's
// shape is retrieved from the backend.
func (g *Graph) newNode(opName string, op backends.Op, err error, inputs ...*Node) *Node {
	if err != nil {
		Panicf("while building op %s: %+v", opName, err)
	}
	shape, shapeErr := g.builder.OpShape(op)
	if shapeErr != nil {
		Panicf("while building op %s: %+v", opName, shapeErr)
	}
	node := &Node{
		graph:      g,
		outputOp:   op,
		shape:      shape,
		opName:     opName,
		inputNodes: inputs,
	}
	g.registerNode(node)
	return node
}

// Graph that holds the Node.
func (n *Node) Graph() *Graph {
	n.AssertValid()
	return n.graph
}

// Id of the Node within its Graph.
func (n *Node) Id() NodeId { return n.id }

// Shape of the Node's output.
func (n *Node) Shape() shapes.Shape {
	n.AssertValid()
	return n.shape
}

// DType of the Node's output shape.
func (n *Node) DType() dtypes.DType { return n.Shape().DType }

// Rank of the Node's output shape.
func (n *Node) Rank() int { return n.Shape().Rank() }

// IsScalar returns whether the Node's output is a scalar.
func (n *Node) IsScalar() bool { return n.Shape().IsScalar() }

// Inputs of the node: the other nodes its computation directly depends on.
func (n *Node) Inputs() []*Node { return n.inputNodes }

// ParameterName returns the name given when the parameter was created. It panics if
// the node is not a parameter.
func (n *Node) ParameterName() string {
	n.AssertValid()
	if n.opName != opNameParameter {
		Panicf("node %s is not a parameter", n)
	}
	return n.parameterName
}

// AssertValid panics if the node is nil or belongs to an invalid graph.
func (n *Node) AssertValid() {
	if n == nil {
		Panicf("the Node is nil")
	}
	n.graph.AssertValid()
}

// String implements fmt.Stringer: a short description of the node, with the memory
// used by its output.
func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	return fmt.Sprintf("%s: %s [%s]", n.opName, n.shape,
		humanize.Bytes(uint64(n.shape.Memory())))
}
