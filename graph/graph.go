// Package graph builds computation graphs with elwise backends and executes them.
//
// A Graph is created with NewGraph for a given backend. Operations (Add, Where,
// ConvertDType, ...) take and return *Node handles, and panic on invalid inputs --
// use exceptions.TryCatch to convert the panics to errors. Once the desired outputs
// are reached, Compile the graph and Run it with concrete tensor inputs.
package graph

import (
	"time"

	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/elwise/types/tensors"
	. "github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Graph with the operations and dependencies needed to run a computation.
type Graph struct {
	backend backends.Backend
	builder backends.Builder
	name    string

	nodes      []*Node
	parameters []*Node
	paramNames map[string]bool

	// scalars caches the constant scalars created in this graph, so they are reused.
	scalars scalarCache

	executable   backends.Executable
	outputShapes []shapes.Shape
}

type scalarCache map[dtypes.DType]map[float64]*Node

// NewGraph constructs an empty Graph building on the given backend.
//
// After building the graph, it can be compiled (see Compile) and then executed
// (see Run) with concrete values.
func NewGraph(backend backends.Backend, name string) *Graph {
	if backend == nil {
		Panicf("NewGraph: backend is nil")
	}
	return &Graph{
		backend:    backend,
		builder:    backend.Builder(name),
		name:       name,
		paramNames: make(map[string]bool),
		scalars:    make(scalarCache),
	}
}

// Name of the computation this Graph defines.
func (g *Graph) Name() string { return g.name }

// Backend this Graph is using.
func (g *Graph) Backend() backends.Backend { return g.backend }

// IsValid returns whether the Graph is usable: it is invalid after it is finalized.
func (g *Graph) IsValid() bool { return g != nil && g.backend != nil }

// IsCompiled returns whether the Graph was already compiled: no more nodes can be added.
func (g *Graph) IsCompiled() bool { return g.executable != nil }

// AssertValid panics if the graph is nil or finalized.
func (g *Graph) AssertValid() {
	if g == nil {
		Panicf("the Graph is nil")
	}
	if g.backend == nil {
		Panicf("the Graph %q has been finalized and can no longer be used", g.name)
	}
}

// AssertBuilding panics if the graph is nil, finalized, or already compiled.
func (g *Graph) AssertBuilding() {
	g.AssertValid()
	if g.IsCompiled() {
		Panicf("the Graph %q was already compiled, so no more nodes can be created", g.name)
	}
}

// AssertCompiled panics if the graph is not yet compiled.
func (g *Graph) AssertCompiled() {
	g.AssertValid()
	if !g.IsCompiled() {
		Panicf("the Graph %q is not yet compiled", g.name)
	}
}

// Finalize frees the resources associated to the Graph immediately. The Graph is no
// longer valid afterward.
func (g *Graph) Finalize() {
	if g == nil || g.backend == nil {
		return
	}
	if g.executable != nil {
		g.executable.Finalize()
		g.executable = nil
	}
	g.backend = nil
	g.builder = nil
	g.nodes = nil
	g.parameters = nil
	g.scalars = nil
}

// registerNode assigns the node an id in the Graph.
func (g *Graph) registerNode(node *Node) {
	node.id = NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node)
}

// NumParameters returns the number of parameters created in this graph.
func (g *Graph) NumParameters() int { return len(g.parameters) }

// Compile the graph: outputs is the list of nodes to compute when the Graph is executed,
// returned by Run in the same order. After Compile no more nodes can be created.
func (g *Graph) Compile(outputs ...*Node) {
	g.AssertBuilding()
	if len(outputs) == 0 {
		Panicf("Graph.Compile: graph %q requires at least one output", g.name)
	}
	ops := make([]backends.Op, len(outputs))
	g.outputShapes = make([]shapes.Shape, len(outputs))
	for ii, node := range outputs {
		node.AssertValid()
		if node.graph != g {
			Panicf("Graph.Compile: output #%d belongs to a different graph (%q)", ii, node.graph.name)
		}
		ops[ii] = node.outputOp
		g.outputShapes[ii] = node.Shape()
	}
	start := time.Now()
	executable, err := g.builder.Compile(ops...)
	if err != nil {
		panic(errors.WithMessagef(err, "while compiling graph %q", g.name))
	}
	g.executable = executable
	if klog.V(1).Enabled() {
		klog.Infof("graph %q compiled in %s", g.name, time.Since(start))
	}
}

// Run the compiled graph with the given inputs, one value per parameter, in the order
// they were created. Inputs can be *tensors.Tensor or any value accepted by
// tensors.FromAnyValue. The Graph must have been compiled with the wanted outputs
// first -- see Compile.
func (g *Graph) Run(inputs ...any) []*tensors.Tensor {
	g.AssertCompiled()
	if len(inputs) != len(g.parameters) {
		Panicf("Graph.Run: graph %q takes %d parameters, got %d values", g.name, len(g.parameters), len(inputs))
	}
	inputBuffers := make([]backends.Buffer, len(inputs))
	for ii, input := range inputs {
		t := tensors.FromAnyValue(input)
		if !t.Shape().Equal(g.parameters[ii].Shape()) {
			Panicf("Graph.Run: graph %q parameter #%d (%q) takes %s, got %s",
				g.name, ii, g.parameters[ii].ParameterName(), g.parameters[ii].Shape(), t.Shape())
		}
		var buffer backends.Buffer
		var err error
		t.MustConstFlatData(func(flat any) {
			buffer, err = g.backend.BufferFromFlatData(0, flat, t.Shape())
		})
		if err != nil {
			panic(errors.WithMessagef(err, "Graph.Run: while transferring input #%d", ii))
		}
		inputBuffers[ii] = buffer
	}

	outputBuffers, err := g.executable.Execute(inputBuffers, nil)
	if err != nil {
		panic(errors.WithMessagef(err, "while executing graph %q", g.name))
	}
	for _, buffer := range inputBuffers {
		_ = g.backend.BufferFinalize(buffer)
	}

	outputs := make([]*tensors.Tensor, len(outputBuffers))
	for ii, buffer := range outputBuffers {
		shape, err := g.backend.BufferShape(buffer)
		if err != nil {
			panic(errors.WithMessagef(err, "while reading output #%d of graph %q", ii, g.name))
		}
		t := tensors.FromShape(shape)
		var transferErr error
		_ = t.MutableFlatData(func(flat any) {
			transferErr = g.backend.BufferToFlatData(buffer, flat)
		})
		if transferErr != nil {
			panic(errors.WithMessagef(transferErr, "while reading output #%d of graph %q", ii, g.name))
		}
		_ = g.backend.BufferFinalize(buffer)
		outputs[ii] = t
	}
	return outputs
}

// getScalarConst returns a cached scalar constant node for the given dtype and value,
// creating it the first time.
func (g *Graph) getScalarConst(dtype dtypes.DType, value float64) *Node {
	g.AssertBuilding()
	perValue, found := g.scalars[dtype]
	if !found {
		perValue = make(map[float64]*Node)
		g.scalars[dtype] = perValue
	}
	if node, found := perValue[value]; found {
		return node
	}
	node := ConstTensor(g, tensors.FromAnyValue(shapes.CastAsDType(value, dtype)))
	perValue[value] = node
	return node
}
