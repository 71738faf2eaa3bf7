// Package graphtest holds test utilities for packages that depend on the graph package.
package graphtest

import (
	"sync"
	"testing"

	"github.com/gomlx/elwise/backends"
	_ "github.com/gomlx/elwise/backends/simplego"
	"github.com/gomlx/elwise/graph"
	"github.com/gomlx/elwise/types/tensors"
	"k8s.io/klog/v2"
)

var (
	buildTestBackendOnce sync.Once
	testBackend          backends.Backend
)

// BuildTestBackend returns the backend to use for tests, created only once and
// shared among all tests. It honors the backend configuration in ELWISE_BACKEND,
// defaulting to the pure Go backend.
func BuildTestBackend() backends.Backend {
	buildTestBackendOnce.Do(func() {
		var err error
		testBackend, err = backends.New()
		if err != nil {
			klog.Fatalf("Failed to create backend for tests: %+v", err)
		}
	})
	return testBackend
}

// RunGraph builds a graph with fn, feeding the given inputs as parameters, compiles it
// with fn's outputs and executes it, returning the resulting tensors.
//
// The parameters created for the inputs are passed to fn in order, after the graph.
func RunGraph(t *testing.T, backend backends.Backend, inputs []any, fn func(g *graph.Graph, inputs []*graph.Node) []*graph.Node) []*tensors.Tensor {
	t.Helper()
	g := graph.NewGraph(backend, t.Name())
	inputTensors := make([]*tensors.Tensor, len(inputs))
	params := make([]*graph.Node, len(inputs))
	for ii, input := range inputs {
		inputTensors[ii] = tensors.FromAnyValue(input)
		params[ii] = graph.Parameter(g, "input_"+string(rune('a'+ii)), inputTensors[ii].Shape())
	}
	outputs := fn(g, params)
	g.Compile(outputs...)
	args := make([]any, len(inputTensors))
	for ii, tensor := range inputTensors {
		args[ii] = tensor
	}
	return g.Run(args...)
}

// RunUnary is a shortcut for RunGraph with one input and one output.
func RunUnary(t *testing.T, backend backends.Backend, input any, fn func(x *graph.Node) *graph.Node) *tensors.Tensor {
	t.Helper()
	results := RunGraph(t, backend, []any{input}, func(_ *graph.Graph, inputs []*graph.Node) []*graph.Node {
		return []*graph.Node{fn(inputs[0])}
	})
	return results[0]
}
