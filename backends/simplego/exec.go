package simplego

import (
	"github.com/gomlx/elwise/backends"
	"github.com/gomlx/elwise/types/shapes"
	"github.com/pkg/errors"
)

// nodeExecutor executes the node's op, given its inputs. It returns the resulting buffer.
//
// inputsOwned indicates for each input whether its buffer is owned by the execution and
// can be reused as the output (or mutated as scratch space).
type nodeExecutor func(backend *Backend, node *Node, inputs []*Buffer, inputsOwned []bool) (*Buffer, error)

// nodeExecutors is the jump table from OpType to its executor. It is populated by the
// init functions in the exec_*.go files.
var nodeExecutors [backends.OpTypeLast]nodeExecutor

func setNodeExecutor(opType backends.OpType, executor nodeExecutor) {
	if nodeExecutors[opType] != nil {
		panic(errors.Errorf("node executor for %s registered twice", opType))
	}
	nodeExecutors[opType] = executor
}

// Executable implements backends.Executable for the simplego backend.
type Executable struct {
	backend *Backend
	builder *Builder
	name    string

	inputs  []*Node
	outputs []*Node

	// reachable marks the nodes (by builderIdx) that contribute to the outputs: only
	// those are executed.
	reachable []bool

	// numUses holds, per node, the number of times its output is consumed by reachable
	// nodes (plus once per time it appears as an output). Used to release buffers early.
	numUses []int
}

// Compile-time check that simplego.Executable implements backends.Executable.
var _ backends.Executable = &Executable{}

func newExecutable(builder *Builder, outputs []*Node) *Executable {
	e := &Executable{
		backend:   builder.backend,
		builder:   builder,
		name:      builder.name,
		inputs:    builder.inputs,
		outputs:   outputs,
		reachable: make([]bool, len(builder.nodes)),
		numUses:   make([]int, len(builder.nodes)),
	}

	// Mark reachable nodes and count uses: the graph is in DAG order, so a reverse
	// traversal sees each node after all its consumers.
	for _, node := range outputs {
		e.reachable[node.builderIdx] = true
		e.numUses[node.builderIdx]++
	}
	for idx := len(builder.nodes) - 1; idx >= 0; idx-- {
		if !e.reachable[idx] {
			continue
		}
		for _, input := range builder.nodes[idx].inputs {
			e.reachable[input.builderIdx] = true
			e.numUses[input.builderIdx]++
		}
	}
	// Parameters are always fed, even if unused.
	for _, input := range e.inputs {
		e.reachable[input.builderIdx] = true
	}
	return e
}

// Finalize immediately frees resources associated to the executable.
func (e *Executable) Finalize() {
	e.builder = nil
	e.inputs = nil
	e.outputs = nil
}

// Inputs returns the list of parameters names and shapes, in order created by the Builder.Parameter calls.
func (e *Executable) Inputs() (names []string, inputShapes []shapes.Shape) {
	names = make([]string, len(e.inputs))
	inputShapes = make([]shapes.Shape, len(e.inputs))
	for ii, node := range e.inputs {
		names[ii] = node.data.(string)
		inputShapes[ii] = node.shape
	}
	return
}

// Outputs returns the list of the shapes of the outputs of the computation.
func (e *Executable) Outputs() (outputShapes []shapes.Shape) {
	outputShapes = make([]shapes.Shape, len(e.outputs))
	for ii, node := range e.outputs {
		outputShapes[ii] = node.shape
	}
	return
}

// Execute the executable with the given inputs, sequentially.
func (e *Executable) Execute(inputs []backends.Buffer, donate []bool) ([]backends.Buffer, error) {
	if e.builder == nil {
		return nil, errors.Errorf("executable %q was finalized", e.name)
	}
	if len(inputs) != len(e.inputs) {
		return nil, errors.Errorf("executable %q takes %d inputs, got %d", e.name, len(e.inputs), len(inputs))
	}
	if donate != nil && len(donate) != len(inputs) {
		return nil, errors.Errorf("executable %q: donate must be nil or have %d elements, got %d",
			e.name, len(inputs), len(donate))
	}

	numNodes := len(e.builder.nodes)
	results := make([]*Buffer, numNodes)
	owned := make([]bool, numNodes)
	remainingUses := make([]int, numNodes)
	copy(remainingUses, e.numUses)

	// Feed the parameters.
	for ii, node := range e.inputs {
		buffer, err := e.backend.castBuffer(inputs[ii])
		if err != nil {
			return nil, errors.WithMessagef(err, "executable %q, input #%d", e.name, ii)
		}
		if !buffer.shape.Equal(node.shape) {
			return nil, errors.Errorf("executable %q, input #%d (%q) must be shaped %s, got %s",
				e.name, ii, node.data.(string), node.shape, buffer.shape)
		}
		results[node.builderIdx] = buffer
		owned[node.builderIdx] = donate != nil && donate[ii]
	}

	if err := e.executeSequentially(results, owned, remainingUses); err != nil {
		return nil, errors.WithMessagef(err, "while executing %q", e.name)
	}

	// Collect outputs: clone buffers not owned by the execution (constants, non-donated
	// inputs) and outputs that alias each other.
	outputBuffers := make([]backends.Buffer, len(e.outputs))
	seen := make(map[*Buffer]bool, len(e.outputs))
	for ii, node := range e.outputs {
		buffer := results[node.builderIdx]
		if !owned[node.builderIdx] || seen[buffer] {
			buffer = e.backend.cloneBuffer(buffer)
		}
		seen[buffer] = true
		outputBuffers[ii] = buffer
	}
	return outputBuffers, nil
}

func (e *Executable) executeSequentially(results []*Buffer, owned []bool, remainingUses []int) error {
	isOutput := make(map[int]bool, len(e.outputs))
	for _, node := range e.outputs {
		isOutput[node.builderIdx] = true
	}
	for idx, node := range e.builder.nodes {
		if !e.reachable[idx] || results[idx] != nil {
			continue
		}
		buffer, bufferOwned, err := e.executeNode(node, results, owned, remainingUses)
		if err != nil {
			return err
		}
		results[idx] = buffer
		owned[idx] = bufferOwned

		// Release input buffers that are no longer needed.
		for _, input := range node.inputs {
			inputIdx := input.builderIdx
			remainingUses[inputIdx]--
			if remainingUses[inputIdx] == 0 && owned[inputIdx] && !isOutput[inputIdx] &&
				results[inputIdx] != buffer {
				e.backend.putBuffer(results[inputIdx])
				results[inputIdx] = nil
			}
		}
	}
	return nil
}

func (e *Executable) executeNode(node *Node, results []*Buffer, owned []bool, remainingUses []int) (*Buffer, bool, error) {
	if node.opType == backends.OpTypeConstant {
		// Constants are materialized at build time; they are not owned by the execution.
		return node.data.(*Buffer), false, nil
	}
	executor := nodeExecutors[node.opType]
	if executor == nil {
		return nil, false, errors.Errorf("no executor registered for op %s", node.opType)
	}
	inputs := make([]*Buffer, len(node.inputs))
	inputsOwned := make([]bool, len(node.inputs))
	for ii, input := range node.inputs {
		inputs[ii] = results[input.builderIdx]
		// An input buffer can only be reused if all its remaining uses are within this node.
		inputsOwned[ii] = owned[input.builderIdx] && remainingUses[input.builderIdx] == usesWithin(node, input)
	}
	buffer, err := executor(e.backend, node, inputs, inputsOwned)
	if err != nil {
		return nil, false, errors.WithMessagef(err, "while executing op %s", node.opType)
	}
	return buffer, true, nil
}

func usesWithin(node *Node, input *Node) int {
	count := 0
	for _, other := range node.inputs {
		if other == input {
			count++
		}
	}
	return count
}
