package backends

import "github.com/gomlx/elwise/types/shapes"

// Buffer represents actual data (a tensor) stored in the device that is going to execute the graph.
// It's used as input/output of computation execution.
//
// It is opaque from the caller's perspective: only the backend that created it knows its underlying type.
type Buffer any

// DataInterface is the Backend's subinterface that defines the API to transfer Buffer to/from devices.
type DataInterface interface {
	// BufferFinalize allows the client to inform the backend that the buffer is no longer needed and
	// associated resources can be freed immediately.
	//
	// A finalized buffer should never be used again.
	BufferFinalize(buffer Buffer) error

	// BufferShape returns the shape for the buffer.
	BufferShape(buffer Buffer) (shapes.Shape, error)

	// BufferToFlatData transfers the flat values of buffer to the Go flat array.
	// The slice flat must have the exact number of elements required to store the Buffer shape.
	BufferToFlatData(buffer Buffer, flat any) error

	// BufferFromFlatData transfers data from Go given as a flat slice (of the type corresponding to the
	// shape DType) to the deviceNum, and returns the corresponding Buffer.
	BufferFromFlatData(deviceNum DeviceNum, flat any, shape shapes.Shape) (Buffer, error)
}
