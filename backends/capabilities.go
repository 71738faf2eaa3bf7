package backends

import (
	"github.com/gomlx/gopjrt/dtypes"
)

// Capabilities holds the information about what a backend supports: operations and dtypes.
//
// Notice a backend may not support all combinations of listed ops and dtypes -- in those
// cases the operation will return an error when the graph is built.
type Capabilities struct {
	// Operations supported by the backend. Operations missing from the map are assumed unsupported.
	Operations map[OpType]bool

	// DTypes supported by the backend. DTypes missing from the map are assumed unsupported.
	DTypes map[dtypes.DType]bool
}

// Clone returns a deep copy of the Capabilities.
func (c Capabilities) Clone() Capabilities {
	c2 := Capabilities{
		Operations: make(map[OpType]bool, len(c.Operations)),
		DTypes:     make(map[dtypes.DType]bool, len(c.DTypes)),
	}
	for op, supported := range c.Operations {
		c2.Operations[op] = supported
	}
	for dtype, supported := range c.DTypes {
		c2.DTypes[dtype] = supported
	}
	return c2
}
