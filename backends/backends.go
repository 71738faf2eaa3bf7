// Package backends defines the interface a computation building and execution
// engine needs to implement to be used by the graph and elwise packages.
//
// The package also keeps a registry of backends: implementations register
// themselves with Register (usually in an init function), and users create one
// with New or NewWithConfig. The default backend can be selected with the
// ELWISE_BACKEND environment variable, with a value like "go" or
// "<backend_name>:<backend_config>".
package backends

import (
	"os"
	"strings"

	"github.com/gomlx/elwise/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DeviceNum is the device number, used when a backend may use multiple devices.
type DeviceNum int

// Backend is the API for a computation building and execution system.
type Backend interface {
	// Name returns the short name of the backend. E.g.: "go" for the interpreter backend.
	Name() string

	// Description is a longer description of the Backend that can be used to pretty-print.
	Description() string

	// NumDevices return the number of devices available for this Backend.
	NumDevices() DeviceNum

	// Capabilities returns the operations and dtypes supported by this backend.
	Capabilities() Capabilities

	// Builder creates a new builder used to define a new named computation.
	Builder(name string) Builder

	// DataInterface is the API to transfer Buffer to/from the backend devices.
	DataInterface

	// Finalize releases all the associated resources immediately, and makes the backend invalid.
	Finalize()
}

// Constructor builds a Backend from a configuration string.
// The configuration string format is backend specific -- the empty string must be valid.
type Constructor func(config string) (Backend, error)

// ConfigEnvVar is the environment variable used to override the default backend configuration.
const ConfigEnvVar = "ELWISE_BACKEND"

// DefaultConfig is the configuration used by New when ConfigEnvVar is not set.
// It can be overwritten by tests or programs before the first call to New.
var DefaultConfig = "go"

var registeredBackends = make(map[string]Constructor)

// Register a backend engine constructor under the given name.
// It panics if the name is already taken.
func Register(name string, constructor Constructor) {
	if _, found := registeredBackends[name]; found {
		klog.Fatalf("backends.Register: backend %q registered twice", name)
	}
	registeredBackends[name] = constructor
}

// List returns the names of the registered backends.
func List() []string {
	names := make([]string, 0, len(registeredBackends))
	for name := range registeredBackends {
		names = append(names, name)
	}
	return names
}

// New returns a new Backend using the default configuration: the value of the
// ELWISE_BACKEND environment variable if set, otherwise DefaultConfig.
func New() (Backend, error) {
	config := DefaultConfig
	if envConfig := os.Getenv(ConfigEnvVar); envConfig != "" {
		config = envConfig
	}
	return NewWithConfig(config)
}

// MustNew is like New, but panics in case of error.
func MustNew() Backend {
	backend, err := New()
	if err != nil {
		panic(err)
	}
	return backend
}

// NewWithConfig takes a configuration string in the format
// "<backend_name>" or "<backend_name>:<backend_config>" and returns a new Backend.
func NewWithConfig(config string) (Backend, error) {
	if len(registeredBackends) == 0 {
		return nil, errors.Errorf("no backends registered -- maybe import " +
			"github.com/gomlx/elwise/backends/simplego with a blank identifier")
	}
	name, backendConfig, _ := strings.Cut(config, ":")
	constructor, found := registeredBackends[name]
	if !found {
		return nil, errors.Errorf("backend %q not registered (registered: %s)",
			name, strings.Join(List(), ", "))
	}
	backend, err := constructor(backendConfig)
	if err != nil {
		return nil, errors.WithMessagef(err, "while creating backend %q", name)
	}
	return backend, nil
}

// RNGStateShape is the shape of the random number generator state used by
// Builder.RNGBitGenerator.
var RNGStateShape = shapes.Make(dtypes.Uint64, 3)
