// Package renderer holds the analysis and description layer between the
// optimizer and the device code generators: static cost estimation over
// micro-op sequences, the compiled-program descriptor, and the declarative
// tensor-core capability schema backends expose.
package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chukwunonsoprosper/tinygrad/internal/ir"
)

// ErrUnknownDevice is returned by Lookup for a device no backend
// registered.
var ErrUnknownDevice = errors.New("no renderer registered for device")

// Capabilities declares what a device backend can do. Backends fill this
// once with constants; the optimizer reads it when shaping kernels.
type Capabilities struct {
	// Suffix distinguishes variants of a device ("", "-debug", ...).
	Suffix string

	// SupportsFloat4 is set when the device has native small-vector
	// loads and arithmetic.
	SupportsFloat4 bool

	// HasLocal and HasShared mark addressable work-group memory;
	// SharedMax is its byte budget.
	HasLocal  bool
	HasShared bool
	SharedMax int

	// GlobalMax and LocalMax bound the launch grid per axis, in (x,y,z)
	// order. nil means the level is unbounded or absent.
	GlobalMax *[3]int64
	LocalMax  *[3]int64

	// TensorCores lists the fused multiply-accumulate units available.
	TensorCores []TensorCore

	// ExtraRewrites is an optional backend-specific rewrite-rule set the
	// optimizer applies before rendering. Opaque to this layer.
	ExtraRewrites any
}

// Renderer turns a named micro-op sequence into device source text. It
// must be deterministic for identical inputs and hold no mutable state:
// descriptors cross process boundaries, so a backend is reconstructed from
// its registered factory rather than serialized.
type Renderer interface {
	// Device returns the backend identifier ("WEBGPU", "CLANG", ...).
	Device() string

	// Capabilities returns the declarative feature set of the device.
	Capabilities() Capabilities

	// Render produces source text for the sequence. The name is already
	// sanitized by the caller via ToFunctionName.
	Render(name string, uops []*ir.UOp) (string, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Renderer{}
)

// Register makes a backend available under its device identifier.
// Backends call this from init. Registering the same device twice panics,
// it is a wiring mistake.
func Register(device string, factory func() Renderer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[device]; dup {
		panic(fmt.Sprintf("renderer: duplicate registration for device %q", device))
	}
	registry[device] = factory
}

// Lookup reconstructs a fresh renderer for the device.
func Lookup(device string) (Renderer, error) {
	registryMu.RLock()
	factory, ok := registry[device]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, device)
	}
	return factory(), nil
}

// Devices returns the registered device identifiers, unordered.
func Devices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for d := range registry {
		out = append(out, d)
	}
	return out
}
