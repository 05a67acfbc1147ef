package backend

import (
	"errors"

	"github.com/gogpu/gpuprogram/gpucore"
)

// Backend name constants.
const (
	// BackendNative is the name of the Pure Go backend (naga + gogpu/wgpu HAL).
	// Without a HAL device it compiles and validates programs offline.
	BackendNative = "native"
	// BackendNull is the name of the backend that accepts every program
	// without compiling it.
	BackendNull = "null"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory creates a compute device reporting the given capabilities.
// Backends bound to real hardware may ignore caps in favor of the limits
// the hardware reports.
type Factory func(caps gpucore.Capabilities) (gpucore.ComputeDevice, error)

// Destroyer is implemented by devices that hold resources beyond their
// pipelines. Callers that obtained a device from the registry should
// release it with Release.
type Destroyer interface {
	Destroy()
}

// Release destroys dev if it holds resources.
func Release(dev gpucore.ComputeDevice) {
	if d, ok := dev.(Destroyer); ok {
		d.Destroy()
	}
}
