package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gpuprogram/gpucore"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Native compiles programs for real; Null is the fallback.
	backendPriority = []string{BackendNative, BackendNull}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates a device from the named backend.
func Get(name string, caps gpucore.Capabilities) (gpucore.ComputeDevice, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(caps)
}

// Default creates a device from the best available backend based on
// priority and returns it with the backend name.
// Priority order: native > null > any other registered backend.
func Default(caps gpucore.Capabilities) (gpucore.ComputeDevice, string, error) {
	registryMu.RLock()
	order := make([]string, 0, len(backends))
	factories := make(map[string]Factory, len(backends))
	for name, f := range backends {
		factories[name] = f
	}
	registryMu.RUnlock()

	for _, name := range backendPriority {
		if _, ok := factories[name]; ok {
			order = append(order, name)
		}
	}
	rest := make([]string, 0, len(factories))
	for name := range factories {
		if name != BackendNative && name != BackendNull {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	var lastErr error
	for _, name := range order {
		dev, err := factories[name](caps)
		if err == nil && dev != nil {
			return dev, name, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrBackendNotAvailable, lastErr)
	}
	return nil, "", ErrBackendNotAvailable
}

// MustDefault returns the default device or panics.
func MustDefault(caps gpucore.Capabilities) gpucore.ComputeDevice {
	dev, _, err := Default(caps)
	if err != nil {
		panic(err)
	}
	return dev
}
