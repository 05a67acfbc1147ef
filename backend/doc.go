// Package backend provides a pluggable compute device registry.
//
// A program cache needs a gpucore.ComputeDevice to turn generated WGSL into
// pipelines. Backends register a Factory under a name and tools select one
// at runtime, so the same generation code can run on a real GPU, validate
// shaders offline, or skip compilation entirely.
//
// # Backend Registration
//
// Backends are registered via init() functions. The null backend is
// registered by this package; the native backend registers itself when its
// package is imported:
//
//	import _ "github.com/gogpu/gpuprogram/backend/native"
//
// # Backend Selection
//
// Use Default() to get the best available device, or Get() to request a
// specific backend by name:
//
//	caps := gpucore.DefaultCapabilities()
//
//	// Best available backend
//	dev, name, err := backend.Default(caps)
//
//	// Or a specific one
//	dev, err := backend.Get("null", caps)
//	defer backend.Release(dev)
//
// # Available Backends
//
// - "native": naga compilation, HAL pipelines when a device is attached
// - "null": records pipelines without compiling (always available)
package backend
