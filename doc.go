// Package gpuprogram describes GPU compute programs and derives everything
// needed to generate, cache, and dispatch them.
//
// # Overview
//
// A tensor operator that runs on a GPU is expressed as a compute program: a
// WGSL shader plus the uniform data, tensor bindings and dispatch size of one
// invocation. gpuprogram holds the device-independent half of that model:
//
//   - Metadata and Kind: the constants, overridable constants and uniform
//     slots an operator kind declares once.
//   - Descriptor: the concrete configuration of one invocation.
//   - CacheKey: a string that is equal for two descriptors exactly when they
//     generate the same shader text and uniform layout.
//   - NormalizeDispatch: fits a dispatch into the device per-dimension limit.
//   - PlanUniformLayout: WGSL-conformant offsets for the uniform buffer.
//
// Shader text is produced by the shader package and pipelines are cached by
// the pipeline package.
//
// # Quick Start
//
//	d := gpuprogram.NewDescriptor("Abs").
//	    WithInputs(gpuprogram.Input{Tensor: x, Dependency: gpuprogram.DependType}).
//	    WithOutputs(y).
//	    WithDispatchSize(groups).
//	    WithUniforms(gpuprogram.UniformU32(vecSize))
//
//	key := gpuprogram.CacheKey(d, true) // "Abs:1:1:f32;"
//
// # Logging
//
// The library is silent by default. Call SetLogger to route diagnostics
// (generated shader source, cache misses, device events) to a slog.Logger.
package gpuprogram

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
