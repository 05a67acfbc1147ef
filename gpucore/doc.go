// Package gpucore provides the device abstraction shared by the program
// cache and the GPU backends.
//
// It defines the [ComputeDevice] interface, which abstracts over backend
// implementations so that program generation and caching work the same on:
//   - gogpu/wgpu (Pure Go WebGPU via HAL), see backend/native
//   - an offline device that validates shaders without creating pipelines
//   - test doubles
//
// # Architecture
//
//	               +-----------------+
//	               | pipeline.Cache  |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |  ComputeDevice  |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	|  native.Device  |          |  offline mode   |
//	|  (hal.Device)   |          | (naga validate) |
//	+-----------------+          +-----------------+
//
// # Resource Management
//
// Pipelines are referenced through opaque [ComputePipelineID] values. Devices
// track the mapping between IDs and backend resources and release them on
// DestroyComputePipeline.
//
// # Capabilities
//
// [Capabilities] carries the device limits that shader generation and
// dispatch normalization read. [DefaultCapabilities] returns the WebGPU
// specification defaults, which every conformant adapter supports.
package gpucore
