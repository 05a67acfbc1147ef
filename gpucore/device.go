// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// Capabilities describes the device limits and features that program
// generation depends on.
type Capabilities struct {
	// MaxComputeWorkgroupSizeX is the maximum workgroup size in X dimension.
	MaxComputeWorkgroupSizeX uint32

	// MaxComputeWorkgroupSizeY is the maximum workgroup size in Y dimension.
	MaxComputeWorkgroupSizeY uint32

	// MaxComputeWorkgroupSizeZ is the maximum workgroup size in Z dimension.
	MaxComputeWorkgroupSizeZ uint32

	// MaxComputeInvocationsPerWorkgroup is the maximum total invocations per workgroup.
	MaxComputeInvocationsPerWorkgroup uint32

	// MaxComputeWorkgroupsPerDimension is the maximum workgroups per dispatch dimension.
	MaxComputeWorkgroupsPerDimension uint32

	// MaxStorageBuffersPerShaderStage bounds the storage buffers one shader may bind.
	MaxStorageBuffersPerShaderStage uint32

	// ShaderF16 reports support for the WGSL f16 extension.
	ShaderF16 bool
}

// DefaultCapabilities returns the WebGPU default limits without optional features.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		MaxComputeWorkgroupSizeX:          256,
		MaxComputeWorkgroupSizeY:          256,
		MaxComputeWorkgroupSizeZ:          64,
		MaxComputeInvocationsPerWorkgroup: 256,
		MaxComputeWorkgroupsPerDimension:  65535,
		MaxStorageBuffersPerShaderStage:   8,
		ShaderF16:                         false,
	}
}

// ComputeDevice creates and releases compute pipelines.
//
// Implementations must be safe for concurrent use.
//
// Resource lifecycle:
//   - Pipelines are created via CreateComputePipeline
//   - Pipelines must be explicitly destroyed via DestroyComputePipeline
//   - IDs become invalid after destruction
type ComputeDevice interface {
	// Capabilities returns the device limits. The value must not change
	// over the device's lifetime.
	Capabilities() Capabilities

	// CreateComputePipeline compiles desc.Source and creates a pipeline.
	// A rejected shader returns an error and no pipeline.
	CreateComputePipeline(desc *ComputePipelineDesc) (ComputePipelineID, error)

	// DestroyComputePipeline releases a compute pipeline.
	DestroyComputePipeline(id ComputePipelineID)
}
