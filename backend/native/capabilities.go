// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuprogram/gpucore"
)

// CapabilitiesFromLimits converts WebGPU device limits to the capability
// record read by program generation.
func CapabilitiesFromLimits(lim gputypes.Limits, shaderF16 bool) gpucore.Capabilities {
	return gpucore.Capabilities{
		MaxComputeWorkgroupSizeX:          lim.MaxComputeWorkgroupSizeX,
		MaxComputeWorkgroupSizeY:          lim.MaxComputeWorkgroupSizeY,
		MaxComputeWorkgroupSizeZ:          lim.MaxComputeWorkgroupSizeZ,
		MaxComputeInvocationsPerWorkgroup: lim.MaxComputeInvocationsPerWorkgroup,
		MaxComputeWorkgroupsPerDimension:  lim.MaxComputeWorkgroupsPerDimension,
		MaxStorageBuffersPerShaderStage:   lim.MaxStorageBuffersPerShaderStage,
		ShaderF16:                         shaderF16,
	}
}

// LimitsFromCapabilities returns the WebGPU default limits with the compute
// limits of caps applied.
func LimitsFromCapabilities(caps gpucore.Capabilities) gputypes.Limits {
	lim := gputypes.DefaultLimits()
	lim.MaxComputeWorkgroupSizeX = caps.MaxComputeWorkgroupSizeX
	lim.MaxComputeWorkgroupSizeY = caps.MaxComputeWorkgroupSizeY
	lim.MaxComputeWorkgroupSizeZ = caps.MaxComputeWorkgroupSizeZ
	lim.MaxComputeInvocationsPerWorkgroup = caps.MaxComputeInvocationsPerWorkgroup
	lim.MaxComputeWorkgroupsPerDimension = caps.MaxComputeWorkgroupsPerDimension
	lim.MaxStorageBuffersPerShaderStage = caps.MaxStorageBuffersPerShaderStage
	return lim
}
