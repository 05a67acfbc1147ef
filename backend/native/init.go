// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/gpuprogram/backend"
	"github.com/gogpu/gpuprogram/gpucore"
)

// BackendVulkan is the registry name of standalone Vulkan devices.
const BackendVulkan = "vulkan"

// init registers the native backends on package import.
// The "native" factory creates offline devices: programs are compiled and
// validated by naga but no HAL pipeline is created. The "vulkan" factory
// opens a real GPU and fails when none is present.
func init() {
	backend.Register(backend.BackendNative, func(caps gpucore.Capabilities) (gpucore.ComputeDevice, error) {
		return NewOffline(
			WithLimits(LimitsFromCapabilities(caps)),
			WithShaderF16(caps.ShaderF16),
		), nil
	})
	backend.Register(BackendVulkan, func(caps gpucore.Capabilities) (gpucore.ComputeDevice, error) {
		d, err := OpenStandalone(
			WithLimits(LimitsFromCapabilities(caps)),
			WithShaderF16(caps.ShaderF16),
		)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
