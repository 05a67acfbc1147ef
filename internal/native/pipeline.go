// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
)

// LayoutEntries converts program bindings to HAL bind group layout entries.
// Every binding is visible to the compute stage only.
func LayoutEntries(bindings []gpucore.BindGroupLayoutEntry) ([]gputypes.BindGroupLayoutEntry, error) {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(bindings))
	for _, b := range bindings {
		var typ gputypes.BufferBindingType
		switch b.Type {
		case gpucore.BindingTypeUniformBuffer:
			typ = gputypes.BufferBindingTypeUniform
		case gpucore.BindingTypeReadOnlyStorageBuffer:
			typ = gputypes.BufferBindingTypeReadOnlyStorage
		case gpucore.BindingTypeStorageBuffer:
			typ = gputypes.BufferBindingTypeStorage
		default:
			return nil, fmt.Errorf("native: binding %d has unsupported type %s", b.Binding, b.Type)
		}
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    b.Binding,
			Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{
				Type:           typ,
				MinBindingSize: b.MinBindingSize,
			},
		})
	}
	return entries, nil
}

// Build creates the shader module, bind group layout, pipeline layout and
// compute pipeline for one program on device. On failure every object
// created so far is destroyed.
func Build(device hal.Device, desc *gpucore.ComputePipelineDesc, spirv []uint32) (*Resources, error) {
	if device == nil {
		return nil, errNoDevice
	}
	entries, err := LayoutEntries(desc.Bindings)
	if err != nil {
		return nil, err
	}

	r := &Resources{Device: device}
	ok := false
	defer func() {
		if !ok {
			r.Destroy()
		}
	}()

	r.ShaderModule, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create shader module %s: %w", gpuprogram.ErrCompilationFailure, desc.Label, err)
	}

	r.BindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group layout %s: %w", desc.Label, err)
	}

	r.PipelineLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: desc.Label + "_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{r.BindLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create pipeline layout %s: %w", desc.Label, err)
	}

	r.Pipeline, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: desc.Label, Layout: r.PipelineLayout,
		Compute: hal.ComputeState{Module: r.ShaderModule, EntryPoint: desc.EntryPoint},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create compute pipeline %s: %w", gpuprogram.ErrCompilationFailure, desc.Label, err)
	}

	ok = true
	return r, nil
}
