// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
	"github.com/gogpu/gpuprogram/internal/cache"
	inative "github.com/gogpu/gpuprogram/internal/native"
)

// Device implements gpucore.ComputeDevice using gogpu/wgpu/hal.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// All resource tracking is protected by a mutex.
type Device struct {
	mu     sync.Mutex
	device hal.Device // nil in offline mode
	caps   gpucore.Capabilities

	compiler *inative.Compiler

	// ID generation, 0 is gpucore.InvalidID
	nextID atomic.Uint64

	pipelines map[gpucore.ComputePipelineID]*inative.Resources
	destroyed bool

	// release tears down a HAL device the Device opened itself.
	release func()
}

var _ gpucore.ComputeDevice = (*Device)(nil)

// NewDevice wraps a HAL device. The device stays owned by the caller;
// Destroy releases only the pipelines created through this Device.
func NewDevice(device hal.Device, opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{
		device:    device,
		caps:      CapabilitiesFromLimits(o.limits, o.shaderF16),
		compiler:  inative.NewCompiler(o.spirvCapacity),
		pipelines: make(map[gpucore.ComputePipelineID]*inative.Resources),
	}
}

// NewOffline creates a Device without GPU access. Shaders are compiled and
// validated by naga, and pipelines are placeholders.
func NewOffline(opts ...Option) *Device {
	return NewDevice(nil, opts...)
}

// NewDeviceFromProvider adopts the HAL device of a gpucontext.DeviceProvider.
// The provider must implement HalDevice() any returning a hal.Device, as
// gogpu's providers do.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALDevice)
	}

	d := NewDevice(device, opts...)
	gpuprogram.Logger().Info("native: adopted HAL device from provider",
		"maxWorkgroupsPerDimension", d.caps.MaxComputeWorkgroupsPerDimension,
		"shaderF16", d.caps.ShaderF16)
	return d, nil
}

// Capabilities implements gpucore.ComputeDevice.
func (d *Device) Capabilities() gpucore.Capabilities {
	return d.caps
}

// Offline reports whether the device has no HAL device.
func (d *Device) Offline() bool {
	return d.device == nil
}

// CreateComputePipeline implements gpucore.ComputeDevice.
func (d *Device) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	if desc == nil {
		return gpucore.InvalidID, ErrNilDescriptor
	}

	spirv, err := d.compiler.Compile(desc.Source)
	if err != nil {
		gpuprogram.Logger().Debug("native: shader rejected", "label", desc.Label, "err", err)
		return gpucore.InvalidID, fmt.Errorf("program %s: %w", desc.Label, err)
	}

	var res *inative.Resources
	if d.device != nil {
		res, err = inative.Build(d.device, desc, spirv)
		if err != nil {
			return gpucore.InvalidID, err
		}
	} else if _, err := inative.LayoutEntries(desc.Bindings); err != nil {
		return gpucore.InvalidID, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		if res != nil {
			res.Destroy()
		}
		return gpucore.InvalidID, ErrDestroyed
	}
	id := gpucore.ComputePipelineID(d.nextID.Add(1))
	d.pipelines[id] = res // nil for offline placeholders
	return id, nil
}

// DestroyComputePipeline implements gpucore.ComputeDevice.
func (d *Device) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	d.mu.Lock()
	res, ok := d.pipelines[id]
	if ok {
		delete(d.pipelines, id)
	}
	d.mu.Unlock()

	if res != nil {
		res.Destroy()
	}
}

// Pipeline returns the HAL pipeline behind id, or nil for unknown IDs and
// offline placeholders.
func (d *Device) Pipeline(id gpucore.ComputePipelineID) hal.ComputePipeline {
	d.mu.Lock()
	defer d.mu.Unlock()

	if res := d.pipelines[id]; res != nil {
		return res.Pipeline
	}
	return nil
}

// Len returns the number of live pipelines.
func (d *Device) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.pipelines)
}

// CompilerStats returns statistics of the SPIR-V memo.
func (d *Device) CompilerStats() cache.Stats {
	return d.compiler.Stats()
}

// Destroy releases every pipeline created through d. A HAL device passed in
// by the caller is left to its owner; one opened by OpenStandalone is
// destroyed too. Destroy is idempotent.
func (d *Device) Destroy() {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}
	d.destroyed = true
	pipelines := d.pipelines
	d.pipelines = make(map[gpucore.ComputePipelineID]*inative.Resources)
	d.mu.Unlock()

	for _, res := range pipelines {
		if res != nil {
			res.Destroy()
		}
	}
	if d.release != nil {
		d.release()
		d.release = nil
	}
	gpuprogram.Logger().Info("native: device destroyed", "pipelines", len(pipelines))
}
