// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
)

const negShader = `@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    y[id.x] = -x[id.x];
}
`

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

func TestCompileWGSL(t *testing.T) {
	words, err := CompileWGSL(negShader)
	if err != nil {
		t.Fatalf("CompileWGSL() error = %v", err)
	}
	if len(words) == 0 || words[0] != spirvMagic {
		t.Fatalf("CompileWGSL() did not produce a SPIR-V module")
	}
}

// scaleShader reads overridable constants both in the workgroup size and
// inside the function body.
const scaleShader = `override workgroup_size_x: u32 = 64;
override alpha: f32 = 0.5;

@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

@compute @workgroup_size(workgroup_size_x)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    let n = id.x * workgroup_size_x;
    y[id.x] = x[id.x] * alpha + f32(n);
}
`

func TestCompileWGSLOverridesInBody(t *testing.T) {
	words, err := CompileWGSL(scaleShader)
	if err != nil {
		t.Fatalf("CompileWGSL() error = %v", err)
	}
	if len(words) == 0 || words[0] != spirvMagic {
		t.Fatalf("CompileWGSL() did not produce a SPIR-V module")
	}
}

func TestCompileWGSLInvalid(t *testing.T) {
	_, err := CompileWGSL("@compute fn main( {")
	if !errors.Is(err, gpuprogram.ErrCompilationFailure) {
		t.Errorf("CompileWGSL() error = %v, want ErrCompilationFailure", err)
	}
}

func TestCompilerMemoizes(t *testing.T) {
	c := NewCompiler(0)

	first, err := c.Compile(negShader)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Compile(negShader)
	if err != nil {
		t.Fatal(err)
	}
	if &first[0] != &second[0] {
		t.Error("second Compile() did not return the memoized module")
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", st)
	}

	// Failures are not memoized.
	for i := 0; i < 2; i++ {
		if _, err := c.Compile("not wgsl"); err == nil {
			t.Fatal("Compile() accepted invalid source")
		}
	}
	if c.Stats().Len != 1 {
		t.Errorf("Len = %d after failed compiles, want 1", c.Stats().Len)
	}
}

func TestLayoutEntries(t *testing.T) {
	entries, err := LayoutEntries([]gpucore.BindGroupLayoutEntry{
		{Binding: 0, Type: gpucore.BindingTypeReadOnlyStorageBuffer},
		{Binding: 1, Type: gpucore.BindingTypeStorageBuffer},
		{Binding: 2, Type: gpucore.BindingTypeUniformBuffer, MinBindingSize: 32},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []gputypes.BufferBindingType{
		gputypes.BufferBindingTypeReadOnlyStorage,
		gputypes.BufferBindingTypeStorage,
		gputypes.BufferBindingTypeUniform,
	}
	for i, e := range entries {
		if e.Binding != uint32(i) {
			t.Errorf("entry %d: Binding = %d", i, e.Binding)
		}
		if e.Visibility != gputypes.ShaderStageCompute {
			t.Errorf("entry %d: not compute-visible", i)
		}
		if e.Buffer == nil || e.Buffer.Type != want[i] {
			t.Errorf("entry %d: buffer layout = %+v, want type %v", i, e.Buffer, want[i])
		}
	}
	if entries[2].Buffer.MinBindingSize != 32 {
		t.Errorf("uniform MinBindingSize = %d, want 32", entries[2].Buffer.MinBindingSize)
	}

	if _, err := LayoutEntries([]gpucore.BindGroupLayoutEntry{{Binding: 0}}); err == nil {
		t.Error("LayoutEntries() accepted a zero binding type")
	}
}

func openNoop(t *testing.T) hal.Device {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device
}

func TestBuild(t *testing.T) {
	spirv, err := CompileWGSL(negShader)
	if err != nil {
		t.Fatal(err)
	}
	desc := &gpucore.ComputePipelineDesc{
		Label:      "Neg",
		Source:     negShader,
		EntryPoint: "main",
		Bindings: []gpucore.BindGroupLayoutEntry{
			{Binding: 0, Type: gpucore.BindingTypeReadOnlyStorageBuffer},
			{Binding: 1, Type: gpucore.BindingTypeStorageBuffer},
		},
	}

	if _, err := Build(nil, desc, spirv); err == nil {
		t.Error("Build(nil device) succeeded")
	}

	device := openNoop(t)
	res, err := Build(device, desc, spirv)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if res.ShaderModule == nil || res.BindLayout == nil || res.PipelineLayout == nil || res.Pipeline == nil {
		t.Fatalf("Build() left resources unset: %+v", res)
	}

	res.Destroy()
	if res.Pipeline != nil || res.Device != nil {
		t.Error("Destroy() did not clear resources")
	}
	res.Destroy() // no-op on cleared resources
}
