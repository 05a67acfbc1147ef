// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native compiles generated WGSL through naga and manages the HAL
// objects that back one compute pipeline.
package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/internal/cache"
)

// Compiler turns WGSL into SPIR-V words, memoizing results by source text.
// Generated sources repeat across devices and cache resets, so a hit skips
// the whole naga front end.
//
// Compiler is safe for concurrent use.
type Compiler struct {
	spirv *cache.ShardedCache[string, []uint32]
}

// NewCompiler creates a compiler that keeps up to capacity modules per
// cache shard. capacity <= 0 selects the cache default.
func NewCompiler(capacity int) *Compiler {
	return &Compiler{spirv: cache.NewSharded[string, []uint32](capacity, cache.StringHasher)}
}

// Compile returns the SPIR-V of src. Parse and validation errors wrap
// gpuprogram.ErrCompilationFailure.
func (c *Compiler) Compile(src string) ([]uint32, error) {
	return c.spirv.GetOrCreate(src, func() ([]uint32, error) {
		return CompileWGSL(src)
	})
}

// Stats returns memo statistics.
func (c *Compiler) Stats() cache.Stats {
	return c.spirv.Stats()
}

// CompileWGSL compiles WGSL source to a SPIR-V uint32 slice without memoization.
//
// The module is parsed, lowered and validated by naga. Overridable constants
// are then resolved to their declared initializers, since the SPIR-V writer
// cannot emit override expressions used inside function bodies.
func CompileWGSL(src string) ([]uint32, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gpuprogram.ErrCompilationFailure, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("%w: lowering: %w", gpuprogram.ErrCompilationFailure, err)
	}

	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("%w: validation: %w", gpuprogram.ErrCompilationFailure, err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("%w: validation failed: %w", gpuprogram.ErrCompilationFailure, &verrs[0])
	}

	if err := ir.ProcessOverrides(module, nil); err != nil {
		return nil, fmt.Errorf("%w: overrides: %w", gpuprogram.ErrCompilationFailure, err)
	}

	spirvBytes, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gpuprogram.ErrCompilationFailure, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not a multiple of 4", gpuprogram.ErrCompilationFailure, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Resources holds the HAL objects created for one compute pipeline.
type Resources struct {
	Device         hal.Device
	ShaderModule   hal.ShaderModule
	BindLayout     hal.BindGroupLayout
	PipelineLayout hal.PipelineLayout
	Pipeline       hal.ComputePipeline
}

// Destroy releases all resources in reverse creation order. It is safe to
// call on partially built resources.
func (r *Resources) Destroy() {
	if r.Device == nil {
		return
	}
	if r.Pipeline != nil {
		r.Device.DestroyComputePipeline(r.Pipeline)
	}
	if r.PipelineLayout != nil {
		r.Device.DestroyPipelineLayout(r.PipelineLayout)
	}
	if r.BindLayout != nil {
		r.Device.DestroyBindGroupLayout(r.BindLayout)
	}
	if r.ShaderModule != nil {
		r.Device.DestroyShaderModule(r.ShaderModule)
	}
	*r = Resources{}
}

// errNoDevice is returned by Build without a HAL device.
var errNoDevice = errors.New("native: no HAL device")
