// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
)

// Artifact is a compiled program. It is created on a cache miss and never
// modified afterwards; callers must treat its slices as read-only.
type Artifact struct {
	// Name is the program name of the descriptor that built it.
	Name string
	// Key is the cache key the artifact is stored under.
	Key string
	// Pipeline is the device pipeline handle.
	Pipeline gpucore.ComputePipelineID
	// Layout is the uniform buffer layout the shader declares.
	Layout gpuprogram.UniformLayout
	// WorkgroupSize is the @workgroup_size of the entry point.
	WorkgroupSize [3]uint32
	// Bindings lists the bind group entries in binding order.
	Bindings []gpucore.BindGroupLayoutEntry
	// Source is the generated WGSL.
	Source string
}

// Dispatch is everything needed to record one program invocation.
type Dispatch struct {
	Artifact *Artifact
	// Groups is the normalized workgroup count.
	Groups [3]uint32
	// UniformData is the packed uniform buffer, Artifact.Layout.TotalSize
	// bytes long. It is nil when the program has no uniforms.
	UniformData []byte
}
