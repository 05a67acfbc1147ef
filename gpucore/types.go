// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// ComputePipelineID is an opaque handle to a compute pipeline.
// IDs are uint64 to accommodate various backend handle sizes.
type ComputePipelineID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BindingType specifies the type of a shader binding.
type BindingType uint32

// Binding types.
const (
	// BindingTypeUniformBuffer is a uniform buffer binding.
	BindingTypeUniformBuffer BindingType = iota + 1

	// BindingTypeStorageBuffer is a storage buffer binding (read-write).
	BindingTypeStorageBuffer

	// BindingTypeReadOnlyStorageBuffer is a read-only storage buffer binding.
	BindingTypeReadOnlyStorageBuffer
)

// String returns a short name for the binding type.
func (t BindingType) String() string {
	switch t {
	case BindingTypeUniformBuffer:
		return "uniform"
	case BindingTypeStorageBuffer:
		return "storage"
	case BindingTypeReadOnlyStorageBuffer:
		return "read-only-storage"
	default:
		return "unknown"
	}
}

// BindGroupLayoutEntry describes a single binding in a bind group layout.
type BindGroupLayoutEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Type is the type of resource bound at this index.
	Type BindingType

	// MinBindingSize is the minimum buffer size, 0 when unknown.
	MinBindingSize uint64
}

// ComputePipelineDesc describes a compute pipeline built from WGSL source.
type ComputePipelineDesc struct {
	// Label is an optional debug label.
	Label string

	// Source is the complete WGSL module.
	Source string

	// EntryPoint is the name of the shader entry point function.
	EntryPoint string

	// Bindings is the layout of bind group 0, in binding order.
	Bindings []BindGroupLayoutEntry
}
