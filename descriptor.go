// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor is the concrete configuration of one program invocation.
//
// A Descriptor owns its uniform values, overridable constant values and
// dispatch size, and borrows its tensors. Build one with NewDescriptor and
// the chaining With* methods:
//
//	d := gpuprogram.NewDescriptor("Abs").
//	    ForKind(absKind).
//	    WithInputs(gpuprogram.Input{Tensor: x, Dependency: gpuprogram.DependType}).
//	    WithOutputs(y).
//	    WithDispatchSize(groups).
//	    WithUniforms(gpuprogram.UniformU32(vecSize))
type Descriptor struct {
	name                 string
	cacheHint            string
	inputs               []Input
	outputs              []Tensor
	dispatch             [3]uint32
	uniforms             []UniformValue
	overridableConstants []OverridableConstantValue
	metadata             Metadata
}

// NewDescriptor creates a descriptor for a program with the given name.
func NewDescriptor(name string) *Descriptor {
	return &Descriptor{name: name}
}

// ForKind attaches the metadata of a program kind.
func (d *Descriptor) ForKind(k Kind) *Descriptor {
	d.metadata = k.Metadata()
	return d
}

// WithMetadata attaches program metadata directly.
func (d *Descriptor) WithMetadata(m Metadata) *Descriptor {
	d.metadata = m
	return d
}

// WithCacheHint sets the cache hint. Multiple parts are joined with '|'.
func (d *Descriptor) WithCacheHint(parts ...string) *Descriptor {
	d.cacheHint = strings.Join(parts, "|")
	return d
}

// WithInputs replaces the input tensors.
func (d *Descriptor) WithInputs(inputs ...Input) *Descriptor {
	d.inputs = append(d.inputs[:0], inputs...)
	return d
}

// WithOutputs replaces the output tensors.
func (d *Descriptor) WithOutputs(outputs ...Tensor) *Descriptor {
	d.outputs = append(d.outputs[:0], outputs...)
	return d
}

// WithDispatchSize sets the workgroup dispatch size. One to three dimensions
// may be given; omitted trailing dimensions are 1.
func (d *Descriptor) WithDispatchSize(dims ...uint32) *Descriptor {
	d.dispatch = [3]uint32{0, 1, 1}
	for i := 0; i < len(dims) && i < 3; i++ {
		d.dispatch[i] = dims[i]
	}
	return d
}

// WithUniforms replaces the uniform values, in metadata declaration order.
func (d *Descriptor) WithUniforms(values ...UniformValue) *Descriptor {
	d.uniforms = append(d.uniforms[:0], values...)
	return d
}

// WithOverridableConstants sets overridable constant values, positionally
// matching the metadata's overridable constant definitions.
func (d *Descriptor) WithOverridableConstants(values ...OverridableConstantValue) *Descriptor {
	d.overridableConstants = append(d.overridableConstants[:0], values...)
	return d
}

// Name returns the program name.
func (d *Descriptor) Name() string { return d.name }

// CacheHint returns the cache hint (empty by default).
func (d *Descriptor) CacheHint() string { return d.cacheHint }

// Inputs returns the input tensors.
func (d *Descriptor) Inputs() []Input { return d.inputs }

// Outputs returns the output tensors.
func (d *Descriptor) Outputs() []Tensor { return d.outputs }

// DispatchSize returns the raw (x, y, z) dispatch group counts.
func (d *Descriptor) DispatchSize() [3]uint32 { return d.dispatch }

// Uniforms returns the uniform values.
func (d *Descriptor) Uniforms() []UniformValue { return d.uniforms }

// OverridableConstants returns the overridable constant values.
func (d *Descriptor) OverridableConstants() []OverridableConstantValue {
	return d.overridableConstants
}

// Metadata returns the program metadata.
func (d *Descriptor) Metadata() Metadata { return d.metadata }

// Validate checks the descriptor against its metadata.
func (d *Descriptor) Validate() error {
	if d.name == "" {
		return errors.New("gpuprogram: program name is empty")
	}
	if err := d.metadata.Validate(); err != nil {
		return fmt.Errorf("program %s: %w", d.name, err)
	}

	for i, dim := range d.dispatch {
		if dim == 0 {
			return fmt.Errorf("%w: program %s dimension %d is zero", ErrInvalidDispatchSize, d.name, i)
		}
	}

	defs := d.metadata.Uniforms
	if len(d.uniforms) != len(defs) {
		return fmt.Errorf("%w: program %s has %d uniform values for %d definitions",
			ErrUniformMismatch, d.name, len(d.uniforms), len(defs))
	}
	for i, u := range d.uniforms {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("program %s uniform %s: %w", d.name, defs[i].Name, err)
		}
		if u.Type != defs[i].Type {
			return fmt.Errorf("%w: program %s uniform %s is %s, declared %s",
				ErrUniformMismatch, d.name, defs[i].Name, u.Type, defs[i].Type)
		}
	}

	overrides := d.metadata.OverridableConstants
	if len(d.overridableConstants) > len(overrides) {
		return fmt.Errorf("%w: program %s has %d overridable constant values for %d definitions",
			ErrInvalidVariableType, d.name, len(d.overridableConstants), len(overrides))
	}
	for i, v := range d.overridableConstants {
		if v.HasValue && v.Type != overrides[i].Type {
			return fmt.Errorf("%w: program %s overridable constant %s is %s, declared %s",
				ErrInvalidVariableType, d.name, overrides[i].Name, v.Type, overrides[i].Type)
		}
	}

	for i, in := range d.inputs {
		if in.Tensor == nil {
			return fmt.Errorf("gpuprogram: program %s input %d has no tensor", d.name, i)
		}
	}
	for i, out := range d.outputs {
		if out == nil {
			return fmt.Errorf("gpuprogram: program %s output %d has no tensor", d.name, i)
		}
	}
	return nil
}
