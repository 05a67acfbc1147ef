// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"errors"
	"testing"
)

var scaleKind = testKind{
	name: "Scale",
	meta: Metadata{
		OverridableConstants: []OverridableConstantDefinition{
			{Name: "factor", Type: ConstF32, Default: 2, HasDefault: true},
		},
		Uniforms: []UniformDefinition{
			{Name: "vec_size", Type: U32},
			{Name: "bias", Type: F32},
		},
	},
}

func validScale() *Descriptor {
	x := TensorInfo{Type: ElementFloat32, Dims: Shape{16}}
	return NewDescriptor("Scale").
		ForKind(scaleKind).
		WithInputs(Input{Tensor: x, Dependency: DependType}).
		WithOutputs(x).
		WithDispatchSize(1).
		WithUniforms(UniformU32(4), UniformF32(0.5))
}

func TestDescriptorDefaults(t *testing.T) {
	d := NewDescriptor("Abs")
	if d.Name() != "Abs" {
		t.Errorf("Name() = %q", d.Name())
	}
	if d.CacheHint() != "" {
		t.Errorf("CacheHint() = %q, want empty", d.CacheHint())
	}
	if d.DispatchSize() != [3]uint32{} {
		t.Errorf("DispatchSize() = %v, want unset", d.DispatchSize())
	}
	if !errors.Is(d.Validate(), ErrInvalidDispatchSize) {
		t.Errorf("Validate() of descriptor without dispatch = %v, want ErrInvalidDispatchSize", d.Validate())
	}
}

func TestDescriptorWithDispatchSize(t *testing.T) {
	tests := []struct {
		dims []uint32
		want [3]uint32
	}{
		{[]uint32{8}, [3]uint32{8, 1, 1}},
		{[]uint32{8, 2}, [3]uint32{8, 2, 1}},
		{[]uint32{8, 2, 3}, [3]uint32{8, 2, 3}},
		{nil, [3]uint32{0, 1, 1}},
	}
	for _, tt := range tests {
		if got := NewDescriptor("p").WithDispatchSize(tt.dims...).DispatchSize(); got != tt.want {
			t.Errorf("WithDispatchSize(%v) = %v, want %v", tt.dims, got, tt.want)
		}
	}
}

func TestDescriptorCacheHint(t *testing.T) {
	d := NewDescriptor("p").WithCacheHint("a", "b", "c")
	if d.CacheHint() != "a|b|c" {
		t.Errorf("CacheHint() = %q, want %q", d.CacheHint(), "a|b|c")
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Descriptor) *Descriptor
		want   error
	}{
		{"valid", func(d *Descriptor) *Descriptor { return d }, nil},
		{"zero dispatch", func(d *Descriptor) *Descriptor { return d.WithDispatchSize(4, 0) }, ErrInvalidDispatchSize},
		{"missing uniform", func(d *Descriptor) *Descriptor {
			return NewDescriptor("Scale").ForKind(scaleKind).WithDispatchSize(1).WithUniforms(UniformU32(4))
		}, ErrUniformMismatch},
		{"uniform type", func(d *Descriptor) *Descriptor {
			return NewDescriptor("Scale").ForKind(scaleKind).WithDispatchSize(1).WithUniforms(UniformU32(4), UniformU32(1))
		}, ErrUniformMismatch},
		{"empty uniform", func(d *Descriptor) *Descriptor {
			return NewDescriptor("Scale").ForKind(scaleKind).WithDispatchSize(1).WithUniforms(UniformU32(4), UniformF32())
		}, ErrEmptyUniformValue},
		{"override type", func(d *Descriptor) *Descriptor {
			return d.WithOverridableConstants(Override(ConstU32, 3))
		}, ErrInvalidVariableType},
		{"too many overrides", func(d *Descriptor) *Descriptor {
			return d.WithOverridableConstants(Override(ConstF32, 3), Override(ConstF32, 4))
		}, ErrInvalidVariableType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(validScale()).Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDescriptorValidateNilTensor(t *testing.T) {
	d := NewDescriptor("p").WithDispatchSize(1).WithInputs(Input{})
	if err := d.Validate(); err == nil {
		t.Error("Validate() accepted an input without tensor")
	}
	d = NewDescriptor("p").WithDispatchSize(1).WithOutputs(nil)
	if err := d.Validate(); err == nil {
		t.Error("Validate() accepted a nil output")
	}
}

func TestDescriptorUnsetOverrideKeepsDefault(t *testing.T) {
	d := validScale().WithOverridableConstants(OverridableConstantValue{})
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() with unset override error = %v", err)
	}
}

func TestShape(t *testing.T) {
	s := Shape{2, 3, 4}
	if s.Rank() != 3 || s.Size() != 24 || s.String() != "{2,3,4}" {
		t.Errorf("Shape{2,3,4}: rank %d size %d string %q", s.Rank(), s.Size(), s.String())
	}
	scalar := Shape{}
	if scalar.Rank() != 0 || scalar.Size() != 1 || scalar.String() != "{}" {
		t.Errorf("scalar shape: rank %d size %d string %q", scalar.Rank(), scalar.Size(), scalar.String())
	}
}

func TestDescriptorSettersReplace(t *testing.T) {
	d := validScale()

	d.WithUniforms(UniformU32(8), UniformF32(1.5))
	if n := len(d.Uniforms()); n != 2 {
		t.Fatalf("reused descriptor has %d uniforms, want 2", n)
	}
	if got := d.Uniforms()[0]; got.Len != 1 || got.Data[0] != 8 {
		t.Errorf("first uniform = %+v, want vec_size 8", got)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() after replacing uniforms error = %v", err)
	}

	d.WithOverridableConstants(Override(ConstF32, 3)).WithOverridableConstants(Override(ConstF32, 4))
	if got := d.OverridableConstants(); len(got) != 1 || got[0].Value != 4 {
		t.Errorf("OverridableConstants() = %+v, want one value 4", got)
	}

	y := TensorInfo{Type: ElementFloat32, Dims: Shape{8}}
	d.WithInputs(Input{Tensor: y}).WithOutputs(y)
	if len(d.Inputs()) != 1 || len(d.Outputs()) != 1 {
		t.Errorf("got %d inputs and %d outputs, want 1 and 1", len(d.Inputs()), len(d.Outputs()))
	}
}
