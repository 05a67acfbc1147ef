// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package elementwise

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/pipeline"
	"github.com/gogpu/gpuprogram/shader"
)

// Kernel errors.
var (
	// ErrUnknownOp is returned for an operator name that is not in the table.
	ErrUnknownOp = errors.New("elementwise: unknown operator")

	// ErrUnsupportedType is returned when an operator does not accept the
	// element type of its input.
	ErrUnsupportedType = errors.New("elementwise: unsupported element type")

	// ErrShapeMismatch is returned when input and output disagree in element
	// type or element count.
	ErrShapeMismatch = errors.New("elementwise: input and output differ")

	// ErrUnknownAttribute is returned for an attribute the operator does not read.
	ErrUnknownAttribute = errors.New("elementwise: unknown attribute")
)

// components is the vector width processed per invocation.
const components = 4

// Name implements gpuprogram.Kind.
func (op *Op) Name() string { return op.OpType }

// Metadata implements gpuprogram.Kind. Every operator reads one uniform,
// vec_size, and declares its attributes as f32 overridable constants.
func (op *Op) Metadata() gpuprogram.Metadata {
	m := gpuprogram.Metadata{
		Uniforms: []gpuprogram.UniformDefinition{{Name: "vec_size", Type: gpuprogram.U32}},
	}
	for _, a := range op.Attributes {
		m.OverridableConstants = append(m.OverridableConstants, gpuprogram.OverridableConstantDefinition{
			Name: a.Name, Type: gpuprogram.ConstF32, Default: a.Default, HasDefault: true,
		})
	}
	return m
}

// Descriptor describes applying op to in, writing out. attrs overrides
// attribute defaults by name and may be nil.
//
// The input is read as vectors of four elements, so the dispatch covers
// ceil(n/4) invocations in workgroups of shader.WorkgroupSize.
func (op *Op) Descriptor(in, out gpuprogram.Tensor, attrs map[string]float64) (*gpuprogram.Descriptor, error) {
	if in == nil || out == nil {
		return nil, fmt.Errorf("%w: %s needs one input and one output", ErrShapeMismatch, op.OpType)
	}
	elem := in.ElementType()
	if !op.Supports(elem) {
		return nil, fmt.Errorf("%w: %s does not accept %s", ErrUnsupportedType, op.OpType, elem)
	}
	if out.ElementType() != elem || out.Shape().Size() != in.Shape().Size() {
		return nil, fmt.Errorf("%w: %s input %s%s, output %s%s", ErrShapeMismatch, op.OpType,
			elem, in.Shape(), out.ElementType(), out.Shape())
	}

	values, err := op.attributeValues(attrs)
	if err != nil {
		return nil, err
	}

	n := in.Shape().Size()
	vecSize := uint32((n + components - 1) / components)
	groups := (vecSize + shader.WorkgroupSize - 1) / shader.WorkgroupSize

	d := gpuprogram.NewDescriptor(op.OpType).
		ForKind(op).
		WithInputs(gpuprogram.Input{Tensor: in, Dependency: gpuprogram.DependType}).
		WithOutputs(out).
		WithDispatchSize(groups).
		WithUniforms(gpuprogram.UniformU32(vecSize))
	if len(values) > 0 {
		d.WithOverridableConstants(values...)
	}
	return d, nil
}

// attributeValues resolves attrs against the declared attributes. Every
// attribute is set, so the cache key always carries the baked values.
func (op *Op) attributeValues(attrs map[string]float64) ([]gpuprogram.OverridableConstantValue, error) {
	for name := range attrs {
		if !op.hasAttribute(name) {
			return nil, fmt.Errorf("%w: %s has no attribute %q", ErrUnknownAttribute, op.OpType, name)
		}
	}

	values := make([]gpuprogram.OverridableConstantValue, 0, len(op.Attributes))
	for _, a := range op.Attributes {
		v, ok := attrs[a.Name]
		if !ok {
			v = a.Default
		}
		values = append(values, gpuprogram.Override(gpuprogram.ConstF32, v))
	}
	return values, nil
}

func (op *Op) hasAttribute(name string) bool {
	for _, a := range op.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Generator returns the shader generator for op.
func (op *Op) Generator() shader.Generator {
	return func(h *shader.Helper) error {
		d := h.Descriptor()
		if len(d.Inputs()) != 1 || len(d.Outputs()) != 1 {
			return fmt.Errorf("%w: %s needs one input and one output", ErrShapeMismatch, op.OpType)
		}

		inType, err := shader.ToVariableType(d.Inputs()[0].Tensor.ElementType(), components)
		if err != nil {
			return err
		}
		outType, err := shader.ToVariableType(d.Outputs()[0].ElementType(), components)
		if err != nil {
			return err
		}

		x, err := h.AddInput("x", inType, 1)
		if err != nil {
			return err
		}
		y, err := h.AddOutput("y", outType, 1)
		if err != nil {
			return err
		}

		valueType := x.StorageType()
		elemType := d.Inputs()[0].Tensor.ElementType().String()
		if impl := expand(op.Impl, valueType, elemType); impl != "" {
			h.AppendImplementation(impl)
		}
		return h.MainFunctionBody(
			h.GuardAgainstOutOfBoundsWorkgroupSizes("uniforms.vec_size"),
			"  let a = ", x.GetByOffset("global_idx"), ";\n",
			"  ", y.SetByOffset("global_idx", expand(op.Expression, valueType, elemType)),
		)
	}
}

// Run prepares op over in and out on c. It returns a nil Dispatch when the
// tensors are empty and there is nothing to run.
func Run(c *pipeline.Cache, opType string, in, out gpuprogram.Tensor, attrs map[string]float64) (*pipeline.Dispatch, error) {
	op, ok := Lookup(opType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, opType)
	}
	if in != nil && in.Shape().Size() == 0 {
		return nil, nil
	}
	d, err := op.Descriptor(in, out, attrs)
	if err != nil {
		return nil, err
	}
	return c.Prepare(d, op.Generator())
}
