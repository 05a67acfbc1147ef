// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
)

// WorkgroupSize is the default workgroup size along X.
const WorkgroupSize = 64

// EntryPoint is the name of the generated compute entry point.
const EntryPoint = "main"

// Helper assembles the WGSL source of one program.
//
// An operator's Generator declares storage variables, registers helper
// functions and sets the main function body; Source then emits the complete
// module. A Helper is used by a single goroutine for one generation pass.
type Helper struct {
	desc     *gpuprogram.Descriptor
	caps     gpucore.Capabilities
	dispatch [3]uint32

	vars          [2][]*Variable // indexed by ScopeInput, ScopeOutput
	impl          []string
	body          string
	workgroupSize [3]uint32
	useF16        bool
}

// NewHelper creates a helper for desc on a device with caps. dispatch is the
// normalized dispatch size of the invocation.
func NewHelper(desc *gpuprogram.Descriptor, caps gpucore.Capabilities, dispatch [3]uint32) (*Helper, error) {
	if desc == nil {
		return nil, errors.New("shader: descriptor must not be nil")
	}
	if dispatch[0] == 0 || dispatch[1] == 0 || dispatch[2] == 0 {
		return nil, fmt.Errorf("%w: %v", gpuprogram.ErrInvalidDispatchSize, dispatch)
	}
	return &Helper{
		desc:          desc,
		caps:          caps,
		dispatch:      dispatch,
		workgroupSize: [3]uint32{WorkgroupSize, 1, 1},
	}, nil
}

// Descriptor returns the descriptor being generated.
func (h *Helper) Descriptor() *gpuprogram.Descriptor { return h.desc }

// Capabilities returns the target device capabilities.
func (h *Helper) Capabilities() gpucore.Capabilities { return h.caps }

// DispatchSize returns the normalized dispatch size.
func (h *Helper) DispatchSize() [3]uint32 { return h.dispatch }

// AddInput declares a ranked read-only storage variable.
func (h *Helper) AddInput(name string, typ VariableType, rank int) (*Variable, error) {
	return h.AddVariable(ScopeInput, name, typ, rank)
}

// AddOutput declares a ranked read-write storage variable.
func (h *Helper) AddOutput(name string, typ VariableType, rank int) (*Variable, error) {
	return h.AddVariable(ScopeOutput, name, typ, rank)
}

// AddVariable declares a ranked storage variable in scope. Only input and
// output scopes are bindable.
func (h *Helper) AddVariable(scope Scope, name string, typ VariableType, rank int) (*Variable, error) {
	return h.addVariable(&Variable{name: name, typ: typ, scope: scope, rank: rank})
}

// AddVariableWithShape declares a storage variable whose shape is fixed at
// generation time.
func (h *Helper) AddVariableWithShape(scope Scope, name string, typ VariableType, dims gpuprogram.Shape) (*Variable, error) {
	if dims == nil {
		dims = gpuprogram.Shape{}
	}
	return h.addVariable(&Variable{name: name, typ: typ, scope: scope, dims: dims})
}

func (h *Helper) addVariable(v *Variable) (*Variable, error) {
	if !v.typ.Valid() {
		return nil, fmt.Errorf("%w: variable %s", gpuprogram.ErrInvalidVariableType, v.name)
	}
	if v.scope != ScopeInput && v.scope != ScopeOutput {
		return nil, fmt.Errorf("shader: variable %s: %s scope cannot be bound", v.name, v.scope)
	}
	if n := len(h.vars[ScopeInput]) + len(h.vars[ScopeOutput]); uint32(n) >= h.caps.MaxStorageBuffersPerShaderStage {
		return nil, fmt.Errorf("shader: too many storage buffers in shader, max is %d", h.caps.MaxStorageBuffersPerShaderStage)
	}
	if v.typ.IsF16() {
		h.useF16 = true
	}
	h.vars[v.scope] = append(h.vars[v.scope], v)
	return v, nil
}

// Inputs returns the declared input variables in binding order.
func (h *Helper) Inputs() []*Variable { return h.vars[ScopeInput] }

// Outputs returns the declared output variables in binding order.
func (h *Helper) Outputs() []*Variable { return h.vars[ScopeOutput] }

// UsesF16 reports whether any declared variable needs the f16 extension.
func (h *Helper) UsesF16() bool { return h.useF16 }

// AppendImplementation adds helper code emitted verbatim before the entry
// point. Parts of one call are concatenated into a single block.
func (h *Helper) AppendImplementation(parts ...string) *Helper {
	h.impl = append(h.impl, strings.Join(parts, ""))
	return h
}

// MainFunctionBody sets the entry point body with the default workgroup
// size (64, 1, 1).
func (h *Helper) MainFunctionBody(parts ...string) error {
	return h.MainFunctionBodyWithWorkgroupSize([3]uint32{WorkgroupSize, 1, 1}, parts...)
}

// MainFunctionBodyWithWorkgroupSize sets the entry point body. The body can
// read global_idx and local_idx; the 3-D form, used unless both the
// workgroup and the dispatch are one-dimensional, also exposes num_workgroups.
func (h *Helper) MainFunctionBodyWithWorkgroupSize(wg [3]uint32, parts ...string) error {
	if h.body != "" {
		return errors.New("shader: main function body has already been set")
	}
	if wg[0] == 0 || wg[1] == 0 || wg[2] == 0 {
		return fmt.Errorf("%w: %v must be greater than 0", gpuprogram.ErrWorkgroupSizeInvalid, wg)
	}
	c := h.caps
	if wg[0] > c.MaxComputeWorkgroupSizeX || wg[1] > c.MaxComputeWorkgroupSizeY || wg[2] > c.MaxComputeWorkgroupSizeZ {
		return fmt.Errorf("%w: %v exceeds the maximum [%d, %d, %d]", gpuprogram.ErrWorkgroupSizeInvalid, wg,
			c.MaxComputeWorkgroupSizeX, c.MaxComputeWorkgroupSizeY, c.MaxComputeWorkgroupSizeZ)
	}
	if uint64(wg[0])*uint64(wg[1])*uint64(wg[2]) > uint64(c.MaxComputeInvocationsPerWorkgroup) {
		return fmt.Errorf("%w: %v exceeds the maximum of %d invocations", gpuprogram.ErrWorkgroupSizeInvalid, wg,
			c.MaxComputeInvocationsPerWorkgroup)
	}

	// A rebalanced dispatch spreads groups over y and z, so the flat index
	// has to be rebuilt from workgroup_id even for a one-row workgroup.
	is1D := wg[1] == 1 && wg[2] == 1 && h.dispatch[1] == 1 && h.dispatch[2] == 1

	var b strings.Builder
	b.WriteString("@compute @workgroup_size(workgroup_size_x, workgroup_size_y, workgroup_size_z)\n" +
		"fn main(@builtin(global_invocation_id) global_id : vec3<u32>,\n" +
		"        @builtin(workgroup_id) workgroup_id : vec3<u32>,\n" +
		"        @builtin(local_invocation_id) local_id : vec3<u32>")
	if !is1D {
		b.WriteString(",\n" +
			"        @builtin(local_invocation_index) local_idx : u32,\n" +
			"        @builtin(num_workgroups) num_workgroups : vec3<u32>")
	}
	b.WriteString(") {\n")
	if is1D {
		b.WriteString("  let global_idx = global_id.x;\n" +
			"  let local_idx = local_id.x;\n")
	} else {
		volume := uint64(wg[0]) * uint64(wg[1]) * uint64(wg[2])
		b.WriteString("  let global_idx = (workgroup_id.z * num_workgroups.x * num_workgroups.y + workgroup_id.y * num_workgroups.x + workgroup_id.x)\n" +
			"                     * " + strconv.FormatUint(volume, 10) + "u + local_idx;\n")
	}
	for _, p := range parts {
		b.WriteString(p)
	}
	b.WriteString("\n}\n")

	h.body = b.String()
	h.workgroupSize = wg
	return nil
}

// WorkgroupSize returns the workgroup size of the entry point.
func (h *Helper) WorkgroupSize() [3]uint32 { return h.workgroupSize }

// GuardAgainstOutOfBoundsWorkgroupSizes returns a statement that exits
// invocations whose global index is not below size. Normalized dispatches
// may run more invocations than elements, so every body should start with it.
func (h *Helper) GuardAgainstOutOfBoundsWorkgroupSizes(size string) string {
	return "  if (global_idx >= " + size + ") { return; }\n"
}

// BindGroupLayout returns the layout of bind group 0: inputs, then outputs,
// then the uniform buffer if the program has uniforms.
func (h *Helper) BindGroupLayout() []gpucore.BindGroupLayoutEntry {
	entries := make([]gpucore.BindGroupLayoutEntry, 0, len(h.vars[ScopeInput])+len(h.vars[ScopeOutput])+1)
	binding := uint32(0)
	for range h.vars[ScopeInput] {
		entries = append(entries, gpucore.BindGroupLayoutEntry{Binding: binding, Type: gpucore.BindingTypeReadOnlyStorageBuffer})
		binding++
	}
	for range h.vars[ScopeOutput] {
		entries = append(entries, gpucore.BindGroupLayoutEntry{Binding: binding, Type: gpucore.BindingTypeStorageBuffer})
		binding++
	}
	if len(h.desc.Uniforms()) > 0 {
		entries = append(entries, gpucore.BindGroupLayoutEntry{
			Binding:        binding,
			Type:           gpucore.BindingTypeUniformBuffer,
			MinBindingSize: uint64(gpuprogram.PlanUniformLayout(h.desc.Uniforms()).TotalSize),
		})
	}
	return entries
}

// Source returns the complete WGSL module.
func (h *Helper) Source() (string, error) {
	if h.body == "" {
		return "", fmt.Errorf("shader: program %s has no main function body", h.desc.Name())
	}

	var b strings.Builder

	if h.needsF16() {
		if !h.caps.ShaderF16 {
			return "", fmt.Errorf("%w: program %s requires f16 but the device does not support it",
				gpuprogram.ErrUnsupportedFeature, h.desc.Name())
		}
		b.WriteString("enable f16;\n\n")
	}

	if err := h.writeConstants(&b); err != nil {
		return "", err
	}

	binding := 0
	for _, v := range h.vars[ScopeInput] {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var<storage, read> %s: array<%s>;\n", binding, v.name, v.StorageType())
		binding++
	}
	for _, v := range h.vars[ScopeOutput] {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var<storage, read_write> %s: array<%s>;\n", binding, v.name, v.StorageType())
		binding++
	}

	if err := h.writeUniforms(&b, binding); err != nil {
		return "", err
	}

	b.WriteByte('\n')
	for _, impl := range h.impl {
		b.WriteString(impl)
		b.WriteByte('\n')
	}

	b.WriteString(h.body)
	return b.String(), nil
}

// needsF16 reports whether any variable, uniform or constant is f16.
func (h *Helper) needsF16() bool {
	if h.useF16 {
		return true
	}
	for _, u := range h.desc.Uniforms() {
		if u.Type == gpuprogram.F16 {
			return true
		}
	}
	meta := h.desc.Metadata()
	for _, c := range meta.Constants {
		if c.Type == gpuprogram.ConstF16 {
			return true
		}
	}
	for _, c := range meta.OverridableConstants {
		if c.Type == gpuprogram.ConstF16 {
			return true
		}
	}
	return false
}

func (h *Helper) writeConstants(b *strings.Builder) error {
	b.WriteString("const WORKGROUP_SIZE: u32 = " + strconv.Itoa(WorkgroupSize) + ";\n")
	for i, axis := range [3]string{"x", "y", "z"} {
		def := strconv.FormatUint(uint64(h.workgroupSize[i]), 10)
		if i == 0 && h.workgroupSize[0] == WorkgroupSize {
			def = "WORKGROUP_SIZE"
		}
		b.WriteString("override workgroup_size_" + axis + ": u32 = " + def + ";\n")
	}
	b.WriteByte('\n')

	meta := h.desc.Metadata()
	for _, c := range meta.Constants {
		lit, err := literal(c.Type, c.Value)
		if err != nil {
			return fmt.Errorf("constant %s: %w", c.Name, err)
		}
		b.WriteString("const " + c.Name + ": " + c.Type.String() + " = " + lit + ";\n")
	}

	values := h.desc.OverridableConstants()
	for i, c := range meta.OverridableConstants {
		b.WriteString("override " + c.Name + ": " + c.Type.String())
		v, ok := c.Default, c.HasDefault
		if i < len(values) && values[i].HasValue {
			v, ok = values[i].Value, true
		}
		if ok {
			lit, err := literal(c.Type, v)
			if err != nil {
				return fmt.Errorf("overridable constant %s: %w", c.Name, err)
			}
			b.WriteString(" = " + lit)
		}
		b.WriteString(";\n")
	}
	return nil
}

func (h *Helper) writeUniforms(b *strings.Builder, binding int) error {
	values := h.desc.Uniforms()
	if len(values) == 0 {
		return nil
	}
	defs := h.desc.Metadata().Uniforms
	if len(defs) != len(values) {
		return fmt.Errorf("%w: program %s has %d uniform values for %d definitions",
			gpuprogram.ErrUniformMismatch, h.desc.Name(), len(values), len(defs))
	}

	b.WriteString("struct Uniforms {\n")
	for i, u := range values {
		if !u.Type.Valid() {
			return fmt.Errorf("%w: uniform %s", gpuprogram.ErrInvalidVariableType, defs[i].Name)
		}
		if u.Len <= 0 {
			return fmt.Errorf("uniform %s: %w", defs[i].Name, gpuprogram.ErrEmptyUniformValue)
		}
		if i > 0 {
			b.WriteString(",\n")
		}
		typ := u.Type.String()
		b.WriteString("  ")
		switch {
		case u.Len > 4 && u.Type == gpuprogram.F16:
			fmt.Fprintf(b, "@align(16) %s: array<mat2x4<%s>, %d>", defs[i].Name, typ, (u.Len+7)/8)
		case u.Len > 4:
			fmt.Fprintf(b, "%s: array<vec4<%s>, %d>", defs[i].Name, typ, (u.Len+3)/4)
		case u.Len > 1:
			fmt.Fprintf(b, "%s: vec%d<%s>", defs[i].Name, u.Len, typ)
		default:
			b.WriteString(defs[i].Name + ": " + typ)
		}
	}
	fmt.Fprintf(b, "\n};\n@group(0) @binding(%d) var<uniform> uniforms: Uniforms;\n", binding)
	return nil
}

