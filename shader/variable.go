// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"

	"github.com/gogpu/gpuprogram"
)

// VariableType is the logical type of a shader storage variable.
type VariableType int

// Shader variable types. Int64, Uint64 and Vec4Bool are emulated on top of
// u32 storage because WGSL has no portable 64-bit integers or packed bools.
const (
	InvalidType VariableType = iota - 1
	F32
	Vec2F32
	Vec4F32
	F16
	Vec2F16
	Vec4F16
	I32
	Vec2I32
	Vec4I32
	U32
	Vec2U32
	Vec4U32
	Int64
	Uint64
	Vec4Bool
)

var storageTypes = [...]string{
	F32:      "f32",
	Vec2F32:  "vec2<f32>",
	Vec4F32:  "vec4<f32>",
	F16:      "f16",
	Vec2F16:  "vec2<f16>",
	Vec4F16:  "vec4<f16>",
	I32:      "i32",
	Vec2I32:  "vec2<i32>",
	Vec4I32:  "vec4<i32>",
	U32:      "u32",
	Vec2U32:  "vec2<u32>",
	Vec4U32:  "vec4<u32>",
	Int64:    "vec2<u32>",
	Uint64:   "vec2<u32>",
	Vec4Bool: "u32",
}

// Valid reports whether t is a declared variable type.
func (t VariableType) Valid() bool {
	return t >= F32 && int(t) < len(storageTypes)
}

// IsF16 reports whether t needs the WGSL f16 extension.
func (t VariableType) IsF16() bool {
	return t == F16 || t == Vec2F16 || t == Vec4F16
}

// StorageType returns the WGSL element type of the storage array that
// backs a variable of type t.
func (t VariableType) StorageType() string {
	if !t.Valid() {
		return ""
	}
	return storageTypes[t]
}

// String returns the storage type, or "invalid".
func (t VariableType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return storageTypes[t]
}

// ToVariableType maps a tensor element type and a component count (1, 2 or
// 4) to a shader variable type.
func ToVariableType(elem gpuprogram.ElementType, components int) (VariableType, error) {
	var t VariableType = InvalidType
	switch elem {
	case gpuprogram.ElementFloat32:
		t = vectorOf(F32, Vec2F32, Vec4F32, components)
	case gpuprogram.ElementFloat16:
		t = vectorOf(F16, Vec2F16, Vec4F16, components)
	case gpuprogram.ElementInt32:
		t = vectorOf(I32, Vec2I32, Vec4I32, components)
	case gpuprogram.ElementUint32:
		t = vectorOf(U32, Vec2U32, Vec4U32, components)
	case gpuprogram.ElementInt64:
		if components == 1 {
			t = Int64
		}
	case gpuprogram.ElementUint64:
		if components == 1 {
			t = Uint64
		}
	case gpuprogram.ElementBool:
		if components == 4 {
			t = Vec4Bool
		}
	}
	if t == InvalidType {
		return InvalidType, fmt.Errorf("%w: %s with %d components", gpuprogram.ErrInvalidVariableType, elem, components)
	}
	return t, nil
}

func vectorOf(scalar, vec2, vec4 VariableType, components int) VariableType {
	switch components {
	case 1:
		return scalar
	case 2:
		return vec2
	case 4:
		return vec4
	default:
		return InvalidType
	}
}

// Scope is the binding scope of a shader variable.
type Scope int

// Variable scopes.
const (
	ScopeInput Scope = iota
	ScopeOutput
	ScopeLocal
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeInput:
		return "input"
	case ScopeOutput:
		return "output"
	case ScopeLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Variable is a storage buffer declared in generated shader code. It is
// created by Helper and lives for one generation pass.
//
// Reads and writes of a variable must go through GetByOffset and
// SetByOffset so that emulated types are packed correctly.
type Variable struct {
	name  string
	typ   VariableType
	scope Scope
	rank  int
	dims  gpuprogram.Shape // nil for a ranked variable
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Type returns the logical variable type.
func (v *Variable) Type() VariableType { return v.typ }

// Scope returns the binding scope.
func (v *Variable) Scope() Scope { return v.scope }

// Rank returns the rank of a ranked variable, or the rank of the fixed shape.
func (v *Variable) Rank() int {
	if v.dims == nil {
		return v.rank
	}
	return v.dims.Rank()
}

// Dims returns the fixed shape, or nil for a ranked variable.
func (v *Variable) Dims() gpuprogram.Shape { return v.dims }

// StorageType returns the WGSL element type of the backing array.
func (v *Variable) StorageType() string { return v.typ.StorageType() }

// GetByOffset returns an expression reading element offset.
func (v *Variable) GetByOffset(offset string) string {
	switch v.typ {
	case Int64:
		return "i32(" + v.name + "[" + offset + "].x)"
	case Uint64:
		return "u32(" + v.name + "[" + offset + "].x)"
	case Vec4Bool:
		e := v.name + "[" + offset + "]"
		return "vec4<bool>(bool(" + e + " & 0xFFu), bool(" + e + " & 0xFF00u), bool(" +
			e + " & 0xFF0000u), bool(" + e + " & 0xFF000000u))"
	default:
		return v.name + "[" + offset + "]"
	}
}

// SetByOffset returns a statement writing value to element offset.
func (v *Variable) SetByOffset(offset, value string) string {
	e := v.name + "[" + offset + "]"
	switch v.typ {
	case Int64:
		return e + "=vec2<u32>(u32(" + value + "), select(0u, 0xFFFFFFFFu, " + value + " < 0));"
	case Uint64:
		return e + "=vec2<u32>(u32(" + value + "), 0u);"
	case Vec4Bool:
		return e + "=dot(vec4<u32>(0x1, 0x100, 0x10000, 0x1000000), vec4<u32>(" + value + "));"
	default:
		return e + "=" + value + ";"
	}
}
