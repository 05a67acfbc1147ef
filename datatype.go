// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import "math"

// DataType is the scalar type of a uniform variable.
type DataType uint8

// Uniform data types.
const (
	F32 DataType = iota
	F16
	U32
	I32
)

var dataTypeNames = [...]string{"f32", "f16", "u32", "i32"}

var dataTypeSizes = [...]int{4, 2, 4, 4}

// Valid reports whether t is one of the declared uniform data types.
func (t DataType) Valid() bool {
	return int(t) < len(dataTypeNames)
}

// String returns the WGSL scalar type name.
func (t DataType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return dataTypeNames[t]
}

// Size returns the byte size of one element, or 0 for an invalid type.
func (t DataType) Size() int {
	if !t.Valid() {
		return 0
	}
	return dataTypeSizes[t]
}

// ConstantType is the type of a constant or overridable constant.
type ConstantType uint8

// Constant types.
const (
	ConstF32 ConstantType = iota
	ConstF16
	ConstU32
	ConstI32
	ConstBool
)

var constantTypeNames = [...]string{"f32", "f16", "u32", "i32", "bool"}

// Valid reports whether t is one of the declared constant types.
func (t ConstantType) Valid() bool {
	return int(t) < len(constantTypeNames)
}

// String returns the WGSL type name.
func (t ConstantType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return constantTypeNames[t]
}

// ElementType is the element type of a tensor bound to a program.
type ElementType uint8

// Tensor element types.
const (
	ElementUndefined ElementType = iota
	ElementFloat32
	ElementFloat16
	ElementInt32
	ElementUint32
	ElementInt64
	ElementUint64
	ElementBool
)

var elementTypeNames = [...]string{"undefined", "f32", "f16", "i32", "u32", "i64", "u64", "bool"}

// String returns the short name used in cache keys.
func (t ElementType) String() string {
	if int(t) >= len(elementTypeNames) {
		return "undefined"
	}
	return elementTypeNames[t]
}

// ParseElementType maps a short type name ("f32", "i64", ...) back to an ElementType.
func ParseElementType(s string) (ElementType, bool) {
	for i, name := range elementTypeNames {
		if i > 0 && name == s {
			return ElementType(i), true
		}
	}
	return ElementUndefined, false
}

// Float16Bits converts f to IEEE 754 binary16 bits, rounding to nearest even.
// Values above the binary16 range become infinity; NaN stays NaN.
func Float16Bits(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int((b >> 23) & 0xff)
	mant := b & 0x7fffff

	if exp == 0xff {
		if mant == 0 {
			return sign | 0x7c00
		}
		return sign | 0x7e00
	}

	e := exp - 127 + 15
	if e >= 0x1f {
		return sign | 0x7c00
	}

	if e <= 0 {
		// subnormal half
		if e < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(14 - e)
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if rem > mid || (rem == mid && half&1 == 1) {
			half++
		}
		return sign | uint16(half)
	}

	half := uint32(e)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || (rem == 0x1000 && half&1 == 1) {
		// a carry into the exponent field yields the correct next value (or infinity)
		half++
	}
	return sign | uint16(half)
}
