// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"encoding/binary"
	"fmt"
	"math"
)

// UniformValue is the runtime value of one uniform variable: a scalar or a
// fixed-length sequence of a single data type, stored as little-endian bytes.
//
// The zero UniformValue has no elements. It is accepted by CacheKey (which
// renders an empty length field for it) but rejected by Descriptor.Validate.
type UniformValue struct {
	Type DataType
	Len  int
	Data []byte
}

// UniformF32 creates an f32 uniform value from one or more elements.
func UniformF32(values ...float32) UniformValue {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return UniformValue{Type: F32, Len: len(values), Data: data}
}

// UniformF16 creates an f16 uniform value. Elements are given as float32 and
// stored as IEEE binary16.
func UniformF16(values ...float32) UniformValue {
	data := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(data[i*2:], Float16Bits(v))
	}
	return UniformValue{Type: F16, Len: len(values), Data: data}
}

// UniformU32 creates a u32 uniform value from one or more elements.
func UniformU32(values ...uint32) UniformValue {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}
	return UniformValue{Type: U32, Len: len(values), Data: data}
}

// UniformI32 creates an i32 uniform value from one or more elements.
func UniformI32(values ...int32) UniformValue {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(v))
	}
	return UniformValue{Type: I32, Len: len(values), Data: data}
}

// Validate checks the element count, the data type and the byte length.
func (u UniformValue) Validate() error {
	if !u.Type.Valid() {
		return fmt.Errorf("%w: uniform data type %d", ErrInvalidVariableType, u.Type)
	}
	if u.Len <= 0 {
		return ErrEmptyUniformValue
	}
	if want := u.Len * u.Type.Size(); len(u.Data) != want {
		return fmt.Errorf("%w: %s uniform of %d elements holds %d bytes, want %d",
			ErrInvalidVariableType, u.Type, u.Len, len(u.Data), want)
	}
	return nil
}

// UniformDefinition declares a uniform variable slot of a program kind.
type UniformDefinition struct {
	Name string
	Type DataType
}
