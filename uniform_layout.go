// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import "fmt"

// uniformStructAlign is the alignment of the whole uniform struct. Every
// array member is 16-aligned, so rounding to 16 satisfies WGSL struct rules.
const uniformStructAlign = 16

// UniformInfo locates one uniform variable inside the uniform buffer.
type UniformInfo struct {
	Type   DataType
	Offset int // byte offset of the first element
	Len    int // element count
	Size   int // bytes occupied, including array padding
}

// UniformLayout is the packed layout of a program's uniform buffer.
type UniformLayout struct {
	Uniforms  []UniformInfo
	TotalSize int
}

// PlanUniformLayout computes offsets following WGSL uniform address space
// rules (https://www.w3.org/TR/WGSL/#alignment-and-size).
//
// A uniform of n elements is declared as a scalar (n == 1), vecN (n <= 4), or
// an array of vec4 (array<mat2x4<f16>> for f16) when n > 4.
func PlanUniformLayout(values []UniformValue) UniformLayout {
	layout := UniformLayout{Uniforms: make([]UniformInfo, 0, len(values))}

	offset := 0
	for _, u := range values {
		n := u.Len
		elem := u.Type.Size()
		isF16 := u.Type == F16

		var align int
		switch {
		case isF16 && n > 4:
			align = 16
		case isF16 && n > 2:
			align = 8
		case !isF16 && n > 2:
			align = 16
		default:
			align = n * elem
		}
		offset = alignUp(offset, align)

		var size int
		if n > 4 {
			// array<vec4<T>, ceil(n/4)> or array<mat2x4<f16>, ceil(n/8)>; both strides are 16
			perStruct := 4
			if isF16 {
				perStruct = 8
			}
			size = (n + perStruct - 1) / perStruct * 16
		} else {
			size = n * elem
		}

		layout.Uniforms = append(layout.Uniforms, UniformInfo{Type: u.Type, Offset: offset, Len: n, Size: size})
		offset += size
	}

	layout.TotalSize = alignUp(offset, uniformStructAlign)
	return layout
}

// Pack writes values into a buffer of l.TotalSize bytes at their planned
// offsets. values must be the list the layout was planned from.
func (l UniformLayout) Pack(values []UniformValue) ([]byte, error) {
	if len(values) != len(l.Uniforms) {
		return nil, fmt.Errorf("%w: %d values for a layout of %d uniforms",
			ErrUniformMismatch, len(values), len(l.Uniforms))
	}

	buf := make([]byte, l.TotalSize)
	for i, u := range values {
		info := l.Uniforms[i]
		if u.Type != info.Type || u.Len != info.Len {
			return nil, fmt.Errorf("%w: uniform %d is %d x %s, layout expects %d x %s",
				ErrUniformMismatch, i, u.Len, u.Type, info.Len, info.Type)
		}
		copy(buf[info.Offset:info.Offset+len(u.Data)], u.Data)
	}
	return buf, nil
}

// alignUp rounds v up to a multiple of align. An align of 0 leaves v unchanged.
func alignUp(v, align int) int {
	if align <= 0 {
		return v
	}
	return (v + align - 1) / align * align
}
