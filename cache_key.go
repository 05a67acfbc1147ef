// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"strconv"
	"strings"
)

// CacheKey derives the pipeline cache key of a descriptor.
//
// Key format:
//
//	<name>[<hint>]:<is1D>:<uniforms>:<inputs>
//	<uniforms> = <len>|<len>|...           (empty field for a zero-length uniform)
//	<inputs>   = <type>;<rank-or-shape>|... (type only with DependType, shape wins over rank)
//
// Overridable constant values set on the descriptor are baked into the
// shader, so each one joins the hint as <name>=<value>. The bracketed hint
// is omitted when both are empty. Two descriptors yield the same key exactly
// when they generate the same shader text and uniform layout, provided shape
// strings contain none of ':', '|' and ';'.
func CacheKey(d *Descriptor, is1DDispatch bool) string {
	var b strings.Builder

	b.WriteString(d.name)
	hint := d.cacheHint
	if overrides := d.overrideHint(); overrides != "" {
		if hint != "" {
			hint += "|"
		}
		hint += overrides
	}
	if hint != "" {
		b.WriteByte('[')
		b.WriteString(hint)
		b.WriteByte(']')
	}

	b.WriteByte(':')
	if is1DDispatch {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte(':')

	for i, u := range d.uniforms {
		if i > 0 {
			b.WriteByte('|')
		}
		if u.Len > 0 {
			b.WriteString(strconv.Itoa(u.Len))
		}
	}
	b.WriteByte(':')

	for i, in := range d.inputs {
		if i > 0 {
			b.WriteByte('|')
		}
		if in.Tensor == nil {
			b.WriteByte(';')
			continue
		}
		if in.Dependency.Has(DependType) {
			b.WriteString(in.Tensor.ElementType().String())
		}
		b.WriteByte(';')
		switch {
		case in.Dependency.Has(DependShape):
			b.WriteString(in.Tensor.Shape().String())
		case in.Dependency.Has(DependRank):
			b.WriteString(strconv.Itoa(in.Tensor.Shape().Rank()))
		}
	}

	return b.String()
}

// overrideHint renders the set overridable constant values in declaration
// order. Values without a metadata definition are named by position.
func (d *Descriptor) overrideHint() string {
	var b strings.Builder
	defs := d.metadata.OverridableConstants
	for i, v := range d.overridableConstants {
		if !v.HasValue {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		if i < len(defs) {
			b.WriteString(defs[i].Name)
		} else {
			b.WriteString("override" + strconv.Itoa(i))
		}
		b.WriteByte('=')
		bits := 64
		if v.Type == ConstF32 || v.Type == ConstF16 {
			bits = 32
		}
		b.WriteString(strconv.FormatFloat(v.Value, 'g', -1, bits))
	}
	return b.String()
}
