// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"strconv"
	"strings"
)

// Shape is a tensor shape.
type Shape []int64

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// Size returns the number of elements. A rank-0 shape holds one element.
func (s Shape) Size() int64 {
	n := int64(1)
	for _, d := range s {
		n *= d
	}
	return n
}

// String renders the shape as "{d0,d1,...}". The output never contains the
// cache-key separators ':', '|' or ';'.
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(d, 10))
	}
	b.WriteByte('}')
	return b.String()
}

// Tensor is the view of a host tensor that program generation needs.
// Tensors are borrowed for the duration of one dispatch and never retained
// by a cached artifact.
type Tensor interface {
	ElementType() ElementType
	Shape() Shape
}

// TensorInfo is a plain Tensor implementation carrying only type and shape.
type TensorInfo struct {
	Type ElementType
	Dims Shape
}

// ElementType implements Tensor.
func (t TensorInfo) ElementType() ElementType { return t.Type }

// Shape implements Tensor.
func (t TensorInfo) Shape() Shape { return t.Dims }

// TensorDependency selects the tensor properties that generated code, and so
// the cache key, vary on.
type TensorDependency uint8

// Tensor dependency flags.
const (
	DependNone  TensorDependency = 0
	DependType  TensorDependency = 1 << 0
	DependRank  TensorDependency = 1 << 1
	DependShape TensorDependency = 1 << 2

	DependTypeAndRank  = DependType | DependRank
	DependTypeAndShape = DependType | DependShape
)

// Has reports whether all flags in f are set.
func (d TensorDependency) Has(f TensorDependency) bool {
	return d&f == f
}

// Input is a program input tensor with its dependency flags.
type Input struct {
	Tensor     Tensor
	Dependency TensorDependency
}
