// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
)

// Generator writes the operator-specific part of a program: it declares
// variables, appends helper code and sets the main function body.
type Generator func(h *Helper) error

// Result is the generated shader of one program.
type Result struct {
	Source        string
	Bindings      []gpucore.BindGroupLayoutEntry
	WorkgroupSize [3]uint32
}

// Generate runs gen against a fresh Helper and assembles the module.
func Generate(desc *gpuprogram.Descriptor, caps gpucore.Capabilities, dispatch [3]uint32, gen Generator) (*Result, error) {
	if gen == nil {
		return nil, errors.New("shader: generator must not be nil")
	}
	h, err := NewHelper(desc, caps, dispatch)
	if err != nil {
		return nil, err
	}
	if err := gen(h); err != nil {
		return nil, fmt.Errorf("shader: generate %s: %w", desc.Name(), err)
	}
	src, err := h.Source()
	if err != nil {
		return nil, err
	}

	gpuprogram.Logger().Debug("shader: generated", "program", desc.Name(), "source", src)
	return &Result{
		Source:        src,
		Bindings:      h.BindGroupLayout(),
		WorkgroupSize: h.WorkgroupSize(),
	}, nil
}
