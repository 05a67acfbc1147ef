// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gpuprogram"
)

// literal renders v as a WGSL literal of type t: 1.5f, 1.5h, -3i, 3u, true.
func literal(t gpuprogram.ConstantType, v float64) (string, error) {
	switch t {
	case gpuprogram.ConstF32, gpuprogram.ConstF16:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: %v is not representable as a %s literal", gpuprogram.ErrInvalidVariableType, v, t)
		}
		bits := 32
		suffix := "f"
		if t == gpuprogram.ConstF16 {
			suffix = "h"
		}
		s := strconv.FormatFloat(v, 'g', -1, bits)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s + suffix, nil
	case gpuprogram.ConstI32:
		return strconv.FormatInt(int64(int32(v)), 10) + "i", nil
	case gpuprogram.ConstU32:
		return strconv.FormatUint(uint64(uint32(v)), 10) + "u", nil
	case gpuprogram.ConstBool:
		if v != 0 {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("%w: constant type %d", gpuprogram.ErrInvalidVariableType, t)
	}
}
