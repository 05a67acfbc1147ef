// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"fmt"
	"math"
)

// NormalizeDispatch fits a dispatch of (x, y, z) workgroups into a device
// whose per-dimension limit is limit.
//
// A dispatch already within the limit is returned unchanged. Otherwise only
// the total group count matters: it is rebalanced to (s, s, 1) with
// s = ceil(sqrt(total)), or to (c, c, c) with c = ceil(cbrt(total)) when s is
// still too large. The result may run more groups than requested, so the
// shader must guard its global index against the real element count.
func NormalizeDispatch(x, y, z, limit uint32) ([3]uint32, error) {
	if x <= limit && y <= limit && z <= limit {
		return [3]uint32{x, y, z}, nil
	}

	total := float64(x) * float64(y) * float64(z)

	s := math.Ceil(math.Sqrt(total))
	if s <= float64(limit) {
		return [3]uint32{uint32(s), uint32(s), 1}, nil
	}

	c := math.Ceil(math.Cbrt(total))
	if c > float64(limit) {
		return [3]uint32{}, fmt.Errorf("%w: (%d, %d, %d) with limit %d", ErrDispatchTooLarge, x, y, z, limit)
	}
	return [3]uint32{uint32(c), uint32(c), uint32(c)}, nil
}
