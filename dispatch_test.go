// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeDispatch(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z uint32
		limit   uint32
		want    [3]uint32
	}{
		{"unit", 1, 1, 1, 65535, [3]uint32{1, 1, 1}},
		{"within limit", 65535, 2, 3, 65535, [3]uint32{65535, 2, 3}},
		{"square rebalance", 100000, 1, 1, 65535, [3]uint32{317, 317, 1}},
		{"order independent", 1, 1, 100000, 65535, [3]uint32{317, 317, 1}},
		{"cubic rebalance", 1 << 31, 1, 1, 2000, [3]uint32{1291, 1291, 1291}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDispatch(tt.x, tt.y, tt.z, tt.limit)
			if err != nil {
				t.Fatalf("NormalizeDispatch() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDispatch(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestNormalizeDispatchRoundsUp(t *testing.T) {
	if 317*317 < 100000 || 316*316 >= 100000 {
		t.Fatal("317 must be the smallest square root covering 100000")
	}

	got, err := NormalizeDispatch(100000, 1, 1, 65535)
	if err != nil {
		t.Fatal(err)
	}
	if total := uint64(got[0]) * uint64(got[1]) * uint64(got[2]); total < 100000 {
		t.Errorf("normalized dispatch %v covers %d groups, want >= 100000", got, total)
	}

	c := uint64(math.Ceil(math.Cbrt(float64(1 << 31))))
	if c*c*c < 1<<31 {
		t.Errorf("cube root %d does not cover 2^31", c)
	}
}

func TestNormalizeDispatchTooLarge(t *testing.T) {
	_, err := NormalizeDispatch(math.MaxUint32, math.MaxUint32, math.MaxUint32, 1024)
	if !errors.Is(err, ErrDispatchTooLarge) {
		t.Errorf("NormalizeDispatch() error = %v, want ErrDispatchTooLarge", err)
	}
}

func TestNormalizeDispatchNeverExceedsLimit(t *testing.T) {
	const limit = 256
	for _, x := range []uint32{257, 1000, 65536, 1 << 20, 1 << 24} {
		got, err := NormalizeDispatch(x, 1, 1, limit)
		if err != nil {
			t.Fatalf("NormalizeDispatch(%d) error = %v", x, err)
		}
		for i, d := range got {
			if d > limit {
				t.Errorf("NormalizeDispatch(%d)[%d] = %d exceeds limit %d", x, i, d, limit)
			}
		}
		if total := uint64(got[0]) * uint64(got[1]) * uint64(got[2]); total < uint64(x) {
			t.Errorf("NormalizeDispatch(%d) = %v covers only %d groups", x, got, total)
		}
	}
}
