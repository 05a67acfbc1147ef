// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func TestShardedGetOrCreate(t *testing.T) {
	c := NewSharded[string, int](4, StringHasher)

	v, err := c.GetOrCreate("a", func() (int, error) { return 1, nil })
	if err != nil || v != 1 {
		t.Fatalf("GetOrCreate = %d, %v", v, err)
	}
	v, err = c.GetOrCreate("a", func() (int, error) { return 2, nil })
	if err != nil || v != 1 {
		t.Errorf("cached GetOrCreate = %d, %v; want 1", v, err)
	}
	if got, ok := c.Get("a"); !ok || got != 1 {
		t.Errorf("Get(a) = %d, %v", got, ok)
	}

	st := c.Stats()
	if st.Hits != 2 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits and 1 miss", st)
	}
	if st.Capacity != 4*DefaultShardCount {
		t.Errorf("Capacity = %d, want %d", st.Capacity, 4*DefaultShardCount)
	}
}

func TestShardedFailedCreate(t *testing.T) {
	c := NewSharded[string, int](4, StringHasher)
	errBad := errors.New("bad")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, errBad }); !errors.Is(err, errBad) {
		t.Fatalf("GetOrCreate error = %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("failed create was cached")
	}
}

func TestShardedEviction(t *testing.T) {
	// Constant hasher puts every key in shard 0.
	c := NewSharded[string, int](2, func(string) uint64 { return 0 })

	for _, k := range []string{"a", "b"} {
		_, _ = c.GetOrCreate(k, func() (int, error) { return 0, nil })
	}
	c.Get("a") // b is now least recently used
	_, _ = c.GetOrCreate("c", func() (int, error) { return 0, nil })

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to remain", k)
		}
	}
	if c.Len() != 2 || c.Stats().Evictions != 1 {
		t.Errorf("Len() = %d, Evictions = %d; want 2 and 1", c.Len(), c.Stats().Evictions)
	}
}

func TestShardedClear(t *testing.T) {
	c := NewSharded[string, int](0, StringHasher)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}
	for i := 0; i < 100; i++ {
		_, _ = c.GetOrCreate(strconv.Itoa(i), func() (int, error) { return i, nil })
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestShardedConcurrent(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g * i) % 50)
				v, err := c.GetOrCreate(key, func() (int, error) { return len(key), nil })
				if err != nil || v != len(key) {
					t.Errorf("GetOrCreate(%s) = %d, %v", key, v, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkShardedGetHit(b *testing.B) {
	c := NewSharded[string, int](256, StringHasher)
	_, _ = c.GetOrCreate("hot", func() (int, error) { return 1, nil })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("hot")
	}
}

func BenchmarkStoreGetOrCreateParallel(b *testing.B) {
	s := NewStore[string, int]()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _, _ = s.GetOrCreate("key", func() (int, error) { return 1, nil })
		}
	})
}
