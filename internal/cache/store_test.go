// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestStoreGetOrCreate(t *testing.T) {
	s := NewStore[string, int]()
	createCalled := 0

	// First call should create
	val, hit, err := s.GetOrCreate("key1", func() (int, error) {
		createCalled++
		return 100, nil
	})
	if err != nil || hit || val != 100 {
		t.Errorf("first GetOrCreate = %d, %v, %v; want 100, false, nil", val, hit, err)
	}

	// Second call should return cached
	val, hit, err = s.GetOrCreate("key1", func() (int, error) {
		createCalled++
		return 200, nil
	})
	if err != nil || !hit || val != 100 {
		t.Errorf("second GetOrCreate = %d, %v, %v; want 100, true, nil", val, hit, err)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}

	if v, ok := s.Get("key1"); !ok || v != 100 {
		t.Errorf("Get(key1) = %d, %v", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("expected missing key to not exist")
	}
}

func TestStoreFailedCreateStoresNothing(t *testing.T) {
	s := NewStore[string, int]()
	errBoom := errors.New("boom")

	_, _, err := s.GetOrCreate("k", func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("GetOrCreate error = %v, want %v", err, errBoom)
	}
	if s.Len() != 0 {
		t.Errorf("failed create left %d entries", s.Len())
	}

	// A later successful create is not shadowed by the failure.
	val, hit, err := s.GetOrCreate("k", func() (int, error) { return 7, nil })
	if err != nil || hit || val != 7 {
		t.Errorf("GetOrCreate after failure = %d, %v, %v", val, hit, err)
	}
}

func TestStoreConcurrentCreateOnce(t *testing.T) {
	s := NewStore[string, int]()
	var created atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := s.GetOrCreate("shared", func() (int, error) {
				created.Add(1)
				return 42, nil
			})
			if err != nil || v != 42 {
				t.Errorf("GetOrCreate = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	if n := created.Load(); n != 1 {
		t.Errorf("create called %d times, want 1", n)
	}
}

func TestStoreDrainAndStats(t *testing.T) {
	s := NewStore[int, string]()
	for i := 0; i < 3; i++ {
		_, _, _ = s.GetOrCreate(i, func() (string, error) { return "v", nil })
	}
	_, _, _ = s.GetOrCreate(0, func() (string, error) { return "x", nil })

	st := s.Stats()
	if st.Len != 3 || st.Hits != 1 || st.Misses != 3 {
		t.Errorf("Stats() = %+v, want Len 3, Hits 1, Misses 3", st)
	}
	if st.HitRate != 0.25 {
		t.Errorf("HitRate = %v, want 0.25", st.HitRate)
	}

	if got := len(s.Drain()); got != 3 {
		t.Errorf("Drain() returned %d values, want 3", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Drain = %d", s.Len())
	}
}
