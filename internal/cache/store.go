// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"sync"
	"sync/atomic"
)

// Store is a thread-safe keyed store without eviction.
//
// Store must not be copied after creation (has mutex).
type Store[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewStore creates an empty store.
func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{entries: make(map[K]V)}
}

// Get retrieves a value. It never creates one.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	v, ok := s.entries[key]
	s.mu.Unlock()

	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

// GetOrCreate returns the stored value for key, or calls create and stores
// its result. hit reports whether the value was already present.
//
// create runs with the store locked, so concurrent callers with the same key
// wait for the first one and then share its value. When create fails nothing
// is stored and the error is returned.
func (s *Store[K, V]) GetOrCreate(key K, create func() (V, error)) (value V, hit bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		s.hits.Add(1)
		return v, true, nil
	}

	s.misses.Add(1)
	v, err := create()
	if err != nil {
		var zero V
		return zero, false, err
	}
	s.entries[key] = v
	return v, false, nil
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Drain removes every entry and returns the removed values.
func (s *Store[K, V]) Drain() []V {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([]V, 0, len(s.entries))
	for _, v := range s.entries {
		values = append(values, v)
	}
	s.entries = make(map[K]V)
	return values
}

// Stats returns current statistics.
func (s *Store[K, V]) Stats() Stats {
	return newStats(s.Len(), 0, s.hits.Load(), s.misses.Load(), 0)
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the total capacity, 0 for an unbounded Store.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is the cache hit rate 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of evicted entries (ShardedCache only).
	Evictions uint64
}

func newStats(n, capacity int, hits, misses, evictions uint64) Stats {
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       n,
		Capacity:  capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: evictions,
	}
}
