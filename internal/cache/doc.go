// Package cache provides the generic caches behind the pipeline cache and
// the compiled shader memo.
//
// # Store[K, V]
//
// A thread-safe map that never evicts. GetOrCreate runs lookup and creation
// as one critical section, so a key is built at most once no matter how many
// goroutines ask for it, and a failed creation stores nothing.
//
//	s := cache.NewStore[string, *Artifact]()
//	a, hit, err := s.GetOrCreate(key, build)
//
// # ShardedCache[K, V]
//
// A bounded LRU cache split into 16 shards to reduce lock contention. Used
// where entries are cheap to recompute, such as SPIR-V compiled from WGSL.
//
//	c := cache.NewSharded[string, []uint32](64, cache.StringHasher)
//	words, err := c.GetOrCreate(src, compile)
//
// # Thread Safety
//
// Both Store and ShardedCache are safe for concurrent use.
// Neither should be copied after creation (they contain mutexes).
package cache
