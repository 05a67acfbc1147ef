// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"fmt"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/gpucore"
	"github.com/gogpu/gpuprogram/internal/cache"
	"github.com/gogpu/gpuprogram/shader"
)

// Cache stores one Artifact per cache key for a single device.
//
// Thread Safety:
// Cache is safe for concurrent use. A lookup and the build that follows a
// miss form one critical section, so a key is compiled at most once even
// when many goroutines request it together.
type Cache struct {
	device gpucore.ComputeDevice
	caps   gpucore.Capabilities
	opts   options

	artifacts *cache.Store[string, *Artifact]
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the number of compiled programs.
	Len int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that required a build.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when nothing was looked up.
	HitRate float64
}

// NewCache creates an empty cache for dev. The device capabilities are read
// once and treated as fixed for the life of the cache.
func NewCache(dev gpucore.ComputeDevice, opts ...Option) (*Cache, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	c := &Cache{
		device:    dev,
		caps:      dev.Capabilities(),
		artifacts: cache.NewStore[string, *Artifact](),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c, nil
}

// Device returns the device the cache compiles for.
func (c *Cache) Device() gpucore.ComputeDevice { return c.device }

// Get returns the artifact stored under key. It never builds.
func (c *Cache) Get(key string) (*Artifact, bool) {
	return c.artifacts.Get(key)
}

// GetOrBuild returns the artifact for desc, building it with gen on a miss,
// together with the normalized dispatch size for this invocation.
//
// The dispatch is normalized against the device limit before the key is
// derived, since the generated indexing depends on whether the normalized
// dispatch is one-dimensional. A failed build stores nothing; the next
// call with the same key tries again.
func (c *Cache) GetOrBuild(desc *gpuprogram.Descriptor, gen shader.Generator) (*Artifact, [3]uint32, error) {
	if desc == nil {
		return nil, [3]uint32{}, ErrNilDescriptor
	}
	if gen == nil {
		return nil, [3]uint32{}, ErrNilGenerator
	}
	if err := desc.Validate(); err != nil {
		return nil, [3]uint32{}, err
	}

	d := desc.DispatchSize()
	groups, err := gpuprogram.NormalizeDispatch(d[0], d[1], d[2], c.caps.MaxComputeWorkgroupsPerDimension)
	if err != nil {
		return nil, [3]uint32{}, fmt.Errorf("program %s: %w", desc.Name(), err)
	}

	is1D := groups[1] == 1 && groups[2] == 1
	key := gpuprogram.CacheKey(desc, is1D)

	art, hit, err := c.artifacts.GetOrCreate(key, func() (*Artifact, error) {
		return c.build(key, desc, groups, gen)
	})
	if err != nil {
		return nil, [3]uint32{}, err
	}
	if !hit {
		c.opts.log().Debug("pipeline: compiled program", "program", desc.Name(), "key", key,
			"pipeline", art.Pipeline, "uniformBytes", art.Layout.TotalSize)
	}
	return art, groups, nil
}

func (c *Cache) build(key string, desc *gpuprogram.Descriptor, groups [3]uint32, gen shader.Generator) (*Artifact, error) {
	c.opts.log().Debug("pipeline: cache miss", "program", desc.Name(), "key", key)

	res, err := shader.Generate(desc, c.caps, groups, gen)
	if err != nil {
		return nil, err
	}

	label := desc.Name()
	if c.opts.label != "" {
		label = c.opts.label + "/" + label
	}
	id, err := c.device.CreateComputePipeline(&gpucore.ComputePipelineDesc{
		Label:      label,
		Source:     res.Source,
		EntryPoint: shader.EntryPoint,
		Bindings:   res.Bindings,
	})
	if err != nil {
		c.opts.log().Warn("pipeline: compile failed", "program", desc.Name(), "key", key, "error", err)
		return nil, fmt.Errorf("program %s: %w", desc.Name(), err)
	}

	return &Artifact{
		Name:          desc.Name(),
		Key:           key,
		Pipeline:      id,
		Layout:        gpuprogram.PlanUniformLayout(desc.Uniforms()),
		WorkgroupSize: res.WorkgroupSize,
		Bindings:      res.Bindings,
		Source:        res.Source,
	}, nil
}

// Prepare resolves the artifact for desc and packs its uniform values.
func (c *Cache) Prepare(desc *gpuprogram.Descriptor, gen shader.Generator) (*Dispatch, error) {
	art, groups, err := c.GetOrBuild(desc, gen)
	if err != nil {
		return nil, err
	}

	d := &Dispatch{Artifact: art, Groups: groups}
	if len(art.Layout.Uniforms) > 0 {
		d.UniformData, err = art.Layout.Pack(desc.Uniforms())
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", desc.Name(), err)
		}
	}
	return d, nil
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int {
	return c.artifacts.Len()
}

// Stats returns current statistics.
func (c *Cache) Stats() Stats {
	s := c.artifacts.Stats()
	return Stats{Len: s.Len, Hits: s.Hits, Misses: s.Misses, HitRate: s.HitRate}
}

// DestroyAll removes every artifact and destroys its device pipeline.
// Artifacts obtained earlier must not be dispatched afterwards.
func (c *Cache) DestroyAll() {
	arts := c.artifacts.Drain()
	for _, art := range arts {
		c.device.DestroyComputePipeline(art.Pipeline)
	}
	if len(arts) > 0 {
		c.opts.log().Debug("pipeline: destroyed programs", "count", len(arts))
	}
}
