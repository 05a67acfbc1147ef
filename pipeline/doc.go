// Package pipeline caches compiled compute programs per device.
//
// A Cache maps the cache key of a gpuprogram.Descriptor to an Artifact: the
// device pipeline built from the generated WGSL together with the uniform
// buffer layout that pipeline expects. The first GetOrBuild for a key runs
// the shader generator and compiles; every later call with an equivalent
// descriptor returns the same Artifact.
//
//	c, err := pipeline.NewCache(dev)
//	d, err := c.Prepare(desc, gen)
//	// bind d.UniformData at the uniform binding and dispatch d.Groups
//
// Entries are never evicted. DestroyAll releases every pipeline when the
// device context is torn down.
package pipeline
