package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/gpuprogram/gpucore"
)

// errEmptySource is returned by NullDevice for a descriptor without source.
var errEmptySource = errors.New("backend: empty shader source")

// NullDevice is a compute device that records pipelines without compiling
// them. It lets program generation and caching run where no shader
// compiler or GPU is wanted, such as unit tests and source dumps.
type NullDevice struct {
	caps gpucore.Capabilities

	mu        sync.Mutex
	nextID    gpucore.ComputePipelineID
	pipelines map[gpucore.ComputePipelineID]gpucore.ComputePipelineDesc
	created   int
}

// init registers the null backend on package import.
func init() {
	Register(BackendNull, func(caps gpucore.Capabilities) (gpucore.ComputeDevice, error) {
		return NewNullDevice(caps), nil
	})
}

// NewNullDevice creates a null device reporting caps.
func NewNullDevice(caps gpucore.Capabilities) *NullDevice {
	return &NullDevice{
		caps:      caps,
		pipelines: make(map[gpucore.ComputePipelineID]gpucore.ComputePipelineDesc),
	}
}

// Capabilities returns the capabilities given at construction.
func (d *NullDevice) Capabilities() gpucore.Capabilities {
	return d.caps
}

// CreateComputePipeline stores a copy of desc under a new ID.
func (d *NullDevice) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	if desc == nil || desc.Source == "" {
		return gpucore.InvalidID, errEmptySource
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.created++
	stored := *desc
	stored.Bindings = append([]gpucore.BindGroupLayoutEntry(nil), desc.Bindings...)
	d.pipelines[d.nextID] = stored
	return d.nextID, nil
}

// DestroyComputePipeline forgets the pipeline. Unknown IDs are ignored.
func (d *NullDevice) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pipelines, id)
}

// Source returns the WGSL a live pipeline was created from.
func (d *NullDevice) Source(id gpucore.ComputePipelineID) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pipelines[id]
	return p.Source, ok
}

// Live returns the number of pipelines not yet destroyed.
func (d *NullDevice) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pipelines)
}

// Created returns the number of pipelines created since construction.
func (d *NullDevice) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}
