package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuprogram"
	"github.com/gogpu/gpuprogram/backend"
	nativebackend "github.com/gogpu/gpuprogram/backend/native"
	"github.com/gogpu/gpuprogram/gpucore"
	"github.com/gogpu/gpuprogram/internal/config"
	"github.com/gogpu/gpuprogram/kernels/elementwise"
)

// programFlags selects one operator invocation.
type programFlags struct {
	elemType string
	shape    string
	attrs    map[string]string
}

func (f *programFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.elemType, "type", "f32", "element type of input and output (f32, f16, i32, bool, ...)")
	cmd.Flags().StringVar(&f.shape, "shape", "1024", "comma-separated tensor shape")
	cmd.Flags().StringToStringVar(&f.attrs, "attr", nil, "operator attribute as name=value (repeatable)")
}

// descriptor builds the program descriptor of op for the flag values.
func (f *programFlags) descriptor(opType string) (*elementwise.Op, *gpuprogram.Descriptor, error) {
	op, ok := elementwise.Lookup(opType)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q (see wgslgen ops)", elementwise.ErrUnknownOp, opType)
	}

	elem, ok := gpuprogram.ParseElementType(f.elemType)
	if !ok {
		return nil, nil, fmt.Errorf("unknown element type %q", f.elemType)
	}
	shape, err := parseShape(f.shape)
	if err != nil {
		return nil, nil, err
	}
	if shape.Size() == 0 {
		return nil, nil, fmt.Errorf("shape %s has no elements", shape)
	}

	attrs := make(map[string]float64, len(f.attrs))
	for name, s := range f.attrs {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		attrs[name] = v
	}

	t := gpuprogram.TensorInfo{Type: elem, Dims: shape}
	d, err := op.Descriptor(t, t, attrs)
	if err != nil {
		return nil, nil, err
	}
	return op, d, nil
}

func parseShape(s string) (gpuprogram.Shape, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return gpuprogram.Shape{}, nil
	}
	parts := strings.Split(s, ",")
	shape := make(gpuprogram.Shape, len(parts))
	for i, p := range parts {
		d, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid shape %q: dimension %q", s, p)
		}
		shape[i] = d
	}
	return shape, nil
}

// openDevice creates the compute device selected by cfg and returns it with
// the backend name.
func openDevice(cfg *config.Config) (gpucore.ComputeDevice, string, error) {
	caps := cfg.Capabilities()
	switch cfg.Backend {
	case config.BackendAuto:
		return backend.Default(caps)
	case backend.BackendNative:
		dev := nativebackend.NewOffline(
			nativebackend.WithLimits(nativebackend.LimitsFromCapabilities(caps)),
			nativebackend.WithShaderF16(caps.ShaderF16),
			nativebackend.WithSPIRVCacheCapacity(cfg.Cache.SPIRVCapacity),
		)
		return dev, backend.BackendNative, nil
	default:
		dev, err := backend.Get(cfg.Backend, caps)
		return dev, cfg.Backend, err
	}
}
