// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "github.com/gogpu/gputypes"

// Option configures a Device.
type Option func(*options)

type options struct {
	limits        gputypes.Limits
	shaderF16     bool
	spirvCapacity int
}

func defaultOptions() options {
	return options{limits: gputypes.DefaultLimits()}
}

// WithLimits sets the device limits reported through Capabilities.
// Pass the limits the HAL device was opened with.
func WithLimits(limits gputypes.Limits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

// WithShaderF16 reports whether the device was opened with the shader-f16
// feature.
func WithShaderF16(enabled bool) Option {
	return func(o *options) {
		o.shaderF16 = enabled
	}
}

// WithSPIRVCacheCapacity sets the per-shard capacity of the compiled SPIR-V
// memo. Zero or a negative value selects the default.
func WithSPIRVCacheCapacity(n int) Option {
	return func(o *options) {
		o.spirvCapacity = n
	}
}
