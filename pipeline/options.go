// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"log/slog"

	"github.com/gogpu/gpuprogram"
)

// Option configures a Cache.
type Option func(*options)

type options struct {
	logger *slog.Logger
	label  string
}

// WithLogger routes cache diagnostics to l instead of gpuprogram.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLabel sets a prefix for the labels of pipelines the cache creates.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return gpuprogram.Logger()
}
