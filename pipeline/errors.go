// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import "errors"

// Pipeline cache errors.
var (
	// ErrNilDevice is returned when creating a cache without a device.
	ErrNilDevice = errors.New("pipeline: device is nil")

	// ErrNilDescriptor is returned when building from a nil descriptor.
	ErrNilDescriptor = errors.New("pipeline: program descriptor is nil")

	// ErrNilGenerator is returned when building without a shader generator.
	ErrNilGenerator = errors.New("pipeline: shader generator is nil")
)
