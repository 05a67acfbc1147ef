// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilProvider is returned when a nil device provider is passed.
	ErrNilProvider = errors.New("native: nil device provider")

	// ErrNoHALDevice is returned when a provider does not expose a hal.Device.
	ErrNoHALDevice = errors.New("native: provider does not expose a HAL device")

	// ErrDestroyed is returned when a destroyed device is used.
	ErrDestroyed = errors.New("native: device destroyed")

	// ErrNilDescriptor is returned when creating a pipeline with a nil descriptor.
	ErrNilDescriptor = errors.New("native: pipeline descriptor is nil")
)
