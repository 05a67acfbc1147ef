// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import "errors"

// Program generation errors.
//
// Every error returned by gpuprogram and its sub-packages wraps one of these
// sentinels, so callers can branch with errors.Is (for example to fall back
// to a CPU execution path on ErrUnsupportedFeature).
var (
	// ErrInvalidVariableType is returned when a uniform, constant, or shader
	// variable has no valid underlying data type.
	ErrInvalidVariableType = errors.New("gpuprogram: invalid variable type")

	// ErrUnsupportedFeature is returned when generated code needs a device
	// feature (16-bit floats) the device does not expose.
	ErrUnsupportedFeature = errors.New("gpuprogram: unsupported device feature")

	// ErrWorkgroupSizeInvalid is returned for a zero workgroup dimension, a
	// dimension above the device per-axis limit, or too many invocations.
	ErrWorkgroupSizeInvalid = errors.New("gpuprogram: invalid workgroup size")

	// ErrDispatchTooLarge is returned when a dispatch cannot be expressed
	// within the device per-dimension limit even after cubic rebalancing.
	ErrDispatchTooLarge = errors.New("gpuprogram: dispatch group size exceeds device limit")

	// ErrInvalidDispatchSize is returned when a dispatch dimension is zero.
	ErrInvalidDispatchSize = errors.New("gpuprogram: invalid dispatch group size")

	// ErrEmptyUniformValue is returned for a uniform value with zero elements.
	ErrEmptyUniformValue = errors.New("gpuprogram: empty uniform value")

	// ErrUniformMismatch is returned when uniform values do not line up with
	// the uniform definitions of the program metadata.
	ErrUniformMismatch = errors.New("gpuprogram: uniform values do not match definitions")

	// ErrCompilationFailure is returned when the shader compiler rejects
	// generated source.
	ErrCompilationFailure = errors.New("gpuprogram: shader compilation failed")

	// ErrKindRegistered is returned when a program kind name is registered twice.
	ErrKindRegistered = errors.New("gpuprogram: program kind already registered")
)
