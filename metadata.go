// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Metadata declares which constants, overridable constants and uniform
// variable slots a program kind uses. It is independent of any invocation's
// values and is normally built once per kind.
type Metadata struct {
	Constants            []Constant
	OverridableConstants []OverridableConstantDefinition
	Uniforms             []UniformDefinition
}

// Validate checks that every declared entry has a name and a valid type.
func (m Metadata) Validate() error {
	for _, c := range m.Constants {
		if c.Name == "" || !c.Type.Valid() {
			return fmt.Errorf("%w: constant %q", ErrInvalidVariableType, c.Name)
		}
	}
	for _, c := range m.OverridableConstants {
		if c.Name == "" || !c.Type.Valid() {
			return fmt.Errorf("%w: overridable constant %q", ErrInvalidVariableType, c.Name)
		}
	}
	for _, u := range m.Uniforms {
		if u.Name == "" || !u.Type.Valid() {
			return fmt.Errorf("%w: uniform %q", ErrInvalidVariableType, u.Name)
		}
	}
	return nil
}

// Kind is implemented by every operator kind that produces programs.
// Metadata must return the same value on every call.
type Kind interface {
	Name() string
	Metadata() Metadata
}

var (
	kindsMu sync.RWMutex
	kinds   = make(map[string]Kind)
)

// RegisterKind makes a program kind available through LookupKind.
// Registering a second kind under the same name fails with ErrKindRegistered.
func RegisterKind(k Kind) error {
	if k == nil {
		return errors.New("gpuprogram: kind must not be nil")
	}
	if err := k.Metadata().Validate(); err != nil {
		return fmt.Errorf("kind %s: %w", k.Name(), err)
	}

	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, ok := kinds[k.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrKindRegistered, k.Name())
	}
	kinds[k.Name()] = k
	return nil
}

// LookupKind returns the registered kind with the given name.
func LookupKind(name string) (Kind, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	k, ok := kinds[name]
	return k, ok
}

// KindNames returns the names of all registered kinds, sorted.
func KindNames() []string {
	kindsMu.RLock()
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	kindsMu.RUnlock()
	sort.Strings(names)
	return names
}
