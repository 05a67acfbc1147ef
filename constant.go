// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuprogram

// Constant is a module-scope constant baked into generated shader code.
// Value holds the number for numeric types; for ConstBool any non-zero value
// is true.
type Constant struct {
	Name  string
	Type  ConstantType
	Value float64
}

// BoolConstant returns a bool-typed Constant.
func BoolConstant(name string, v bool) Constant {
	return Constant{Name: name, Type: ConstBool, Value: boolValue(v)}
}

// OverridableConstantDefinition declares a pipeline-overridable constant.
// When HasDefault is false the generated declaration has no initializer.
type OverridableConstantDefinition struct {
	Name       string
	Type       ConstantType
	Default    float64
	HasDefault bool
}

// OverridableConstantValue is the runtime value of an overridable constant.
// A value with HasValue false leaves the declared default in place.
type OverridableConstantValue struct {
	Type     ConstantType
	Value    float64
	HasValue bool
}

// Override returns an OverridableConstantValue that sets a constant of type t.
func Override(t ConstantType, v float64) OverridableConstantValue {
	return OverridableConstantValue{Type: t, Value: v, HasValue: true}
}

// OverrideBool returns an OverridableConstantValue for a bool constant.
func OverrideBool(v bool) OverridableConstantValue {
	return OverridableConstantValue{Type: ConstBool, Value: boolValue(v), HasValue: true}
}

func boolValue(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
