// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package elementwise

import (
	"sort"
	"strings"

	"github.com/gogpu/gpuprogram"
)

// Op describes one unary elementwise operator.
//
// Expression and Impl are WGSL templates: {T} expands to the vec4 value
// type and {E} to its scalar element type. The input vector is named a and
// attributes are visible under their own names.
type Op struct {
	OpType     string
	Expression string
	Impl       string
	Types      []gpuprogram.ElementType
	Attributes []Attribute
}

// Attribute is a scalar operator parameter with its default value.
type Attribute struct {
	Name    string
	Default float64
}

var (
	floatTypes  = []gpuprogram.ElementType{gpuprogram.ElementFloat32, gpuprogram.ElementFloat16}
	signedTypes = []gpuprogram.ElementType{gpuprogram.ElementFloat32, gpuprogram.ElementFloat16, gpuprogram.ElementInt32}
	boolTypes   = []gpuprogram.ElementType{gpuprogram.ElementBool}
)

const erfImpl = `const erf_r0 = 0.3275911;
const erf_r1 = 0.254829592;
const erf_r2 = -0.284496736;
const erf_r3 = 1.421413741;
const erf_r4 = -1.453152027;
const erf_r5 = 1.061405429;

fn erf_v(v: {T}) -> {T} {
  let absv = abs(v);
  let x = 1.0 / (1.0 + erf_r0 * absv);
  return sign(v) * (1.0 - ((((erf_r5 * x + erf_r4) * x + erf_r3) * x + erf_r2) * x + erf_r1) * x * exp(-absv * absv));
}
`

var ops = map[string]*Op{}

func init() {
	for _, op := range []*Op{
		{OpType: "Abs", Expression: "abs(a)", Types: signedTypes},
		{OpType: "Neg", Expression: "-a", Types: signedTypes},
		{OpType: "Sign", Expression: "sign(a)", Types: signedTypes},
		{OpType: "Floor", Expression: "floor(a)", Types: floatTypes},
		{OpType: "Ceil", Expression: "ceil(a)", Types: floatTypes},
		{OpType: "Round", Expression: "round(a)", Types: floatTypes},
		{OpType: "Reciprocal", Expression: "1.0 / a", Types: floatTypes},
		{OpType: "Sqrt", Expression: "sqrt(a)", Types: floatTypes},
		{OpType: "Exp", Expression: "exp(a)", Types: floatTypes},
		{OpType: "Log", Expression: "log(a)", Types: floatTypes},
		{OpType: "Erf", Expression: "erf_v(a)", Impl: erfImpl, Types: floatTypes},
		{OpType: "Gelu", Expression: "0.5 * a * (1.0 + erf_v(a * 0.7071067811865475))", Impl: erfImpl, Types: floatTypes},
		{OpType: "Sin", Expression: "sin(a)", Types: floatTypes},
		{OpType: "Cos", Expression: "cos(a)", Types: floatTypes},
		{OpType: "Tan", Expression: "tan(a)", Types: floatTypes},
		{OpType: "Asin", Expression: "asin(a)", Types: floatTypes},
		{OpType: "Acos", Expression: "acos(a)", Types: floatTypes},
		{OpType: "Atan", Expression: "atan(a)", Types: floatTypes},
		{OpType: "Sinh", Expression: "sinh(a)", Types: floatTypes},
		{OpType: "Cosh", Expression: "cosh(a)", Types: floatTypes},
		{OpType: "Tanh", Expression: "tanh(a)", Types: floatTypes},
		{OpType: "Asinh", Expression: "asinh(a)", Types: floatTypes},
		{OpType: "Acosh", Expression: "acosh(a)", Types: floatTypes},
		{OpType: "Atanh", Expression: "atanh(a)", Types: floatTypes},
		{OpType: "Sigmoid", Expression: "1.0 / (1.0 + exp(-a))", Types: floatTypes},
		{OpType: "Softsign", Expression: "a / (1.0 + abs(a))", Types: floatTypes},
		{OpType: "Softplus", Expression: "log(1.0 + exp(a))", Types: floatTypes},
		{OpType: "Relu", Expression: "max(a, {T}(0.0))", Types: floatTypes},
		{
			OpType:     "LeakyRelu",
			Expression: "select({E}(alpha) * a, a, a >= {T}(0.0))",
			Types:      floatTypes,
			Attributes: []Attribute{{Name: "alpha", Default: 0.01}},
		},
		{
			OpType:     "Elu",
			Expression: "select({E}(alpha) * (exp(a) - {T}(1.0)), a, a >= {T}(0.0))",
			Types:      floatTypes,
			Attributes: []Attribute{{Name: "alpha", Default: 1.0}},
		},
		{
			OpType:     "HardSigmoid",
			Expression: "clamp({E}(alpha) * a + {E}(beta), {T}(0.0), {T}(1.0))",
			Types:      floatTypes,
			Attributes: []Attribute{{Name: "alpha", Default: 0.2}, {Name: "beta", Default: 0.5}},
		},
		{
			OpType:     "ThresholdedRelu",
			Expression: "select({T}(0.0), a, a > {T}({E}(alpha)))",
			Types:      floatTypes,
			Attributes: []Attribute{{Name: "alpha", Default: 1.0}},
		},
		{OpType: "Not", Expression: "!a", Types: boolTypes},
	} {
		ops[op.OpType] = op
		if err := gpuprogram.RegisterKind(op); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the operator registered under name.
func Lookup(name string) (*Op, bool) {
	op, ok := ops[name]
	return op, ok
}

// Names returns the sorted operator names.
func Names() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Supports reports whether op accepts tensors of element type t.
func (op *Op) Supports(t gpuprogram.ElementType) bool {
	for _, s := range op.Types {
		if s == t {
			return true
		}
	}
	return false
}

// expand fills the {T} and {E} placeholders for element type t.
func expand(tmpl string, valueType, elemType string) string {
	if tmpl == "" {
		return ""
	}
	return strings.NewReplacer("{T}", valueType, "{E}", elemType).Replace(tmpl)
}
