// Package elementwise provides unary elementwise operators as compute
// programs.
//
// Every operator is one row of a table: a WGSL expression over the vector
// a, optional helper code, the element types it accepts and the scalar
// attributes it reads. A single generator turns any row into a program that
// processes four elements per invocation:
//
//	d, err := elementwise.Run(cache, "Sigmoid", x, y, nil)
//
// Attributes such as the LeakyRelu slope are baked into the shader as
// overridable constants, and their values become part of the cache key.
package elementwise
