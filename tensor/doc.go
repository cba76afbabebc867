// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the fixed-shape operands used by the a2d
// differentiation stack.
//
// # Overview
//
// Every operand has a static shape (scalar, vector or matrix) chosen at
// creation and one of three tiers:
//   - Value: value only, never differentiated
//   - ADObj: value plus a first-order derivative slot (b)
//   - A2DObj: value plus b, a direction slot (p) and a second-order slot (h)
//
// All slots of an operand live in one allocation made by its constructor.
// Nothing in the package allocates afterwards.
//
// # Basic Usage
//
//	x := tensor.NewA2DObj[float64](tensor.VecShape(3))
//	copy(x.Value(), []float64{1, 2, 3})
//	copy(x.PValue(), []float64{0, 0, 1})
//
// Passive wraps any operand so that an expression node treats it as a
// constant:
//
//	c := tensor.Passive[float64](x)
//
// Number covers float32, float64, complex64 and complex128. Complex operands
// are used for complex-step derivative checks.
package tensor
