// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides a forward-mode dual-number scalar carrying a fixed
// number of tangent directions.
//
// Example:
//
//	x := dual.Var[float64, [2]float64](1.5, 0)
//	y := dual.Var[float64, [2]float64](0.5, 1)
//	f := dual.Exp(x.Mul(y))
//	// f.Deriv holds ∂f/∂x and ∂f/∂y
package dual

import (
	"github.com/born-ml/a2d/internal/dual"
	"github.com/born-ml/a2d/internal/tensor"
)

// Tangents is the set of tangent arrays a Scalar may carry.
type Tangents[T tensor.Float] = dual.Tangents[T]

// Scalar is a value with len(D) tangent directions.
type Scalar[T tensor.Float, D Tangents[T]] = dual.Scalar[T, D]

// New creates a Scalar from a value and its tangents.
func New[T tensor.Float, D Tangents[T]](value T, deriv D) Scalar[T, D] {
	return dual.New(value, deriv)
}

// Const creates a Scalar with zero tangents.
func Const[T tensor.Float, D Tangents[T]](value T) Scalar[T, D] {
	return dual.Const[T, D](value)
}

// Var creates a Scalar seeded along direction i.
func Var[T tensor.Float, D Tangents[T]](value T, i int) Scalar[T, D] {
	return dual.Var[T, D](value, i)
}

// ConstSub returns c − s.
func ConstSub[T tensor.Float, D Tangents[T]](c T, s Scalar[T, D]) Scalar[T, D] {
	return dual.ConstSub(c, s)
}

// ConstDiv returns c / s.
func ConstDiv[T tensor.Float, D Tangents[T]](c T, s Scalar[T, D]) Scalar[T, D] {
	return dual.ConstDiv(c, s)
}

// Abs returns |s|.
func Abs[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Abs(s) }

// Sqrt returns √s.
func Sqrt[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Sqrt(s) }

// Pow returns s^e for a constant exponent e.
func Pow[T tensor.Float, D Tangents[T]](s Scalar[T, D], e T) Scalar[T, D] { return dual.Pow(s, e) }

// Exp returns eˢ.
func Exp[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Exp(s) }

// Log returns ln s.
func Log[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Log(s) }

// Sin returns sin s.
func Sin[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Sin(s) }

// Cos returns cos s.
func Cos[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] { return dual.Cos(s) }
