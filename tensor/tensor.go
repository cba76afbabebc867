// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/a2d/internal/tensor"
)

// Number is the element type constraint of operands.
type Number = tensor.Number

// Float is the real subset of Number.
type Float = tensor.Float

// Kind is the rank of a shape.
type Kind = tensor.Kind

// Shape kinds.
const (
	KindScalar Kind = tensor.KindScalar
	KindVec    Kind = tensor.KindVec
	KindMat    Kind = tensor.KindMat
)

// Shape is a static operand shape.
type Shape = tensor.Shape

// ScalarShape returns the shape of a scalar.
func ScalarShape() Shape { return tensor.ScalarShape() }

// VecShape returns the shape of a vector of length n.
func VecShape(n int) Shape { return tensor.VecShape(n) }

// MatShape returns the shape of an n×m row-major matrix.
func MatShape(n, m int) Shape { return tensor.MatShape(n, m) }

// Order is the highest derivative order an operand or node supports.
type Order = tensor.Order

// Derivative orders.
const (
	OrderNone   Order = tensor.OrderNone
	OrderFirst  Order = tensor.OrderFirst
	OrderSecond Order = tensor.OrderSecond
)

// Seed selects a derivative slot.
type Seed = tensor.Seed

// Derivative slots.
const (
	SeedB Seed = tensor.SeedB
	SeedP Seed = tensor.SeedP
	SeedH Seed = tensor.SeedH
)

// Obj is the common view of all operand tiers.
type Obj[T Number] = tensor.Obj[T]

// Value is a passive operand.
type Value[T Number] = tensor.Value[T]

// ADObj is a first-order operand.
type ADObj[T Number] = tensor.ADObj[T]

// A2DObj is a second-order operand.
type A2DObj[T Number] = tensor.A2DObj[T]

// NewValue creates a zeroed passive operand. It panics if shape is invalid.
func NewValue[T Number](shape Shape) *Value[T] {
	return tensor.NewValue[T](shape)
}

// NewADObj creates a zeroed first-order operand. It panics if shape is invalid.
func NewADObj[T Number](shape Shape) *ADObj[T] {
	return tensor.NewADObj[T](shape)
}

// NewA2DObj creates a zeroed second-order operand. It panics if shape is invalid.
func NewA2DObj[T Number](shape Shape) *A2DObj[T] {
	return tensor.NewA2DObj[T](shape)
}

// Passive returns a view of o that exposes only its value.
func Passive[T Number](o Obj[T]) Obj[T] {
	return tensor.Passive(o)
}

// Get returns the slot of o selected by seed, or nil if o lacks the slot.
// It panics on an unknown seed.
func Get[T Number](o Obj[T], seed Seed) []T {
	return tensor.Get(o, seed)
}
