// Package dual implements a forward-mode dual number with several tangent
// directions carried side by side.
//
// A Scalar holds a value and a fixed-length array of tangents. Every
// operation applies the single-variable derivative rule to each tangent
// component. Comparisons look at the value only.
//
// Example:
//
//	x := dual.New(2.0, [1]float64{1})
//	f := dual.Sqrt(x.Mul(x).AddConst(1))
//	// f.Value ≈ 2.2360679, f.Deriv[0] ≈ 0.8944272
package dual

import (
	"math"

	"github.com/born-ml/a2d/internal/tensor"
)

// Tangents is the set of tangent arrays a Scalar may carry.
type Tangents[T tensor.Float] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[6]T | ~[8]T | ~[9]T | ~[12]T | ~[16]T | ~[24]T
}

// Scalar is a value with len(D) tangent directions.
type Scalar[T tensor.Float, D Tangents[T]] struct {
	Value T
	Deriv D
}

// New creates a Scalar from a value and its tangents.
func New[T tensor.Float, D Tangents[T]](value T, deriv D) Scalar[T, D] {
	return Scalar[T, D]{Value: value, Deriv: deriv}
}

// Const creates a Scalar with zero tangents.
func Const[T tensor.Float, D Tangents[T]](value T) Scalar[T, D] {
	return Scalar[T, D]{Value: value}
}

// Var creates a Scalar seeded along direction i.
func Var[T tensor.Float, D Tangents[T]](value T, i int) Scalar[T, D] {
	s := Scalar[T, D]{Value: value}
	s.Deriv[i] = 1
	return s
}

// chain returns f with tangents d·r.Deriv.
func chain[T tensor.Float, D Tangents[T]](f, d T, r Scalar[T, D]) Scalar[T, D] {
	out := Scalar[T, D]{Value: f}
	for i := 0; i < len(r.Deriv); i++ {
		out.Deriv[i] = d * r.Deriv[i]
	}
	return out
}

// Add returns s + r.
func (s Scalar[T, D]) Add(r Scalar[T, D]) Scalar[T, D] {
	out := Scalar[T, D]{Value: s.Value + r.Value}
	for i := 0; i < len(s.Deriv); i++ {
		out.Deriv[i] = s.Deriv[i] + r.Deriv[i]
	}
	return out
}

// Sub returns s − r.
func (s Scalar[T, D]) Sub(r Scalar[T, D]) Scalar[T, D] {
	out := Scalar[T, D]{Value: s.Value - r.Value}
	for i := 0; i < len(s.Deriv); i++ {
		out.Deriv[i] = s.Deriv[i] - r.Deriv[i]
	}
	return out
}

// Mul returns s·r.
func (s Scalar[T, D]) Mul(r Scalar[T, D]) Scalar[T, D] {
	out := Scalar[T, D]{Value: s.Value * r.Value}
	for i := 0; i < len(s.Deriv); i++ {
		out.Deriv[i] = r.Value*s.Deriv[i] + s.Value*r.Deriv[i]
	}
	return out
}

// Div returns s/r.
func (s Scalar[T, D]) Div(r Scalar[T, D]) Scalar[T, D] {
	inv := 1 / r.Value
	inv2 := s.Value * inv * inv
	out := Scalar[T, D]{Value: s.Value * inv}
	for i := 0; i < len(s.Deriv); i++ {
		out.Deriv[i] = inv*s.Deriv[i] - inv2*r.Deriv[i]
	}
	return out
}

// Neg returns −s.
func (s Scalar[T, D]) Neg() Scalar[T, D] {
	return chain(-s.Value, -1, s)
}

// AddConst returns s + c.
func (s Scalar[T, D]) AddConst(c T) Scalar[T, D] {
	return Scalar[T, D]{Value: s.Value + c, Deriv: s.Deriv}
}

// SubConst returns s − c.
func (s Scalar[T, D]) SubConst(c T) Scalar[T, D] {
	return Scalar[T, D]{Value: s.Value - c, Deriv: s.Deriv}
}

// MulConst returns s·c.
func (s Scalar[T, D]) MulConst(c T) Scalar[T, D] {
	return chain(s.Value*c, c, s)
}

// DivConst returns s/c.
func (s Scalar[T, D]) DivConst(c T) Scalar[T, D] {
	inv := 1 / c
	return chain(s.Value*inv, inv, s)
}

// ConstSub returns c − s.
func ConstSub[T tensor.Float, D Tangents[T]](c T, s Scalar[T, D]) Scalar[T, D] {
	return chain(c-s.Value, -1, s)
}

// ConstDiv returns c/s.
func ConstDiv[T tensor.Float, D Tangents[T]](c T, s Scalar[T, D]) Scalar[T, D] {
	inv := 1 / s.Value
	return chain(c*inv, -c*inv*inv, s)
}

// Less reports s.Value < r.Value.
func (s Scalar[T, D]) Less(r Scalar[T, D]) bool { return s.Value < r.Value }

// LessEq reports s.Value <= r.Value.
func (s Scalar[T, D]) LessEq(r Scalar[T, D]) bool { return s.Value <= r.Value }

// Greater reports s.Value > r.Value.
func (s Scalar[T, D]) Greater(r Scalar[T, D]) bool { return s.Value > r.Value }

// GreaterEq reports s.Value >= r.Value.
func (s Scalar[T, D]) GreaterEq(r Scalar[T, D]) bool { return s.Value >= r.Value }

// LessConst reports s.Value < c.
func (s Scalar[T, D]) LessConst(c T) bool { return s.Value < c }

// LessEqConst reports s.Value <= c.
func (s Scalar[T, D]) LessEqConst(c T) bool { return s.Value <= c }

// GreaterConst reports s.Value > c.
func (s Scalar[T, D]) GreaterConst(c T) bool { return s.Value > c }

// GreaterEqConst reports s.Value >= c.
func (s Scalar[T, D]) GreaterEqConst(c T) bool { return s.Value >= c }

// Abs returns |s|. The tangent at zero uses the + branch.
func Abs[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	if s.Value < 0 {
		return chain(-s.Value, -1, s)
	}
	return chain(s.Value, 1, s)
}

// Sqrt returns √s. Tangents are infinite at zero.
func Sqrt[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	f := T(math.Sqrt(float64(s.Value)))
	return chain(f, 0.5/f, s)
}

// Pow returns s**e for a constant exponent.
func Pow[T tensor.Float, D Tangents[T]](s Scalar[T, D], e T) Scalar[T, D] {
	f := T(math.Pow(float64(s.Value), float64(e)))
	d := e * T(math.Pow(float64(s.Value), float64(e-1)))
	return chain(f, d, s)
}

// Exp returns e**s.
func Exp[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	f := T(math.Exp(float64(s.Value)))
	return chain(f, f, s)
}

// Log returns the natural logarithm of s.
func Log[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	return chain(T(math.Log(float64(s.Value))), 1/s.Value, s)
}

// Sin returns sin(s).
func Sin[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	v := float64(s.Value)
	return chain(T(math.Sin(v)), T(math.Cos(v)), s)
}

// Cos returns cos(s).
func Cos[T tensor.Float, D Tangents[T]](s Scalar[T, D]) Scalar[T, D] {
	v := float64(s.Value)
	return chain(T(math.Cos(v)), T(-math.Sin(v)), s)
}
