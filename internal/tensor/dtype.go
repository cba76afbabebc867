// Package tensor provides the numeric constraint, fixed shapes and the three
// operand tiers the automatic differentiation core works on.
package tensor

import (
	"math"
	"math/cmplx"
)

// Number is a constraint for the element types operands can hold.
// Complex types exist for complex-step derivative checks.
type Number interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Float is a constraint for real element types.
type Float interface {
	~float32 | ~float64
}

// Order is the differentiation order an operand or node supports.
type Order int

// Supported differentiation orders.
const (
	OrderNone Order = iota // passive: value only
	OrderFirst
	OrderSecond
)

// String returns a human-readable name for the order.
func (o Order) String() string {
	switch o {
	case OrderNone:
		return "passive"
	case OrderFirst:
		return "first"
	case OrderSecond:
		return "second"
	default:
		return "unknown"
	}
}

// Seed names one derivative slot of an operand.
type Seed int

// Derivative slots.
const (
	SeedB Seed = iota // tangent in first-order forward sweeps, adjoint otherwise
	SeedP             // second-order tangent direction
	SeedH             // Hessian-vector accumulation
)

// String returns the slot name.
func (s Seed) String() string {
	switch s {
	case SeedB:
		return "b"
	case SeedP:
		return "p"
	case SeedH:
		return "h"
	default:
		return "unknown"
	}
}

// Sqrt returns the principal square root of x.
func Sqrt[T Number](x T) T { return apply(x, math.Sqrt, cmplx.Sqrt) }

// Exp returns e**x.
func Exp[T Number](x T) T { return apply(x, math.Exp, cmplx.Exp) }

// Log returns the natural logarithm of x.
func Log[T Number](x T) T { return apply(x, math.Log, cmplx.Log) }

// Sin returns the sine of x.
func Sin[T Number](x T) T { return apply(x, math.Sin, cmplx.Sin) }

// Cos returns the cosine of x.
func Cos[T Number](x T) T { return apply(x, math.Cos, cmplx.Cos) }

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Number](x T) T { return apply(x, math.Tanh, cmplx.Tanh) }

// apply evaluates f for real types and g for complex types.
func apply[T Number](x T, f func(float64) float64, g func(complex128) complex128) T {
	switch v := any(x).(type) {
	case float64:
		return any(f(v)).(T)
	case float32:
		return any(float32(f(float64(v)))).(T)
	case complex128:
		return any(g(v)).(T)
	case complex64:
		return any(complex64(g(complex128(v)))).(T)
	default:
		panic("unsupported type")
	}
}

// Real returns the real part of x as float64.
func Real[T Number](x T) float64 {
	switch v := any(x).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case complex128:
		return real(v)
	case complex64:
		return float64(real(v))
	default:
		panic("unsupported type")
	}
}

// Imag returns the imaginary part of x as float64; zero for real types.
func Imag[T Number](x T) float64 {
	switch v := any(x).(type) {
	case complex128:
		return imag(v)
	case complex64:
		return float64(imag(v))
	case float64, float32:
		return 0
	default:
		panic("unsupported type")
	}
}

// FromParts builds a T from real and imaginary parts. The imaginary part is
// dropped for real types.
func FromParts[T Number](re, im float64) T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(re).(T)
	case float32:
		return any(float32(re)).(T)
	case complex128:
		return any(complex(re, im)).(T)
	case complex64:
		return any(complex64(complex(re, im))).(T)
	default:
		panic("unsupported type")
	}
}
