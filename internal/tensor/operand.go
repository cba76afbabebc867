package tensor

import "fmt"

// Obj is implemented by every operand tier.
//
// Slots a tier does not carry are returned as nil. Slices alias the
// operand's storage: writing into them writes into the operand.
type Obj[T Number] interface {
	// Shape returns the fixed extents.
	Shape() Shape

	// Order returns OrderNone for passive operands.
	Order() Order

	// Value returns the value storage (row-major).
	Value() []T

	// BValue returns the first derivative slot.
	BValue() []T

	// PValue returns the second-order tangent slot.
	PValue() []T

	// HValue returns the Hessian-vector slot.
	HValue() []T
}

// Get returns the slot of o named by seed.
func Get[T Number](o Obj[T], seed Seed) []T {
	switch seed {
	case SeedB:
		return o.BValue()
	case SeedP:
		return o.PValue()
	case SeedH:
		return o.HValue()
	default:
		panic(fmt.Sprintf("unknown seed %d", seed))
	}
}

func mustShape(shape Shape) {
	if err := shape.Validate(); err != nil {
		panic(err) // Operand shapes are fixed by the caller's program.
	}
}

// Value is a passive operand: a value with no derivative storage.
type Value[T Number] struct {
	shape Shape
	v     []T
}

// NewValue creates a zero-valued passive operand.
func NewValue[T Number](shape Shape) *Value[T] {
	mustShape(shape)
	return &Value[T]{shape: shape, v: make([]T, shape.NumElements())}
}

// Shape returns the operand extents.
func (o *Value[T]) Shape() Shape { return o.shape }

// Order returns OrderNone.
func (o *Value[T]) Order() Order { return OrderNone }

// Value returns the value storage.
func (o *Value[T]) Value() []T { return o.v }

// BValue returns nil.
func (o *Value[T]) BValue() []T { return nil }

// PValue returns nil.
func (o *Value[T]) PValue() []T { return nil }

// HValue returns nil.
func (o *Value[T]) HValue() []T { return nil }

// ZeroDerivs is a no-op for passive operands.
func (o *Value[T]) ZeroDerivs() {}

// ADObj is a first-order operand: a value plus one derivative slot b.
//
// Forward sweeps write the tangent into b, reverse sweeps accumulate the
// adjoint into b. The slot starts at zero.
type ADObj[T Number] struct {
	shape Shape
	v, b  []T
}

// NewADObj creates a zero-valued first-order operand.
func NewADObj[T Number](shape Shape) *ADObj[T] {
	mustShape(shape)
	n := shape.NumElements()
	buf := make([]T, 2*n)
	return &ADObj[T]{shape: shape, v: buf[:n:n], b: buf[n:]}
}

// Shape returns the operand extents.
func (o *ADObj[T]) Shape() Shape { return o.shape }

// Order returns OrderFirst.
func (o *ADObj[T]) Order() Order { return OrderFirst }

// Value returns the value storage.
func (o *ADObj[T]) Value() []T { return o.v }

// BValue returns the derivative slot.
func (o *ADObj[T]) BValue() []T { return o.b }

// PValue returns nil.
func (o *ADObj[T]) PValue() []T { return nil }

// HValue returns nil.
func (o *ADObj[T]) HValue() []T { return nil }

// ZeroDerivs resets the derivative slot.
func (o *ADObj[T]) ZeroDerivs() { clear(o.b) }

// A2DObj is a second-order operand: a value plus the adjoint b, the
// tangent direction p and the Hessian-vector slot h.
//
// h holds seedᵀ·H·p only after Reverse, HForward and HReverse ran in
// that order.
type A2DObj[T Number] struct {
	shape      Shape
	v, b, p, h []T
}

// NewA2DObj creates a zero-valued second-order operand.
func NewA2DObj[T Number](shape Shape) *A2DObj[T] {
	mustShape(shape)
	n := shape.NumElements()
	buf := make([]T, 4*n)
	return &A2DObj[T]{
		shape: shape,
		v:     buf[0:n:n],
		b:     buf[n : 2*n : 2*n],
		p:     buf[2*n : 3*n : 3*n],
		h:     buf[3*n:],
	}
}

// Shape returns the operand extents.
func (o *A2DObj[T]) Shape() Shape { return o.shape }

// Order returns OrderSecond.
func (o *A2DObj[T]) Order() Order { return OrderSecond }

// Value returns the value storage.
func (o *A2DObj[T]) Value() []T { return o.v }

// BValue returns the adjoint slot.
func (o *A2DObj[T]) BValue() []T { return o.b }

// PValue returns the tangent direction slot.
func (o *A2DObj[T]) PValue() []T { return o.p }

// HValue returns the Hessian-vector slot.
func (o *A2DObj[T]) HValue() []T { return o.h }

// ZeroDerivs resets b, p and h.
func (o *A2DObj[T]) ZeroDerivs() {
	clear(o.b)
	clear(o.p)
	clear(o.h)
}

// Passive presents o as a passive operand that shares o's value storage.
// Nodes built with it never read or write o's derivative slots.
func Passive[T Number](o Obj[T]) Obj[T] {
	return passive[T]{Obj: o}
}

type passive[T Number] struct {
	Obj[T]
}

func (passive[T]) Order() Order { return OrderNone }
func (passive[T]) BValue() []T { return nil }
func (passive[T]) PValue() []T { return nil }
func (passive[T]) HValue() []T { return nil }
