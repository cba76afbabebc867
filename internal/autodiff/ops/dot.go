package ops

import (
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// DotExpr computes s = Σᵢ xᵢ·yᵢ over two operands of one shape.
//
// x and y may be the same operand: all input updates accumulate, so
// MatDot(E, E, s) differentiates E:E correctly.
type DotExpr[T tensor.Number] struct {
	base
	x, y, s ref[T]
}

// VecDot builds s = x·y.
func VecDot[T tensor.Number](x, y, s tensor.Obj[T]) *DotExpr[T] {
	return newDot("VecDot", tensor.KindVec, x, y, s)
}

// MatDot builds s = A:B, the Frobenius inner product.
func MatDot[T tensor.Number](a, b, s tensor.Obj[T]) *DotExpr[T] {
	return newDot("MatDot", tensor.KindMat, a, b, s)
}

func newDot[T tensor.Number](name string, kind tensor.Kind, x, y, s tensor.Obj[T]) *DotExpr[T] {
	requireKind(name, x.Shape(), kind)
	requireSameShape(name, x.Shape(), y.Shape())
	requireKind(name, s.Shape(), tensor.KindScalar)
	return &DotExpr[T]{
		base: bind(name, s, x, y),
		x:    refOf(x),
		y:    refOf(y),
		s:    refOf(s),
	}
}

// Eval computes s = x·y.
func (e *DotExpr[T]) Eval() {
	e.s.v[0] = kernel.Dot(e.x.v, e.y.v)
}

// Forward propagates ṡ = ẋ·y + x·ẏ.
func (e *DotExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *DotExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *DotExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		e.s.seed(s)[0] = kernel.Dot(e.x.seed(s), e.y.v) + kernel.Dot(e.x.v, e.y.seed(s))
	case ActiveLeft:
		e.s.seed(s)[0] = kernel.Dot(e.x.seed(s), e.y.v)
	case ActiveRight:
		e.s.seed(s)[0] = kernel.Dot(e.x.v, e.y.seed(s))
	}
}

// Reverse accumulates x̄ += s̄·y and ȳ += s̄·x.
func (e *DotExpr[T]) Reverse() {
	if e.act.Left() {
		kernel.Axpy(e.s.b[0], e.y.v, e.x.b)
	}
	if e.act.Right() {
		kernel.Axpy(e.s.b[0], e.x.v, e.y.b)
	}
}

// HReverse accumulates the Hessian-vector products of x and y.
func (e *DotExpr[T]) HReverse() {
	if e.act.Left() {
		kernel.Axpy(e.s.h[0], e.y.v, e.x.h)
	}
	if e.act.Right() {
		kernel.Axpy(e.s.h[0], e.x.v, e.y.h)
	}
	if e.act == ActiveBoth {
		kernel.Axpy(e.s.b[0], e.y.p, e.x.h)
		kernel.Axpy(e.s.b[0], e.x.p, e.y.h)
	}
}
