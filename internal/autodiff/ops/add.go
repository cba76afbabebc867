package ops

import (
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// SumExpr computes z = α·x + β·y for constant α, β and operands of one shape.
//
// The map is linear, so HReverse is Reverse applied to the h channel.
type SumExpr[T tensor.Number] struct {
	base
	alpha, beta T
	x, y, z     ref[T]
}

// MatSum builds C = α·A + β·B.
func MatSum[T tensor.Number](alpha T, a tensor.Obj[T], beta T, b, c tensor.Obj[T]) *SumExpr[T] {
	return newSum("MatSum", tensor.KindMat, alpha, a, beta, b, c)
}

// VecSum builds z = α·x + β·y.
func VecSum[T tensor.Number](alpha T, x tensor.Obj[T], beta T, y, z tensor.Obj[T]) *SumExpr[T] {
	return newSum("VecSum", tensor.KindVec, alpha, x, beta, y, z)
}

// ScalarSum builds c = α·a + β·b.
func ScalarSum[T tensor.Number](alpha T, a tensor.Obj[T], beta T, b, c tensor.Obj[T]) *SumExpr[T] {
	return newSum("ScalarSum", tensor.KindScalar, alpha, a, beta, b, c)
}

func newSum[T tensor.Number](name string, kind tensor.Kind, alpha T, x tensor.Obj[T], beta T, y, z tensor.Obj[T]) *SumExpr[T] {
	requireKind(name, x.Shape(), kind)
	requireSameShape(name, x.Shape(), y.Shape(), z.Shape())
	return &SumExpr[T]{
		base:  bind(name, z, x, y),
		alpha: alpha,
		beta:  beta,
		x:     refOf(x),
		y:     refOf(y),
		z:     refOf(z),
	}
}

// Eval computes z = α·x + β·y.
func (e *SumExpr[T]) Eval() {
	kernel.Scale(e.alpha, e.x.v, e.z.v)
	kernel.Axpy(e.beta, e.y.v, e.z.v)
}

// Forward propagates ż = α·ẋ + β·ẏ.
func (e *SumExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *SumExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *SumExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		kernel.Scale(e.alpha, e.x.seed(s), e.z.seed(s))
		kernel.Axpy(e.beta, e.y.seed(s), e.z.seed(s))
	case ActiveLeft:
		kernel.Scale(e.alpha, e.x.seed(s), e.z.seed(s))
	case ActiveRight:
		kernel.Scale(e.beta, e.y.seed(s), e.z.seed(s))
	}
}

// Reverse accumulates x̄ += α·z̄ and ȳ += β·z̄.
func (e *SumExpr[T]) Reverse() {
	if e.act.Left() {
		kernel.Axpy(e.alpha, e.z.b, e.x.b)
	}
	if e.act.Right() {
		kernel.Axpy(e.beta, e.z.b, e.y.b)
	}
}

// HReverse accumulates the h channel.
func (e *SumExpr[T]) HReverse() {
	if e.act.Left() {
		kernel.Axpy(e.alpha, e.z.h, e.x.h)
	}
	if e.act.Right() {
		kernel.Axpy(e.beta, e.z.h, e.y.h)
	}
}
