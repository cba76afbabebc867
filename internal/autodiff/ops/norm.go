package ops

import (
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// VecNormExpr computes s = ‖x‖₂ = √(x·x).
//
// The Hessian is (I − x·xᵀ/s²)/s, so HReverse adds
// s̄·(pₓ − x·(x·pₓ)/s²)/s on top of the h-channel reverse term.
// A zero vector yields NaN derivatives.
type VecNormExpr[T tensor.Number] struct {
	base
	x, s ref[T]
}

// VecNorm builds s = ‖x‖₂.
func VecNorm[T tensor.Number](x, s tensor.Obj[T]) *VecNormExpr[T] {
	const name = "VecNorm"
	requireKind(name, x.Shape(), tensor.KindVec)
	requireKind(name, s.Shape(), tensor.KindScalar)
	return &VecNormExpr[T]{
		base: bind(name, s, x),
		x:    refOf(x),
		s:    refOf(s),
	}
}

// Eval computes s = √(x·x).
func (e *VecNormExpr[T]) Eval() {
	e.s.v[0] = tensor.Sqrt(kernel.Dot(e.x.v, e.x.v))
}

// Forward propagates ṡ = (x·ẋ)/s.
func (e *VecNormExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *VecNormExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *VecNormExpr[T]) forward(s tensor.Seed) {
	if e.act.Left() {
		e.s.seed(s)[0] = kernel.Dot(e.x.v, e.x.seed(s)) / e.s.v[0]
	}
}

// Reverse accumulates x̄ += (s̄/s)·x.
func (e *VecNormExpr[T]) Reverse() {
	if e.act.Left() {
		kernel.Axpy(e.s.b[0]/e.s.v[0], e.x.v, e.x.b)
	}
}

// HReverse accumulates the Hessian-vector product of x.
func (e *VecNormExpr[T]) HReverse() {
	if !e.act.Left() {
		return
	}
	inv := 1 / e.s.v[0]
	sb := e.s.b[0]
	kernel.Axpy(e.s.h[0]*inv, e.x.v, e.x.h)
	kernel.Axpy(sb*inv, e.x.p, e.x.h)
	kernel.Axpy(-sb*inv*inv*inv*kernel.Dot(e.x.v, e.x.p), e.x.v, e.x.h)
}
