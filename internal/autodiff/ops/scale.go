package ops

import (
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// VecScaleExpr computes y = α·x where α is a scalar operand.
//
// Reverse pass:
//   - ᾱ += ȳ·x
//   - x̄ += α·ȳ
type VecScaleExpr[T tensor.Number] struct {
	base
	alpha, x, y ref[T]
}

// VecScale builds y = α·x.
func VecScale[T tensor.Number](alpha, x, y tensor.Obj[T]) *VecScaleExpr[T] {
	const name = "VecScale"
	requireKind(name, alpha.Shape(), tensor.KindScalar)
	requireKind(name, x.Shape(), tensor.KindVec)
	requireSameShape(name, x.Shape(), y.Shape())
	return &VecScaleExpr[T]{
		base:  bind(name, y, alpha, x),
		alpha: refOf(alpha),
		x:     refOf(x),
		y:     refOf(y),
	}
}

// Eval computes y = α·x.
func (e *VecScaleExpr[T]) Eval() {
	kernel.Scale(e.alpha.v[0], e.x.v, e.y.v)
}

// Forward propagates ẏ = α̇·x + α·ẋ.
func (e *VecScaleExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *VecScaleExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *VecScaleExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		kernel.Scale(e.alpha.seed(s)[0], e.x.v, e.y.seed(s))
		kernel.Axpy(e.alpha.v[0], e.x.seed(s), e.y.seed(s))
	case ActiveLeft:
		kernel.Scale(e.alpha.seed(s)[0], e.x.v, e.y.seed(s))
	case ActiveRight:
		kernel.Scale(e.alpha.v[0], e.x.seed(s), e.y.seed(s))
	}
}

// Reverse accumulates ᾱ and x̄ from ȳ.
func (e *VecScaleExpr[T]) Reverse() {
	if e.act.Left() {
		e.alpha.b[0] += kernel.Dot(e.y.b, e.x.v)
	}
	if e.act.Right() {
		kernel.Axpy(e.alpha.v[0], e.y.b, e.x.b)
	}
}

// HReverse accumulates the Hessian-vector products of α and x.
func (e *VecScaleExpr[T]) HReverse() {
	if e.act.Left() {
		e.alpha.h[0] += kernel.Dot(e.y.h, e.x.v)
	}
	if e.act.Right() {
		kernel.Axpy(e.alpha.v[0], e.y.h, e.x.h)
	}
	if e.act == ActiveBoth {
		e.alpha.h[0] += kernel.Dot(e.y.b, e.x.p)
		kernel.Axpy(e.alpha.p[0], e.y.b, e.x.h)
	}
}
