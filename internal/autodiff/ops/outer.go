package ops

import (
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// VecOuterExpr computes A = α·x·yᵀ for a constant α, x of length n and y of
// length m.
//
// Reverse pass:
//   - x̄ += α·Ā·y
//   - ȳ += α·Āᵀ·x
//
// The map is bilinear, so HReverse adds only the cross terms α·Ā·pᵧ and
// α·Āᵀ·pₓ when both inputs are active.
type VecOuterExpr[T tensor.Number] struct {
	base
	alpha   T
	n, m    int
	x, y, a ref[T]
}

// VecOuter builds A = α·x·yᵀ.
func VecOuter[T tensor.Number](alpha T, x, y, a tensor.Obj[T]) *VecOuterExpr[T] {
	const name = "VecOuter"
	sx, sy := x.Shape(), y.Shape()
	requireKind(name, sx, tensor.KindVec)
	requireKind(name, sy, tensor.KindVec)
	requireSameShape(name, a.Shape(), tensor.MatShape(sx.Rows, sy.Rows))
	return &VecOuterExpr[T]{
		base:  bind(name, a, x, y),
		alpha: alpha,
		n:     sx.Rows,
		m:     sy.Rows,
		x:     refOf(x),
		y:     refOf(y),
		a:     refOf(a),
	}
}

// Eval computes A = α·x·yᵀ.
func (e *VecOuterExpr[T]) Eval() {
	kernel.VecOuterScale(e.n, e.m, e.alpha, e.x.v, e.y.v, e.a.v)
}

// Forward propagates Ȧ = α·(ẋ·yᵀ + x·ẏᵀ).
func (e *VecOuterExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *VecOuterExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *VecOuterExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		kernel.VecOuterScale(e.n, e.m, e.alpha, e.x.seed(s), e.y.v, e.a.seed(s))
		kernel.VecOuterScaleAdd(e.n, e.m, e.alpha, e.x.v, e.y.seed(s), e.a.seed(s))
	case ActiveLeft:
		kernel.VecOuterScale(e.n, e.m, e.alpha, e.x.seed(s), e.y.v, e.a.seed(s))
	case ActiveRight:
		kernel.VecOuterScale(e.n, e.m, e.alpha, e.x.v, e.y.seed(s), e.a.seed(s))
	}
}

// Reverse accumulates x̄ and ȳ from Ā.
func (e *VecOuterExpr[T]) Reverse() {
	e.reverse(e.a.b, e.y.v, e.x.v, e.x.b, e.y.b)
}

// HReverse accumulates the Hessian-vector products of x and y.
func (e *VecOuterExpr[T]) HReverse() {
	e.reverse(e.a.h, e.y.v, e.x.v, e.x.h, e.y.h)
	if e.act == ActiveBoth {
		e.reverse(e.a.b, e.y.p, e.x.p, e.x.h, e.y.h)
	}
}

// reverse accumulates xdst += α·abar·y and ydst += α·abarᵀ·x for the
// active inputs.
func (e *VecOuterExpr[T]) reverse(abar, y, x, xdst, ydst []T) {
	for i := 0; i < e.n; i++ {
		row := abar[i*e.m : i*e.m+e.m]
		if e.act.Left() {
			xdst[i] += e.alpha * kernel.Dot(row, y)
		}
		if e.act.Right() {
			kernel.Axpy(e.alpha*x[i], row, ydst)
		}
	}
}
