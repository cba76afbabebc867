package ops

import "github.com/born-ml/a2d/internal/tensor"

// scalarFunc returns f(a) together with f'(a) and f''(a).
type scalarFunc[T tensor.Number] func(a T) (f, d1, d2 T)

// ScalarFuncExpr computes c = f(a) for a smooth scalar function f.
//
// The derivatives are evaluated once in Eval:
//   - ċ = f'(a)·ȧ
//   - ā += f'(a)·c̄
//   - hₐ += f'(a)·h_c + f''(a)·c̄·pₐ
type ScalarFuncExpr[T tensor.Number] struct {
	base
	fn     scalarFunc[T]
	d1, d2 T
	a, c   ref[T]
}

func newScalarFunc[T tensor.Number](name string, fn scalarFunc[T], a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	requireKind(name, a.Shape(), tensor.KindScalar)
	requireKind(name, c.Shape(), tensor.KindScalar)
	return &ScalarFuncExpr[T]{
		base: bind(name, c, a),
		fn:   fn,
		a:    refOf(a),
		c:    refOf(c),
	}
}

// Eval computes c = f(a) and caches f'(a), f''(a).
func (e *ScalarFuncExpr[T]) Eval() {
	e.c.v[0], e.d1, e.d2 = e.fn(e.a.v[0])
}

// Forward propagates ċ = f'(a)·ȧ.
func (e *ScalarFuncExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *ScalarFuncExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *ScalarFuncExpr[T]) forward(s tensor.Seed) {
	if e.act.Left() {
		e.c.seed(s)[0] = e.d1 * e.a.seed(s)[0]
	}
}

// Reverse accumulates ā += f'(a)·c̄.
func (e *ScalarFuncExpr[T]) Reverse() {
	if e.act.Left() {
		e.a.b[0] += e.d1 * e.c.b[0]
	}
}

// HReverse accumulates the Hessian-vector product of a.
func (e *ScalarFuncExpr[T]) HReverse() {
	if e.act.Left() {
		e.a.h[0] += e.d1*e.c.h[0] + e.d2*e.c.b[0]*e.a.p[0]
	}
}
