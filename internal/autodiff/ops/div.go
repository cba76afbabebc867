package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarDivExpr computes c = a/b.
//
// Reverse pass:
//   - ā += c̄/b
//   - b̄ −= c̄·a/b²
//
// The quotient is linear in a, so only b carries self-curvature:
// ∂²c/∂b² = 2a/b³ and ∂²c/∂a∂b = −1/b².
type ScalarDivExpr[T tensor.Number] struct {
	base
	a, b, c ref[T]
}

// ScalarDiv builds c = a/b. Derivatives are singular at b = 0.
func ScalarDiv[T tensor.Number](a, b, c tensor.Obj[T]) *ScalarDivExpr[T] {
	const name = "ScalarDiv"
	requireKind(name, a.Shape(), tensor.KindScalar)
	requireKind(name, b.Shape(), tensor.KindScalar)
	requireKind(name, c.Shape(), tensor.KindScalar)
	return &ScalarDivExpr[T]{
		base: bind(name, c, a, b),
		a:    refOf(a),
		b:    refOf(b),
		c:    refOf(c),
	}
}

// Eval computes c = a/b.
func (e *ScalarDivExpr[T]) Eval() {
	e.c.v[0] = e.a.v[0] / e.b.v[0]
}

// Forward propagates ċ = (ȧ − c·ḃ)/b.
func (e *ScalarDivExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *ScalarDivExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *ScalarDivExpr[T]) forward(s tensor.Seed) {
	inv := 1 / e.b.v[0]
	switch e.act {
	case ActiveBoth:
		e.c.seed(s)[0] = (e.a.seed(s)[0] - e.c.v[0]*e.b.seed(s)[0]) * inv
	case ActiveLeft:
		e.c.seed(s)[0] = e.a.seed(s)[0] * inv
	case ActiveRight:
		e.c.seed(s)[0] = -e.c.v[0] * e.b.seed(s)[0] * inv
	}
}

// Reverse accumulates ā and b̄ from c̄.
func (e *ScalarDivExpr[T]) Reverse() {
	inv := 1 / e.b.v[0]
	if e.act.Left() {
		e.a.b[0] += e.c.b[0] * inv
	}
	if e.act.Right() {
		e.b.b[0] -= e.c.b[0] * e.c.v[0] * inv
	}
}

// HReverse accumulates the Hessian-vector products of a and b.
func (e *ScalarDivExpr[T]) HReverse() {
	inv := 1 / e.b.v[0]
	cb := e.c.b[0]
	if e.act.Left() {
		e.a.h[0] += e.c.h[0] * inv
	}
	if e.act.Right() {
		e.b.h[0] += -e.c.h[0]*e.c.v[0]*inv + 2*cb*e.c.v[0]*inv*inv*e.b.p[0]
	}
	if e.act == ActiveBoth {
		e.a.h[0] -= cb * inv * inv * e.b.p[0]
		e.b.h[0] -= cb * inv * inv * e.a.p[0]
	}
}
