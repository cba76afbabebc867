package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarMultExpr computes c = a·b.
//
// Reverse pass:
//   - ā += c̄·b
//   - b̄ += c̄·a
type ScalarMultExpr[T tensor.Number] struct {
	base
	a, b, c ref[T]
}

// ScalarMult builds c = a·b. a and b may be the same operand.
func ScalarMult[T tensor.Number](a, b, c tensor.Obj[T]) *ScalarMultExpr[T] {
	const name = "ScalarMult"
	requireKind(name, a.Shape(), tensor.KindScalar)
	requireKind(name, b.Shape(), tensor.KindScalar)
	requireKind(name, c.Shape(), tensor.KindScalar)
	return &ScalarMultExpr[T]{
		base: bind(name, c, a, b),
		a:    refOf(a),
		b:    refOf(b),
		c:    refOf(c),
	}
}

// Eval computes c = a·b.
func (e *ScalarMultExpr[T]) Eval() {
	e.c.v[0] = e.a.v[0] * e.b.v[0]
}

// Forward propagates ċ = ȧ·b + a·ḃ.
func (e *ScalarMultExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *ScalarMultExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *ScalarMultExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		e.c.seed(s)[0] = e.a.seed(s)[0]*e.b.v[0] + e.a.v[0]*e.b.seed(s)[0]
	case ActiveLeft:
		e.c.seed(s)[0] = e.a.seed(s)[0] * e.b.v[0]
	case ActiveRight:
		e.c.seed(s)[0] = e.a.v[0] * e.b.seed(s)[0]
	}
}

// Reverse accumulates ā and b̄ from c̄.
func (e *ScalarMultExpr[T]) Reverse() {
	if e.act.Left() {
		e.a.b[0] += e.c.b[0] * e.b.v[0]
	}
	if e.act.Right() {
		e.b.b[0] += e.c.b[0] * e.a.v[0]
	}
}

// HReverse accumulates the Hessian-vector products of a and b.
func (e *ScalarMultExpr[T]) HReverse() {
	if e.act.Left() {
		e.a.h[0] += e.c.h[0] * e.b.v[0]
	}
	if e.act.Right() {
		e.b.h[0] += e.c.h[0] * e.a.v[0]
	}
	if e.act == ActiveBoth {
		e.a.h[0] += e.c.b[0] * e.b.p[0]
		e.b.h[0] += e.c.b[0] * e.a.p[0]
	}
}
