package ops

import (
	"fmt"

	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// MatTraceExpr computes s = tr(A) for a square matrix A.
type MatTraceExpr[T tensor.Number] struct {
	base
	n    int
	a, s ref[T]
}

// MatTrace builds s = tr(A).
func MatTrace[T tensor.Number](a, s tensor.Obj[T]) *MatTraceExpr[T] {
	const name = "MatTrace"
	sa := a.Shape()
	requireKind(name, sa, tensor.KindMat)
	requireKind(name, s.Shape(), tensor.KindScalar)
	if sa.Rows != sa.Cols {
		panic(fmt.Sprintf("%s: matrix must be square, got %v", name, sa))
	}
	return &MatTraceExpr[T]{
		base: bind(name, s, a),
		n:    sa.Rows,
		a:    refOf(a),
		s:    refOf(s),
	}
}

// Eval computes s = tr(A).
func (e *MatTraceExpr[T]) Eval() {
	e.s.v[0] = kernel.Trace(e.n, e.a.v)
}

// Forward propagates ṡ = tr(Ȧ).
func (e *MatTraceExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *MatTraceExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *MatTraceExpr[T]) forward(s tensor.Seed) {
	if e.act.Left() {
		e.s.seed(s)[0] = kernel.Trace(e.n, e.a.seed(s))
	}
}

// Reverse accumulates Ā += s̄·I.
func (e *MatTraceExpr[T]) Reverse() {
	if e.act.Left() {
		kernel.AddDiag(e.n, e.s.b[0], e.a.b)
	}
}

// HReverse accumulates the h channel.
func (e *MatTraceExpr[T]) HReverse() {
	if e.act.Left() {
		kernel.AddDiag(e.n, e.s.h[0], e.a.h)
	}
}
