package ops

import (
	"fmt"

	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// MatVecMultExpr computes y = op(A)·x for an n×m matrix A.
//
// Reverse pass:
//   - Ā += ȳ·xᵀ (x·ȳᵀ when transposed)
//   - x̄ += not-op(A)·ȳ
//
// HReverse adds the cross terms ȳ·pₓᵀ into A's h slot and not-op(Aₚ)·ȳ
// into x's h slot when both inputs are active.
type MatVecMultExpr[T tensor.Number] struct {
	base
	op      kernel.MatOp
	n, m    int
	a, x, y ref[T]
}

// MatVecMult builds y = op(A)·x.
func MatVecMult[T tensor.Number](op kernel.MatOp, a, x, y tensor.Obj[T]) *MatVecMultExpr[T] {
	name := "MatVecMult<" + op.String() + ">"
	sa, sx, sy := a.Shape(), x.Shape(), y.Shape()
	requireKind(name, sa, tensor.KindMat)
	requireKind(name, sx, tensor.KindVec)
	requireKind(name, sy, tensor.KindVec)

	rows, cols := op.Dims(sa.Rows, sa.Cols)
	if cols != sx.Rows || rows != sy.Rows {
		panic(fmt.Sprintf("%s: matrix and vector dimensions must agree: %v · %v -> %v", name, sa, sx, sy))
	}

	return &MatVecMultExpr[T]{
		base: bind(name, y, a, x),
		op:   op,
		n:    sa.Rows,
		m:    sa.Cols,
		a:    refOf(a),
		x:    refOf(x),
		y:    refOf(y),
	}
}

// Eval computes y = op(A)·x.
func (e *MatVecMultExpr[T]) Eval() {
	kernel.MatVec(e.op, e.n, e.m, e.a.v, e.x.v, e.y.v)
}

// Forward propagates ẏ = op(Ȧ)·x + op(A)·ẋ.
func (e *MatVecMultExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *MatVecMultExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *MatVecMultExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		kernel.MatVec(e.op, e.n, e.m, e.a.seed(s), e.x.v, e.y.seed(s))
		kernel.MatVecAdd(e.op, e.n, e.m, e.a.v, e.x.seed(s), e.y.seed(s))
	case ActiveLeft:
		kernel.MatVec(e.op, e.n, e.m, e.a.seed(s), e.x.v, e.y.seed(s))
	case ActiveRight:
		kernel.MatVec(e.op, e.n, e.m, e.a.v, e.x.seed(s), e.y.seed(s))
	}
}

// Reverse accumulates Ā and x̄ from ȳ.
func (e *MatVecMultExpr[T]) Reverse() {
	if e.act.Left() {
		e.outerAdd(e.y.b, e.x.v, e.a.b)
	}
	if e.act.Right() {
		kernel.MatVecAdd(e.op.Not(), e.n, e.m, e.a.v, e.y.b, e.x.b)
	}
}

// HReverse accumulates the Hessian-vector products of A and x.
func (e *MatVecMultExpr[T]) HReverse() {
	if e.act.Left() {
		e.outerAdd(e.y.h, e.x.v, e.a.h)
	}
	if e.act.Right() {
		kernel.MatVecAdd(e.op.Not(), e.n, e.m, e.a.v, e.y.h, e.x.h)
	}
	if e.act == ActiveBoth {
		e.outerAdd(e.y.b, e.x.p, e.a.h)
		kernel.MatVecAdd(e.op.Not(), e.n, e.m, e.a.p, e.y.b, e.x.h)
	}
}

// outerAdd accumulates the derivative of ybar·op(A)·x with respect to A.
func (e *MatVecMultExpr[T]) outerAdd(ybar, x, dst []T) {
	if e.op == kernel.Normal {
		kernel.VecOuterAdd(e.n, e.m, ybar, x, dst)
	} else {
		kernel.VecOuterAdd(e.n, e.m, x, ybar, dst)
	}
}
