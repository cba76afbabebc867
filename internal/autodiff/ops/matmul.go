package ops

import (
	"fmt"

	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// MatMatMultExpr computes C = op(A)·op(B).
//
// Reverse pass, with C̄ the output adjoint:
//   - Ā += C̄·op(B)ᵀ, or op(B)·C̄ᵀ when A is transposed
//   - B̄ += op(A)ᵀ·C̄, or C̄ᵀ·op(A) when B is transposed
type MatMatMultExpr[T tensor.Number] struct {
	base
	opA, opB kernel.MatOp
	na, ma   int
	nb, mb   int
	rc, cc   int // extents of C
	a, b, c  ref[T]
}

// MatMatMult builds C = op(A)·op(B).
func MatMatMult[T tensor.Number](opA, opB kernel.MatOp, a, b, c tensor.Obj[T]) *MatMatMultExpr[T] {
	name := "MatMatMult<" + opA.String() + "," + opB.String() + ">"
	sa, sb, sc := a.Shape(), b.Shape(), c.Shape()
	requireKind(name, sa, tensor.KindMat)
	requireKind(name, sb, tensor.KindMat)
	requireKind(name, sc, tensor.KindMat)

	ra, ka := opA.Dims(sa.Rows, sa.Cols)
	kb, cb := opB.Dims(sb.Rows, sb.Cols)
	if ka != kb || ra != sc.Rows || cb != sc.Cols {
		panic(fmt.Sprintf("%s: matrix dimensions must agree: %v · %v -> %v", name, sa, sb, sc))
	}

	return &MatMatMultExpr[T]{
		base: bind(name, c, a, b),
		opA:  opA,
		opB:  opB,
		na:   sa.Rows,
		ma:   sa.Cols,
		nb:   sb.Rows,
		mb:   sb.Cols,
		rc:   sc.Rows,
		cc:   sc.Cols,
		a:    refOf(a),
		b:    refOf(b),
		c:    refOf(c),
	}
}

// Eval computes C = op(A)·op(B).
func (e *MatMatMultExpr[T]) Eval() {
	kernel.MatMat(e.opA, e.opB, e.na, e.ma, e.nb, e.mb, e.a.v, e.b.v, e.c.v)
}

// Forward propagates Ċ = op(Ȧ)·op(B) + op(A)·op(Ḃ).
func (e *MatMatMultExpr[T]) Forward() { e.forward(tensor.SeedB) }

// HForward propagates the p channel.
func (e *MatMatMultExpr[T]) HForward() { e.forward(tensor.SeedP) }

func (e *MatMatMultExpr[T]) forward(s tensor.Seed) {
	switch e.act {
	case ActiveBoth:
		kernel.MatMat(e.opA, e.opB, e.na, e.ma, e.nb, e.mb, e.a.seed(s), e.b.v, e.c.seed(s))
		kernel.MatMatAdd(e.opA, e.opB, e.na, e.ma, e.nb, e.mb, e.a.v, e.b.seed(s), e.c.seed(s))
	case ActiveLeft:
		kernel.MatMat(e.opA, e.opB, e.na, e.ma, e.nb, e.mb, e.a.seed(s), e.b.v, e.c.seed(s))
	case ActiveRight:
		kernel.MatMat(e.opA, e.opB, e.na, e.ma, e.nb, e.mb, e.a.v, e.b.seed(s), e.c.seed(s))
	}
}

// Reverse accumulates Ā and B̄ from C̄.
func (e *MatMatMultExpr[T]) Reverse() {
	if e.act.Left() {
		e.adjA(e.c.b, e.b.v, e.a.b)
	}
	if e.act.Right() {
		e.adjB(e.a.v, e.c.b, e.b.b)
	}
}

// HReverse accumulates the Hessian-vector products of A and B.
func (e *MatMatMultExpr[T]) HReverse() {
	if e.act.Left() {
		e.adjA(e.c.h, e.b.v, e.a.h)
	}
	if e.act.Right() {
		e.adjB(e.a.v, e.c.h, e.b.h)
	}
	if e.act == ActiveBoth {
		e.adjA(e.c.b, e.b.p, e.a.h)
		e.adjB(e.a.p, e.c.b, e.b.h)
	}
}

// adjA accumulates ∂(cbar : op(A)·op(B))/∂A into dst.
func (e *MatMatMultExpr[T]) adjA(cbar, b, dst []T) {
	if e.opA == kernel.Normal {
		kernel.MatMatAdd(kernel.Normal, e.opB.Not(), e.rc, e.cc, e.nb, e.mb, cbar, b, dst)
	} else {
		kernel.MatMatAdd(e.opB, kernel.Transpose, e.nb, e.mb, e.rc, e.cc, b, cbar, dst)
	}
}

// adjB accumulates ∂(cbar : op(A)·op(B))/∂B into dst.
func (e *MatMatMultExpr[T]) adjB(a, cbar, dst []T) {
	if e.opB == kernel.Normal {
		kernel.MatMatAdd(e.opA.Not(), kernel.Normal, e.na, e.ma, e.rc, e.cc, a, cbar, dst)
	} else {
		kernel.MatMatAdd(kernel.Transpose, e.opA, e.rc, e.cc, e.na, e.ma, cbar, a, dst)
	}
}
