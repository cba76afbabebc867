package autodiff_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/a2d/internal/autodiff"
	"github.com/born-ml/a2d/internal/autodiff/ops"
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// TestHessianVector_Quartic checks f(x) = (x·x)², whose Hessian is
// 4(x·x)·I + 8·x·xᵀ.
func TestHessianVector_Quartic(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	x := tensor.NewA2DObj[float64](tensor.VecShape(4))
	s := tensor.NewA2DObj[float64](tensor.ScalarShape())
	f := tensor.NewA2DObj[float64](tensor.ScalarShape())
	fill(rng, x.Value())
	fill(rng, x.PValue())

	stack := autodiff.MakeStack(ops.VecDot(x, x, s)).Push(ops.ScalarMult(s, s, f))
	seed := 0.7
	f.BValue()[0] = seed
	stack.HProduct()

	xx := floats.Dot(x.Value(), x.Value())
	xp := floats.Dot(x.Value(), x.PValue())
	assert.InDelta(t, xx*xx, f.Value()[0], 1e-14)

	for i := range x.Value() {
		grad := seed * 4 * xx * x.Value()[i]
		hvp := seed * (4*xx*x.PValue()[i] + 8*x.Value()[i]*xp)
		assert.InDelta(t, grad, x.BValue()[i], 1e-13)
		assert.InDelta(t, hvp, x.HValue()[i], 1e-13)
	}
}

// TestHessianVector_ComplexStep differentiates the reverse sweep of
// s = ‖A·x‖ with a complex step and compares with the mixed sweep.
func TestHessianVector_ComplexStep(t *testing.T) {
	const h = 1e-30
	rng := rand.New(rand.NewSource(22))
	a := make([]float64, 9)
	xv := make([]float64, 3)
	pa := make([]float64, 9)
	px := make([]float64, 3)
	for _, s := range [][]float64{a, xv, pa, px} {
		fill(rng, s)
	}

	// Mixed sweep in real arithmetic.
	A := tensor.NewA2DObj[float64](tensor.MatShape(3, 3))
	x := tensor.NewA2DObj[float64](tensor.VecShape(3))
	y := tensor.NewA2DObj[float64](tensor.VecShape(3))
	s := tensor.NewA2DObj[float64](tensor.ScalarShape())
	copy(A.Value(), a)
	copy(x.Value(), xv)
	copy(A.PValue(), pa)
	copy(x.PValue(), px)
	stack := autodiff.MakeStack(
		ops.MatVecMult(kernel.Normal, A, x, y),
		ops.VecNorm(y, s),
	)
	s.BValue()[0] = 1
	stack.HProduct()

	// Reverse sweep at (A, x) + ih·(pA, px).
	Ac := tensor.NewADObj[complex128](tensor.MatShape(3, 3))
	xc := tensor.NewADObj[complex128](tensor.VecShape(3))
	yc := tensor.NewADObj[complex128](tensor.VecShape(3))
	sc := tensor.NewADObj[complex128](tensor.ScalarShape())
	for i := range a {
		Ac.Value()[i] = complex(a[i], h*pa[i])
	}
	for i := range xv {
		xc.Value()[i] = complex(xv[i], h*px[i])
	}
	cstack := autodiff.MakeStack(
		ops.MatVecMult(kernel.Normal, Ac, xc, yc),
		ops.VecNorm(yc, sc),
	)
	sc.BValue()[0] = 1
	cstack.Reverse()

	for i := range a {
		assert.InDelta(t, real(Ac.BValue()[i]), A.BValue()[i], 1e-13)
		assert.InEpsilon(t, imag(Ac.BValue()[i])/h, A.HValue()[i], 1e-10, "A.h[%d]", i)
	}
	for i := range xv {
		assert.InEpsilon(t, imag(xc.BValue()[i])/h, x.HValue()[i], 1e-10, "x.h[%d]", i)
	}
}

// TestHessianVector_Symmetric checks uᵀ·H·v = vᵀ·H·u for a composite energy.
func TestHessianVector_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	E := tensor.NewA2DObj[float64](tensor.MatShape(3, 3))
	fill(rng, E.Value())

	hvp := func(dir []float64) []float64 {
		A := tensor.NewA2DObj[float64](tensor.MatShape(3, 3))
		C := tensor.NewA2DObj[float64](tensor.MatShape(3, 3))
		w := tensor.NewA2DObj[float64](tensor.ScalarShape())
		tr := tensor.NewA2DObj[float64](tensor.ScalarShape())
		e := tensor.NewA2DObj[float64](tensor.ScalarShape())
		copy(A.Value(), E.Value())
		copy(A.PValue(), dir)
		stack := autodiff.MakeStack(
			ops.MatMatMult(kernel.Transpose, kernel.Normal, A, A, C),
			ops.MatDot(C, C, w),
			ops.MatTrace(C, tr),
			ops.ScalarSum(1, w, 0.5, tr, e),
		)
		e.BValue()[0] = 1
		stack.HProduct()
		return append([]float64(nil), A.HValue()...)
	}

	u := make([]float64, 9)
	v := make([]float64, 9)
	fill(rng, u)
	fill(rng, v)
	assert.InEpsilon(t, floats.Dot(u, hvp(v)), floats.Dot(v, hvp(u)), 1e-12)
}
