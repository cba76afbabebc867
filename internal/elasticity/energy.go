// Package elasticity evaluates a St. Venant–Kirchhoff strain energy density
// and its first and second derivatives with the differentiation stack.
//
// For a displacement gradient ∇u (3×3, row-major):
//
//	F = I + ∇u
//	E = ½(FᵀF − I)
//	W = μ·E:E + ½λ·(tr E)²
//
// Residual is ∂W/∂∇u (one reverse sweep), JacobianProduct is ∂²W/∂∇u²·d
// (one mixed sweep) and Jacobian assembles the 9×9 tangent column by column.
package elasticity

import (
	"github.com/born-ml/a2d/internal/autodiff"
	"github.com/born-ml/a2d/internal/autodiff/ops"
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/selfcheck"
	"github.com/born-ml/a2d/internal/tensor"
)

// Dim is the spatial dimension.
const Dim = 3

// Size is the number of entries of a displacement gradient.
const Size = Dim * Dim

// Material holds the Lamé parameters.
type Material struct {
	Mu     float64
	Lambda float64
}

// compose builds the energy graph from ux to w. Intermediates come from
// newObj so every one carries the slots of the requested tier.
func compose[T tensor.Number](m Material, newObj func(tensor.Shape) tensor.Obj[T], ux, w tensor.Obj[T]) []ops.Node {
	m3 := tensor.MatShape(Dim, Dim)
	scalar := tensor.ScalarShape()

	var eye tensor.Obj[T] = tensor.NewValue[T](m3)
	kernel.AddDiag(Dim, 1, eye.Value())

	F, C, E := newObj(m3), newObj(m3), newObj(m3)
	ee, tr, tr2 := newObj(scalar), newObj(scalar), newObj(scalar)

	mu := tensor.FromParts[T](m.Mu, 0)
	halfLambda := tensor.FromParts[T](0.5*m.Lambda, 0)

	return []ops.Node{
		ops.MatSum(1, ux, 1, eye, F),
		ops.MatMatMult(kernel.Transpose, kernel.Normal, F, F, C),
		ops.MatSum(0.5, C, -0.5, eye, E),
		ops.MatDot(E, E, ee),
		ops.MatTrace(E, tr),
		ops.ScalarMult(tr, tr, tr2),
		ops.ScalarSum(mu, ee, halfLambda, tr2, w),
	}
}

// Energy returns W(∇u).
func (m Material) Energy(ux [Size]float64) float64 {
	in := tensor.NewValue[float64](tensor.MatShape(Dim, Dim))
	w := tensor.NewValue[float64](tensor.ScalarShape())
	copy(in.Value(), ux[:])
	autodiff.MakeStack(compose[float64](m, newValue[float64], in, w)...)
	return w.Value()[0]
}

// Residual returns ∂W/∂∇u.
func (m Material) Residual(ux [Size]float64) [Size]float64 {
	in := tensor.NewADObj[float64](tensor.MatShape(Dim, Dim))
	w := tensor.NewADObj[float64](tensor.ScalarShape())
	copy(in.Value(), ux[:])

	stack := autodiff.MakeStack(compose[float64](m, newADObj[float64], in, w)...)
	w.BValue()[0] = 1
	stack.Reverse()

	var res [Size]float64
	copy(res[:], in.BValue())
	return res
}

// JacobianProduct returns ∂²W/∂∇u²·dir.
func (m Material) JacobianProduct(ux, dir [Size]float64) [Size]float64 {
	in := tensor.NewA2DObj[float64](tensor.MatShape(Dim, Dim))
	w := tensor.NewA2DObj[float64](tensor.ScalarShape())
	copy(in.Value(), ux[:])
	copy(in.PValue(), dir[:])

	stack := autodiff.MakeStack(compose[float64](m, newA2DObj[float64], in, w)...)
	w.BValue()[0] = 1
	stack.HProduct()

	var jp [Size]float64
	copy(jp[:], in.HValue())
	return jp
}

// Jacobian returns the row-major 9×9 matrix ∂²W/∂∇u², one mixed sweep
// per column.
func (m Material) Jacobian(ux [Size]float64) [Size * Size]float64 {
	var jac [Size * Size]float64
	for k := 0; k < Size; k++ {
		var dir [Size]float64
		dir[k] = 1
		col := m.JacobianProduct(ux, dir)
		for i, v := range col {
			jac[i*Size+k] = v
		}
	}
	return jac
}

// CheckCase exposes the energy to the derivative self-check harness.
func (m Material) CheckCase() selfcheck.Case {
	return selfcheck.NewStackCase("StVenantKirchhoff",
		[]tensor.Shape{tensor.MatShape(Dim, Dim)}, tensor.ScalarShape(),
		func(newObj selfcheck.Factory, in []selfcheck.Obj, out selfcheck.Obj) []ops.Node {
			return compose[complex128](m, newObj, in[0], out)
		})
}

func newValue[T tensor.Number](s tensor.Shape) tensor.Obj[T] {
	return tensor.NewValue[T](s)
}

func newADObj[T tensor.Number](s tensor.Shape) tensor.Obj[T] {
	return tensor.NewADObj[T](s)
}

func newA2DObj[T tensor.Number](s tensor.Shape) tensor.Obj[T] {
	return tensor.NewA2DObj[T](s)
}
