package elasticity

import (
	"github.com/born-ml/a2d/internal/dual"
)

// NumDesignVars is the number of material design variables, (μ, λ).
const NumDesignVars = 2

// designScalar carries the μ and λ directions.
type designScalar = dual.Scalar[float64, [NumDesignVars]float64]

// DesignVars returns (μ, λ).
func (m Material) DesignVars() [NumDesignVars]float64 {
	return [NumDesignVars]float64{m.Mu, m.Lambda}
}

// ResidualDerivs returns ∂R/∂μ and ∂R/∂λ at ∇u.
func (m Material) ResidualDerivs(ux [Size]float64) [NumDesignVars][Size]float64 {
	var out [NumDesignVars][Size]float64
	for i, r := range m.designResidual(ux) {
		for k := range out {
			out[k][i] = r.Deriv[k]
		}
	}
	return out
}

// AdjointDfdx returns ψᵀ·∂R/∂(μ, λ) at ∇u.
func (m Material) AdjointDfdx(ux, psi [Size]float64) [NumDesignVars]float64 {
	var dfdx [NumDesignVars]float64
	for i, r := range m.designResidual(ux) {
		for k := range dfdx {
			dfdx[k] += psi[i] * r.Deriv[k]
		}
	}
	return dfdx
}

// designResidual evaluates the residual P = F·S with S = 2μE + λ·tr(E)·I,
// carrying derivatives with respect to μ and λ. The kinematics do not
// depend on the material and stay in plain floats.
func (m Material) designResidual(ux [Size]float64) [Size]designScalar {
	mu := dual.Var[float64, [NumDesignVars]float64](m.Mu, 0)
	lambda := dual.Var[float64, [NumDesignVars]float64](m.Lambda, 1)

	var F, E [Size]float64
	copy(F[:], ux[:])
	for i := 0; i < Dim; i++ {
		F[i*Dim+i]++
	}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			var c float64
			for k := 0; k < Dim; k++ {
				c += F[k*Dim+i] * F[k*Dim+j]
			}
			if i == j {
				c--
			}
			E[i*Dim+j] = 0.5 * c
		}
	}
	trE := E[0] + E[4] + E[8]

	var S [Size]designScalar
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			s := mu.MulConst(2 * E[i*Dim+j])
			if i == j {
				s = s.Add(lambda.MulConst(trE))
			}
			S[i*Dim+j] = s
		}
	}

	var P [Size]designScalar
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			p := dual.Const[float64, [NumDesignVars]float64](0)
			for k := 0; k < Dim; k++ {
				p = p.Add(S[k*Dim+j].MulConst(F[i*Dim+k]))
			}
			P[i*Dim+j] = p
		}
	}
	return P
}
