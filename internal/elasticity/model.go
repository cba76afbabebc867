package elasticity

import (
	"fmt"

	"github.com/born-ml/a2d/internal/parallel"
)

// Model holds one displacement gradient and quadrature weight per element
// and evaluates element-local contributions.
//
// Every element runs its own differentiation episode with private operands,
// so elements are evaluated concurrently under cfg. Scattering the local
// results into global storage is left to the assembly layer.
type Model struct {
	material Material
	grads    [][Size]float64
	weights  []float64
	cfg      parallel.Config
}

// NewModel creates a model from row-major displacement gradients
// (Size entries per element) and one weight per element.
func NewModel(m Material, grads, weights []float64, cfg parallel.Config) (*Model, error) {
	if len(grads) != Size*len(weights) {
		return nil, fmt.Errorf("displacement gradients: got %d values for %d elements, want %d",
			len(grads), len(weights), Size*len(weights))
	}
	for e, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("element %d: negative weight %g", e, w)
		}
	}

	model := &Model{
		material: m,
		grads:    make([][Size]float64, len(weights)),
		weights:  append([]float64(nil), weights...),
		cfg:      cfg,
	}
	for e := range model.grads {
		copy(model.grads[e][:], grads[e*Size:])
	}
	return model, nil
}

// NumElements returns the number of elements.
func (m *Model) NumElements() int {
	return len(m.weights)
}

// Energy returns Σₑ wₑ·W(∇uₑ).
func (m *Model) Energy() float64 {
	energies := make([]float64, len(m.weights))
	parallel.For(len(energies), func(e int) {
		energies[e] = m.weights[e] * m.material.Energy(m.grads[e])
	}, m.cfg)

	var total float64
	for _, v := range energies {
		total += v
	}
	return total
}

// Residuals returns wₑ·∂W/∂∇u for every element.
func (m *Model) Residuals() [][Size]float64 {
	res := make([][Size]float64, len(m.weights))
	parallel.For(len(res), func(e int) {
		r := m.material.Residual(m.grads[e])
		for i := range r {
			res[e][i] = m.weights[e] * r[i]
		}
	}, m.cfg)
	return res
}

// DesignVars returns the current material design variables (μ, λ).
func (m *Model) DesignVars() [NumDesignVars]float64 {
	return m.material.DesignVars()
}

// SetDesignVars replaces the material design variables (μ, λ). It must not
// run concurrently with an evaluation.
func (m *Model) SetDesignVars(x [NumDesignVars]float64) {
	m.material = Material{Mu: x[0], Lambda: x[1]}
}

// AdjointDfdx returns Σₑ wₑ·ψₑᵀ·∂Rₑ/∂(μ, λ) for one adjoint vector per element.
func (m *Model) AdjointDfdx(psi [][Size]float64) ([NumDesignVars]float64, error) {
	var dfdx [NumDesignVars]float64
	if len(psi) != len(m.weights) {
		return dfdx, fmt.Errorf("adjoint: got %d element vectors, want %d", len(psi), len(m.weights))
	}

	contrib := make([][NumDesignVars]float64, len(m.weights))
	parallel.For(len(contrib), func(e int) {
		d := m.material.AdjointDfdx(m.grads[e], psi[e])
		for k := range d {
			contrib[e][k] = m.weights[e] * d[k]
		}
	}, m.cfg)

	for _, d := range contrib {
		for k := range dfdx {
			dfdx[k] += d[k]
		}
	}
	return dfdx, nil
}

// Jacobians returns wₑ·∂²W/∂∇u² (row-major 9×9) for every element.
func (m *Model) Jacobians() [][Size * Size]float64 {
	jacs := make([][Size * Size]float64, len(m.weights))
	parallel.For(len(jacs), func(e int) {
		j := m.material.Jacobian(m.grads[e])
		for i := range j {
			jacs[e][i] = m.weights[e] * j[i]
		}
	}, m.cfg)
	return jacs
}
