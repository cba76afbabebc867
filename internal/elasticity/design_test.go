package elasticity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/a2d/internal/parallel"
)

func TestDesignResidual_MatchesStack(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	ux := randGrad(rng, 0.3)

	want := steel.Residual(ux)
	for i, r := range steel.designResidual(ux) {
		assert.InDelta(t, want[i], r.Value, 1e-13, "R[%d]", i)
	}
}

func TestResidualDerivs_MatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ux := randGrad(rng, 0.3)
	derivs := steel.ResidualDerivs(ux)

	for i := 0; i < Size; i++ {
		want := fd.Gradient(nil, func(x []float64) float64 {
			return Material{Mu: x[0], Lambda: x[1]}.Residual(ux)[i]
		}, []float64{steel.Mu, steel.Lambda}, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		assert.InDelta(t, want[0], derivs[0][i], 1e-8, "∂R[%d]/∂μ", i)
		assert.InDelta(t, want[1], derivs[1][i], 1e-8, "∂R[%d]/∂λ", i)
	}
}

func TestAdjointDfdx_MatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	ux := randGrad(rng, 0.3)
	psi := randGrad(rng, 1)

	want := fd.Gradient(nil, func(x []float64) float64 {
		r := Material{Mu: x[0], Lambda: x[1]}.Residual(ux)
		var f float64
		for i := range r {
			f += psi[i] * r[i]
		}
		return f
	}, []float64{steel.Mu, steel.Lambda}, &fd.Settings{Formula: fd.Central, Step: 1e-6})

	got := steel.AdjointDfdx(ux, psi)
	assert.InDeltaSlice(t, want, got[:], 1e-8)
}

func TestModel_AdjointDfdx(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	const n = 40
	grads := make([]float64, 0, n*Size)
	weights := make([]float64, n)
	psi := make([][Size]float64, n)
	for e := 0; e < n; e++ {
		g := randGrad(rng, 0.2)
		grads = append(grads, g[:]...)
		weights[e] = rng.Float64()
		psi[e] = randGrad(rng, 1)
	}

	model, err := NewModel(steel, grads, weights, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2})
	require.NoError(t, err)
	assert.Equal(t, [NumDesignVars]float64{steel.Mu, steel.Lambda}, model.DesignVars())

	got, err := model.AdjointDfdx(psi)
	require.NoError(t, err)

	// Finite differences of Σₑ ψₑ·Rₑ through the design variables.
	want := fd.Gradient(nil, func(x []float64) float64 {
		model.SetDesignVars([NumDesignVars]float64{x[0], x[1]})
		var f float64
		for e, r := range model.Residuals() {
			for i := range r {
				f += psi[e][i] * r[i]
			}
		}
		return f
	}, []float64{steel.Mu, steel.Lambda}, &fd.Settings{Formula: fd.Central, Step: 1e-6})
	model.SetDesignVars(steel.DesignVars())

	assert.InDeltaSlice(t, want, got[:], 1e-7)

	_, err = model.AdjointDfdx(psi[:n-1])
	assert.ErrorContains(t, err, "want 40")
}
