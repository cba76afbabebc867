package elasticity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/a2d/internal/parallel"
	"github.com/born-ml/a2d/internal/selfcheck"
)

var steel = Material{Mu: 0.8, Lambda: 1.2}

func randGrad(rng *rand.Rand, scale float64) [Size]float64 {
	var ux [Size]float64
	for i := range ux {
		ux[i] = scale * (rng.Float64()*2 - 1)
	}
	return ux
}

func TestEnergy_Undeformed(t *testing.T) {
	var zero [Size]float64
	assert.Equal(t, 0.0, steel.Energy(zero))
	assert.Equal(t, zero, steel.Residual(zero))
}

func TestEnergy_UniformStretch(t *testing.T) {
	// ∇u = s·I gives E = ((1+s)² − 1)/2·I.
	s := 0.1
	var ux [Size]float64
	ux[0], ux[4], ux[8] = s, s, s
	e := ((1+s)*(1+s) - 1) / 2
	want := steel.Mu*3*e*e + 0.5*steel.Lambda*9*e*e
	assert.InDelta(t, want, steel.Energy(ux), 1e-15)
}

func TestJacobian_Linearized(t *testing.T) {
	// At ∇u = 0 the tangent is μ(δik·δjl + δil·δjk) + λ·δij·δkl.
	var zero [Size]float64
	jac := steel.Jacobian(zero)
	delta := func(a, b int) float64 {
		if a == b {
			return 1
		}
		return 0
	}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			for k := 0; k < Dim; k++ {
				for l := 0; l < Dim; l++ {
					want := steel.Mu*(delta(i, k)*delta(j, l)+delta(i, l)*delta(j, k)) +
						steel.Lambda*delta(i, j)*delta(k, l)
					got := jac[(i*Dim+j)*Size+k*Dim+l]
					assert.InDelta(t, want, got, 1e-14, "C[%d%d%d%d]", i, j, k, l)
				}
			}
		}
	}
}

func TestResidual_MatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	ux := randGrad(rng, 0.3)

	want := fd.Gradient(nil, func(x []float64) float64 {
		var g [Size]float64
		copy(g[:], x)
		return steel.Energy(g)
	}, ux[:], &fd.Settings{Formula: fd.Central, Step: 1e-6})

	got := steel.Residual(ux)
	assert.InDeltaSlice(t, want, got[:], 1e-7)
}

func TestJacobian_MatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	ux := randGrad(rng, 0.3)

	want := mat.NewDense(Size, Size, nil)
	fd.Jacobian(want, func(y, x []float64) {
		var g [Size]float64
		copy(g[:], x)
		r := steel.Residual(g)
		copy(y, r[:])
	}, ux[:], &fd.JacobianSettings{Formula: fd.Central, Step: 1e-6})

	jac := steel.Jacobian(ux)
	got := mat.NewDense(Size, Size, jac[:])
	assert.True(t, mat.EqualApprox(want, got, 1e-6), "fd:\n%v\nad:\n%v",
		mat.Formatted(want), mat.Formatted(got))
	assert.True(t, mat.EqualApprox(got, got.T(), 1e-13), "tangent must be symmetric")
}

func TestCheckCase(t *testing.T) {
	r := selfcheck.Run(steel.CheckCase(), selfcheck.DefaultOptions())
	assert.True(t, r.Passed, r.String())
}

func TestNewModel_Errors(t *testing.T) {
	_, err := NewModel(steel, make([]float64, 10), []float64{1}, parallel.Sequential())
	assert.ErrorContains(t, err, "want 9")

	_, err = NewModel(steel, make([]float64, 9), []float64{-1}, parallel.Sequential())
	assert.ErrorContains(t, err, "negative weight")
}

func TestModel_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(33))
	const n = 64
	grads := make([]float64, 0, n*Size)
	weights := make([]float64, n)
	for e := 0; e < n; e++ {
		g := randGrad(rng, 0.2)
		grads = append(grads, g[:]...)
		weights[e] = rng.Float64()
	}

	seq, err := NewModel(steel, grads, weights, parallel.Sequential())
	require.NoError(t, err)
	par, err := NewModel(steel, grads, weights, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4})
	require.NoError(t, err)
	require.Equal(t, n, par.NumElements())

	assert.InDelta(t, seq.Energy(), par.Energy(), 1e-12)
	assert.Equal(t, seq.Residuals(), par.Residuals())
	assert.Equal(t, seq.Jacobians(), par.Jacobians())

	// Element 3 alone.
	var g3 [Size]float64
	copy(g3[:], grads[3*Size:])
	r3 := steel.Residual(g3)
	for i := range r3 {
		assert.InDelta(t, weights[3]*r3[i], par.Residuals()[3][i], 1e-15)
	}
}
