package dual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/a2d/dual"
)

func TestPartialDerivatives(t *testing.T) {
	x := dual.Var[float64, [2]float64](1.5, 0)
	y := dual.Var[float64, [2]float64](0.5, 1)
	f := dual.Exp(x.Mul(y))

	e := math.Exp(0.75)
	assert.InDelta(t, e, f.Value, 1e-15)
	assert.InDelta(t, 0.5*e, f.Deriv[0], 1e-15)
	assert.InDelta(t, 1.5*e, f.Deriv[1], 1e-15)
}

func TestConstHasNoTangents(t *testing.T) {
	c := dual.Const[float32, [3]float32](2)
	assert.Equal(t, [3]float32{}, dual.Sqrt(c).Deriv)
}
