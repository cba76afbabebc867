package dual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/diff/fd"
)

type d1 = Scalar[float64, [1]float64]

func TestSqrtScenario(t *testing.T) {
	// f(x) = sqrt(x² + 1) at x = 2.
	x := New(2.0, [1]float64{1})
	f := Sqrt(x.Mul(x).AddConst(1))

	assert.InDelta(t, 2.2360679774997896, f.Value, 1e-15)
	assert.InDelta(t, 0.8944271909999159, f.Deriv[0], 1e-15)
}

func TestUnaryRules(t *testing.T) {
	tests := []struct {
		name string
		ad   func(d1) d1
		f    func(float64) float64
		x    float64
	}{
		{"sqrt", Sqrt[float64, [1]float64], math.Sqrt, 1.7},
		{"exp", Exp[float64, [1]float64], math.Exp, 0.3},
		{"log", Log[float64, [1]float64], math.Log, 2.5},
		{"sin", Sin[float64, [1]float64], math.Sin, 0.9},
		{"cos", Cos[float64, [1]float64], math.Cos, 0.9},
		{"abs+", Abs[float64, [1]float64], math.Abs, 0.4},
		{"abs-", Abs[float64, [1]float64], math.Abs, -0.4},
		{"pow", func(s d1) d1 { return Pow(s, 2.5) }, func(v float64) float64 { return math.Pow(v, 2.5) }, 1.3},
		{"neg", d1.Neg, func(v float64) float64 { return -v }, 0.8},
		{"constsub", func(s d1) d1 { return ConstSub(3, s) }, func(v float64) float64 { return 3 - v }, 0.8},
		{"constdiv", func(s d1) d1 { return ConstDiv(3, s) }, func(v float64) float64 { return 3 / v }, 0.8},
		{"mulconst", func(s d1) d1 { return s.MulConst(-2) }, func(v float64) float64 { return -2 * v }, 0.8},
		{"divconst", func(s d1) d1 { return s.DivConst(4) }, func(v float64) float64 { return v / 4 }, 0.8},
		{"subconst", func(s d1) d1 { return s.SubConst(4) }, func(v float64) float64 { return v - 4 }, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ad(Var[float64, [1]float64](tt.x, 0))
			want := fd.Derivative(tt.f, tt.x, &fd.Settings{Formula: fd.Central, Step: 1e-6})

			assert.InDelta(t, tt.f(tt.x), got.Value, 1e-14)
			assert.InDelta(t, want, got.Deriv[0], 1e-7)
		})
	}
}

func TestBinaryRules_MultipleDirections(t *testing.T) {
	// Two inputs, one tangent direction each.
	x := Var[float64, [2]float64](1.5, 0)
	y := Var[float64, [2]float64](-0.7, 1)

	tests := []struct {
		name   string
		got    Scalar[float64, [2]float64]
		value  float64
		dx, dy float64
	}{
		{"add", x.Add(y), 0.8, 1, 1},
		{"sub", x.Sub(y), 2.2, 1, -1},
		{"mul", x.Mul(y), -1.05, -0.7, 1.5},
		{"div", x.Div(y), 1.5 / -0.7, 1 / -0.7, -1.5 / (0.7 * 0.7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.value, tt.got.Value, 1e-14)
			assert.InDelta(t, tt.dx, tt.got.Deriv[0], 1e-14)
			assert.InDelta(t, tt.dy, tt.got.Deriv[1], 1e-14)
		})
	}
}

func TestComparisons(t *testing.T) {
	a := New(1.0, [3]float64{9, 9, 9})
	b := Const[float64, [3]float64](2.0)

	assert.True(t, a.Less(b))
	assert.True(t, a.LessEq(b))
	assert.False(t, a.Greater(b))
	assert.False(t, a.GreaterEq(b))
	assert.True(t, a.LessEq(Const[float64, [3]float64](1)))
	assert.True(t, a.LessConst(1.5))
	assert.True(t, b.GreaterConst(1.5))

	// Boundary: only the non-strict variants accept equality.
	assert.False(t, a.LessConst(1))
	assert.True(t, a.LessEqConst(1))
	assert.False(t, b.GreaterConst(2))
	assert.True(t, b.GreaterEqConst(2))
	assert.False(t, b.LessEqConst(1.5))
	assert.False(t, a.GreaterEqConst(1.5))
}

func TestFloat32(t *testing.T) {
	x := Var[float32, [1]float32](4, 0)
	f := Sqrt(x)
	assert.InDelta(t, float32(2), f.Value, 1e-6)
	assert.InDelta(t, float32(0.25), f.Deriv[0], 1e-6)
}

func TestConstHasNoTangent(t *testing.T) {
	c := Const[float64, [4]float64](3)
	assert.Equal(t, [4]float64{}, c.Deriv)

	x := Var[float64, [4]float64](2, 2)
	f := Exp(x.Mul(c))
	assert.InDelta(t, 3*math.Exp(6), f.Deriv[2], 1e-9)
	assert.Zero(t, f.Deriv[0])
}
