package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

func scalar(order tensor.Order, v float64) tensor.Obj[float64] {
	var o tensor.Obj[float64]
	switch order {
	case tensor.OrderNone:
		o = tensor.NewValue[float64](tensor.ScalarShape())
	case tensor.OrderFirst:
		o = tensor.NewADObj[float64](tensor.ScalarShape())
	default:
		o = tensor.NewA2DObj[float64](tensor.ScalarShape())
	}
	o.Value()[0] = v
	return o
}

func TestActivityResolution(t *testing.T) {
	tests := []struct {
		name string
		a, b tensor.Order
		want Activity
	}{
		{"both passive", tensor.OrderNone, tensor.OrderNone, ActiveNone},
		{"left active", tensor.OrderSecond, tensor.OrderNone, ActiveLeft},
		{"right active", tensor.OrderNone, tensor.OrderSecond, ActiveRight},
		{"both active", tensor.OrderSecond, tensor.OrderSecond, ActiveBoth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ScalarMult(scalar(tt.a, 2), scalar(tt.b, 3), scalar(tensor.OrderSecond, 0))
			assert.Equal(t, tt.want, n.Activity())
			assert.Equal(t, tensor.OrderSecond, n.Order())
			assert.Equal(t, "ScalarMult", n.Name())
		})
	}

	assert.Equal(t, "none", ActiveNone.String())
	assert.Equal(t, "both", ActiveBoth.String())
}

func TestBind_Panics(t *testing.T) {
	// Active input into passive output.
	assert.Panics(t, func() {
		ScalarMult(scalar(tensor.OrderFirst, 1), scalar(tensor.OrderNone, 1), scalar(tensor.OrderNone, 0))
	})
	// First-order input into second-order output.
	assert.Panics(t, func() {
		ScalarExp(scalar(tensor.OrderFirst, 1), scalar(tensor.OrderSecond, 0))
	})
	// Passive inputs into any output are fine.
	assert.NotPanics(t, func() {
		ScalarExp(scalar(tensor.OrderNone, 1), scalar(tensor.OrderSecond, 0))
	})
}

func TestScalarMult_Square(t *testing.T) {
	a := scalar(tensor.OrderSecond, 3)
	c := scalar(tensor.OrderSecond, 0)
	n := ScalarMult(a, a, c)
	n.Eval()
	require.Equal(t, 9.0, c.Value()[0])

	a.PValue()[0] = 1
	n.HForward()
	assert.Equal(t, 6.0, c.PValue()[0])

	c.BValue()[0] = 1
	n.Reverse()
	n.HReverse()
	assert.Equal(t, 6.0, a.BValue()[0])
	assert.Equal(t, 2.0, a.HValue()[0])
}

func TestScalarSqrt_Derivatives(t *testing.T) {
	a := scalar(tensor.OrderSecond, 4)
	c := scalar(tensor.OrderSecond, 0)
	n := ScalarSqrt(a, c)
	n.Eval()
	assert.Equal(t, 2.0, c.Value()[0])

	a.PValue()[0] = 1
	c.BValue()[0] = 1
	c.HValue()[0] = 0.5
	n.Reverse()
	n.HForward()
	n.HReverse()

	// f' = 1/4, f'' = -1/32.
	assert.InDelta(t, 0.25, a.BValue()[0], 1e-15)
	assert.InDelta(t, 0.25, c.PValue()[0], 1e-15)
	assert.InDelta(t, 0.25*0.5-1.0/32, a.HValue()[0], 1e-15)
}

func TestScalarExp_Complex(t *testing.T) {
	a := tensor.NewADObj[complex128](tensor.ScalarShape())
	c := tensor.NewADObj[complex128](tensor.ScalarShape())
	a.Value()[0] = complex(1, 1e-30)
	n := ScalarExp[complex128](a, c)
	n.Eval()
	assert.InDelta(t, math.E, real(c.Value()[0]), 1e-14)
	assert.InDelta(t, math.E, imag(c.Value()[0])/1e-30, 1e-14)
}

func TestVecNorm_Gradient(t *testing.T) {
	x := tensor.NewADObj[float64](tensor.VecShape(2))
	s := scalar(tensor.OrderFirst, 0)
	copy(x.Value(), []float64{3, 4})
	n := VecNorm(x, s)
	n.Eval()
	assert.Equal(t, 5.0, s.Value()[0])

	s.BValue()[0] = 1
	n.Reverse()
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, x.BValue(), 1e-15)
}

func TestMatMatMult_ShapeMismatch(t *testing.T) {
	a := tensor.NewValue[float64](tensor.MatShape(2, 3))
	b := tensor.NewValue[float64](tensor.MatShape(2, 3))
	c := tensor.NewValue[float64](tensor.MatShape(2, 2))
	assert.Panics(t, func() { MatMatMult[float64](kernel.Normal, kernel.Normal, a, b, c) })
	assert.NotPanics(t, func() { MatMatMult[float64](kernel.Normal, kernel.Transpose, a, b, c) })
	assert.Equal(t, "MatMatMult<N,T>", MatMatMult[float64](kernel.Normal, kernel.Transpose, a, b, c).Name())
}

func TestScalarFunctions_Derivatives(t *testing.T) {
	tests := []struct {
		name  string
		build func(a, c tensor.Obj[float64]) *ScalarFuncExpr[float64]
		a     float64
		f, df float64
		d2f   float64
	}{
		{"log", ScalarLog[float64], 2, math.Ln2, 0.5, -0.25},
		{"sin", ScalarSin[float64], 0.3, math.Sin(0.3), math.Cos(0.3), -math.Sin(0.3)},
		{"cos", ScalarCos[float64], 0.3, math.Cos(0.3), -math.Sin(0.3), -math.Cos(0.3)},
		{"rsqrt", ScalarRsqrt[float64], 4, 0.5, -1.0 / 16, 3.0 / 128},
		{"tanh", ScalarTanh[float64], 0.5, math.Tanh(0.5),
			1 - math.Pow(math.Tanh(0.5), 2), -2 * math.Tanh(0.5) * (1 - math.Pow(math.Tanh(0.5), 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := scalar(tensor.OrderSecond, tt.a)
			c := scalar(tensor.OrderSecond, 0)
			n := tt.build(a, c)
			n.Eval()
			assert.InDelta(t, tt.f, c.Value()[0], 1e-15)

			a.PValue()[0] = 1
			c.BValue()[0] = 1
			n.Reverse()
			n.HForward()
			n.HReverse()
			assert.InDelta(t, tt.df, a.BValue()[0], 1e-15)
			assert.InDelta(t, tt.df, c.PValue()[0], 1e-15)
			assert.InDelta(t, tt.d2f, a.HValue()[0], 1e-15)
		})
	}
}

func TestScalarDiv_Derivatives(t *testing.T) {
	a := scalar(tensor.OrderSecond, 3)
	b := scalar(tensor.OrderSecond, 2)
	c := scalar(tensor.OrderSecond, 0)
	n := ScalarDiv(a, b, c)
	require.Equal(t, ActiveBoth, n.Activity())
	n.Eval()
	assert.Equal(t, 1.5, c.Value()[0])

	// Direction (pa, pb) = (1, 1): ∇c = (1/2, −3/4),
	// ∇²c = [[0, −1/4], [−1/4, 3/4]].
	a.PValue()[0], b.PValue()[0] = 1, 1
	c.BValue()[0] = 1
	n.Reverse()
	n.HForward()
	n.HReverse()
	assert.InDelta(t, 0.5, a.BValue()[0], 1e-15)
	assert.InDelta(t, -0.75, b.BValue()[0], 1e-15)
	assert.InDelta(t, -0.25, c.PValue()[0], 1e-15)
	assert.InDelta(t, -0.25, a.HValue()[0], 1e-15)
	assert.InDelta(t, 0.5, b.HValue()[0], 1e-15)
}

func TestVecOuter(t *testing.T) {
	x := tensor.NewA2DObj[float64](tensor.VecShape(2))
	y := tensor.NewA2DObj[float64](tensor.VecShape(3))
	A := tensor.NewA2DObj[float64](tensor.MatShape(2, 3))
	copy(x.Value(), []float64{1, 2})
	copy(y.Value(), []float64{3, 4, 5})

	n := VecOuter[float64](2, x, y, A)
	n.Eval()
	assert.Equal(t, []float64{6, 8, 10, 12, 16, 20}, A.Value())

	copy(x.BValue(), []float64{1, 0})
	n.Forward()
	assert.Equal(t, []float64{6, 8, 10, 0, 0, 0}, A.BValue())

	x.ZeroDerivs()
	A.ZeroDerivs()
	copy(A.BValue(), []float64{1, 0, 0, 0, 0, 1})
	n.Reverse()
	assert.Equal(t, []float64{6, 10}, x.BValue())
	assert.Equal(t, []float64{2, 0, 4}, y.BValue())

	assert.Panics(t, func() {
		VecOuter[float64](1, x, y, tensor.NewA2DObj[float64](tensor.MatShape(3, 2)))
	})
}
