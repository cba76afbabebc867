package selfcheck

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/a2d/internal/autodiff"
	"github.com/born-ml/a2d/internal/autodiff/ops"
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// Obj is the operand type cases are evaluated with.
type Obj = tensor.Obj[complex128]

// Factory creates operands of the tier a check needs: passive for Eval,
// first order for Deriv, second order for HProd.
type Factory func(shape tensor.Shape) Obj

// Composition builds the nodes of a case. Intermediates must come from
// newObj so they carry the slots of the current tier.
type Composition func(newObj Factory, in []Obj, out Obj) []ops.Node

// StackCase adapts a composition of nodes to the Case interface.
type StackCase struct {
	name    string
	inputs  []tensor.Shape
	output  tensor.Shape
	compose Composition
}

// NewStackCase creates a case from input shapes, an output shape and a
// composition.
func NewStackCase(name string, inputs []tensor.Shape, output tensor.Shape, compose Composition) *StackCase {
	return &StackCase{name: name, inputs: inputs, output: output, compose: compose}
}

// Name returns the case name.
func (c *StackCase) Name() string { return c.name }

// Sizes returns the flattened input and output lengths.
func (c *StackCase) Sizes() (in, out int) {
	for _, s := range c.inputs {
		in += s.NumElements()
	}
	return in, c.output.NumElements()
}

// Eval returns f(x) using passive operands.
func (c *StackCase) Eval(x []complex128) []complex128 {
	_, out, _ := c.build(tensor.OrderNone, x)
	return append([]complex128(nil), out.Value()...)
}

// Deriv returns Jᵀ·seed from a reverse sweep.
func (c *StackCase) Deriv(seed, x []complex128) []complex128 {
	in, out, stack := c.build(tensor.OrderFirst, x)
	copy(out.BValue(), seed)
	stack.Reverse()
	return gather(in, tensor.SeedB)
}

// HProd returns Jᵀ·hval + seedᵀ·∂²f·p from a mixed sweep.
func (c *StackCase) HProd(seed, hval, x, p []complex128) []complex128 {
	in, out, stack := c.build(tensor.OrderSecond, x)
	scatter(in, tensor.SeedP, p)
	copy(out.BValue(), seed)
	copy(out.HValue(), hval)
	stack.HProduct()
	return gather(in, tensor.SeedH)
}

func (c *StackCase) build(order tensor.Order, x []complex128) ([]Obj, Obj, *autodiff.Stack) {
	newObj := factoryFor(order)
	in := make([]Obj, len(c.inputs))
	offset := 0
	for i, s := range c.inputs {
		in[i] = newObj(s)
		offset += copy(in[i].Value(), x[offset:])
	}
	out := newObj(c.output)
	return in, out, autodiff.MakeStack(c.compose(newObj, in, out)...)
}

func factoryFor(order tensor.Order) Factory {
	switch order {
	case tensor.OrderFirst:
		return func(s tensor.Shape) Obj { return tensor.NewADObj[complex128](s) }
	case tensor.OrderSecond:
		return func(s tensor.Shape) Obj { return tensor.NewA2DObj[complex128](s) }
	default:
		return func(s tensor.Shape) Obj { return tensor.NewValue[complex128](s) }
	}
}

func scatter(objs []Obj, seed tensor.Seed, src []complex128) {
	offset := 0
	for _, o := range objs {
		offset += copy(tensor.Get(o, seed), src[offset:])
	}
}

func gather(objs []Obj, seed tensor.Seed) []complex128 {
	var dst []complex128
	for _, o := range objs {
		dst = append(dst, tensor.Get(o, seed)...)
	}
	return dst
}

// Constant returns a passive operand filled with reproducible values.
// Repeated calls with the same key return the same values.
func Constant(shape tensor.Shape, key int64) Obj {
	rng := rand.New(rand.NewSource(key))
	c := tensor.NewValue[complex128](shape)
	for i := range c.Value() {
		c.Value()[i] = complex(rng.Float64()*2-1, 0)
	}
	return c
}

var (
	scalar = tensor.ScalarShape()
	vec    = tensor.VecShape
	mat    = tensor.MatShape
)

// DefaultCases returns a case per operation and active-input variant.
func DefaultCases() []Case {
	var cases []Case

	// MatVecMult in both modes; op(A)·x with A stored n×m.
	for _, dims := range [][2]int{{3, 3}, {2, 4}, {5, 3}} {
		for _, op := range []kernel.MatOp{kernel.Normal, kernel.Transpose} {
			n, m := dims[0], dims[1]
			rows, cols := op.Dims(n, m)
			cases = append(cases, NewStackCase(
				fmt.Sprintf("MatVecMult<%s,%d,%d>", op, n, m),
				[]tensor.Shape{mat(n, m), vec(cols)}, vec(rows),
				func(_ Factory, in []Obj, out Obj) []ops.Node {
					return []ops.Node{ops.MatVecMult(op, in[0], in[1], out)}
				}))
		}
	}
	cases = append(cases,
		NewStackCase("MatVecMult<N> passive A", []tensor.Shape{vec(4)}, vec(3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatVecMult(kernel.Normal, Constant(mat(3, 4), 1), in[0], out)}
			}),
		NewStackCase("MatVecMult<T> passive x", []tensor.Shape{mat(3, 4)}, vec(4),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatVecMult(kernel.Transpose, in[0], Constant(vec(3), 2), out)}
			}),
	)

	// MatMatMult: op(A) is 3×4, op(B) is 4×2.
	for _, opA := range []kernel.MatOp{kernel.Normal, kernel.Transpose} {
		for _, opB := range []kernel.MatOp{kernel.Normal, kernel.Transpose} {
			sa := mat(3, 4)
			if opA == kernel.Transpose {
				sa = mat(4, 3)
			}
			sb := mat(4, 2)
			if opB == kernel.Transpose {
				sb = mat(2, 4)
			}
			cases = append(cases, NewStackCase(
				fmt.Sprintf("MatMatMult<%s,%s>", opA, opB),
				[]tensor.Shape{sa, sb}, mat(3, 2),
				func(_ Factory, in []Obj, out Obj) []ops.Node {
					return []ops.Node{ops.MatMatMult(opA, opB, in[0], in[1], out)}
				}))
		}
	}
	cases = append(cases,
		NewStackCase("MatMatMult<T,N> passive B", []tensor.Shape{mat(3, 3)}, mat(3, 3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatMatMult(kernel.Transpose, kernel.Normal, in[0], Constant(mat(3, 3), 3), out)}
			}),
		NewStackCase("MatMatMult<T,N> AᵀA", []tensor.Shape{mat(3, 3)}, mat(3, 3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatMatMult(kernel.Transpose, kernel.Normal, in[0], in[0], out)}
			}),
	)

	cases = append(cases,
		NewStackCase("MatSum", []tensor.Shape{mat(3, 3), mat(3, 3)}, mat(3, 3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatSum(1.5, in[0], -0.5, in[1], out)}
			}),
		NewStackCase("VecSum passive y", []tensor.Shape{vec(3)}, vec(3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecSum(2, in[0], 1, Constant(vec(3), 4), out)}
			}),
		NewStackCase("ScalarSum", []tensor.Shape{scalar, scalar}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.ScalarSum(0.25, in[0], 3, in[1], out)}
			}),
		NewStackCase("MatTrace", []tensor.Shape{mat(3, 3)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatTrace(in[0], out)}
			}),
		NewStackCase("MatDot", []tensor.Shape{mat(2, 3), mat(2, 3)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatDot(in[0], in[1], out)}
			}),
		NewStackCase("MatDot E:E", []tensor.Shape{mat(3, 3)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.MatDot(in[0], in[0], out)}
			}),
		NewStackCase("VecDot", []tensor.Shape{vec(4), vec(4)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecDot(in[0], in[1], out)}
			}),
		NewStackCase("VecDot passive x", []tensor.Shape{vec(4)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecDot(Constant(vec(4), 5), in[0], out)}
			}),
		NewStackCase("VecNorm", []tensor.Shape{vec(3)}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecNorm(in[0], out)}
			}),
		NewStackCase("VecScale", []tensor.Shape{scalar, vec(3)}, vec(3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecScale(in[0], in[1], out)}
			}),
		NewStackCase("VecScale passive alpha", []tensor.Shape{vec(3)}, vec(3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecScale(Constant(scalar, 6), in[0], out)}
			}),
		NewStackCase("ScalarMult", []tensor.Shape{scalar, scalar}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.ScalarMult(in[0], in[1], out)}
			}),
		NewStackCase("ScalarMult a·a", []tensor.Shape{scalar}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.ScalarMult(in[0], in[0], out)}
			}),
		positiveCase("ScalarSqrt", ops.ScalarSqrt[complex128]),
		positiveCase("ScalarRsqrt", ops.ScalarRsqrt[complex128]),
		positiveCase("ScalarLog", ops.ScalarLog[complex128]),
		unaryCase("ScalarExp", ops.ScalarExp[complex128]),
		unaryCase("ScalarSin", ops.ScalarSin[complex128]),
		unaryCase("ScalarCos", ops.ScalarCos[complex128]),
		unaryCase("ScalarTanh", ops.ScalarTanh[complex128]),
		NewStackCase("ScalarDiv", []tensor.Shape{scalar, scalar}, scalar,
			func(newObj Factory, in []Obj, out Obj) []ops.Node {
				u := newObj(scalar)
				return []ops.Node{
					ops.ScalarSum(1, in[1], 1, shift(), u),
					ops.ScalarDiv(in[0], u, out),
				}
			}),
		NewStackCase("ScalarDiv passive a", []tensor.Shape{scalar}, scalar,
			func(newObj Factory, in []Obj, out Obj) []ops.Node {
				u := newObj(scalar)
				return []ops.Node{
					ops.ScalarSum(1, in[0], 1, shift(), u),
					ops.ScalarDiv(Constant(scalar, 7), u, out),
				}
			}),
		NewStackCase("ScalarDiv passive b", []tensor.Shape{scalar}, scalar,
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.ScalarDiv(in[0], shift(), out)}
			}),
		NewStackCase("VecOuter", []tensor.Shape{vec(3), vec(2)}, mat(3, 2),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecOuter(-1.5, in[0], in[1], out)}
			}),
		NewStackCase("VecOuter x·xᵀ", []tensor.Shape{vec(3)}, mat(3, 3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecOuter(2, in[0], in[0], out)}
			}),
		NewStackCase("VecOuter passive y", []tensor.Shape{vec(3)}, mat(3, 4),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				return []ops.Node{ops.VecOuter(1, in[0], Constant(vec(4), 8), out)}
			}),
		NewStackCase("Chain<passive MatTrace,VecScale>", []tensor.Shape{vec(3)}, vec(3),
			func(_ Factory, in []Obj, out Obj) []ops.Node {
				c := tensor.NewValue[complex128](scalar)
				return []ops.Node{
					ops.MatTrace(Constant(mat(3, 3), 9), c),
					ops.VecScale(c, in[0], out),
				}
			}),
		NewStackCase("Chain<MatVecMult,VecNorm,ScalarMult,ScalarExp>",
			[]tensor.Shape{mat(3, 3), vec(3)}, scalar,
			func(newObj Factory, in []Obj, out Obj) []ops.Node {
				y, s, s2 := newObj(vec(3)), newObj(scalar), newObj(scalar)
				return []ops.Node{
					ops.MatVecMult(kernel.Normal, in[0], in[1], y),
					ops.VecNorm(y, s),
					ops.ScalarMult(s, s, s2),
					ops.ScalarExp(s2, out),
				}
			}),
	)

	return cases
}

// shift returns the passive scalar 2, used to keep inputs drawn from
// [−1, 1] away from singular points.
func shift() Obj {
	c := tensor.NewValue[complex128](scalar)
	c.Value()[0] = 2
	return c
}

// unaryCase checks c = f(a).
func unaryCase(name string, f func(a, c Obj) *ops.ScalarFuncExpr[complex128]) Case {
	return NewStackCase(name, []tensor.Shape{scalar}, scalar,
		func(_ Factory, in []Obj, out Obj) []ops.Node {
			return []ops.Node{f(in[0], out)}
		})
}

// positiveCase checks c = f(a + 2) for functions defined on a > 0.
func positiveCase(name string, f func(a, c Obj) *ops.ScalarFuncExpr[complex128]) Case {
	return NewStackCase(name, []tensor.Shape{scalar}, scalar,
		func(newObj Factory, in []Obj, out Obj) []ops.Node {
			u := newObj(scalar)
			return []ops.Node{
				ops.ScalarSum(1, in[0], 1, shift(), u),
				f(u, out),
			}
		})
}
