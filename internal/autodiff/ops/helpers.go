package ops

import (
	"fmt"

	"github.com/born-ml/a2d/internal/tensor"
)

// ref holds the slots of one operand. Missing slots are nil.
type ref[T tensor.Number] struct {
	v, b, p, h []T
}

func refOf[T tensor.Number](o tensor.Obj[T]) ref[T] {
	return ref[T]{v: o.Value(), b: o.BValue(), p: o.PValue(), h: o.HValue()}
}

// seed returns the tangent slot used by a forward phase.
func (r ref[T]) seed(s tensor.Seed) []T {
	if s == tensor.SeedP {
		return r.p
	}
	return r.b
}

// base carries what every node shares.
type base struct {
	name  string
	order tensor.Order
	act   Activity
}

// Name returns the operation name.
func (n *base) Name() string { return n.name }

// Order returns the node's differentiation order.
func (n *base) Order() tensor.Order { return n.order }

// Activity returns which inputs are differentiated.
func (n *base) Activity() Activity { return n.act }

// bind resolves the node order from the output and the activity from up to
// two inputs. It panics when an active input feeds a passive output or when
// an active input carries fewer slots than the output.
func bind[T tensor.Number](name string, out tensor.Obj[T], ins ...tensor.Obj[T]) base {
	order := out.Order()
	var act Activity
	for i, in := range ins {
		if in.Order() == tensor.OrderNone {
			continue
		}
		if order == tensor.OrderNone {
			panic(fmt.Sprintf("%s: active input %d requires a differentiable output", name, i))
		}
		if in.Order() < order {
			panic(fmt.Sprintf("%s: input %d has %s order, output has %s order", name, i, in.Order(), order))
		}
		act |= Activity(1 << i)
	}
	return base{name: name, order: order, act: act}
}

func requireKind(name string, s tensor.Shape, kind tensor.Kind) {
	if s.Kind() != kind {
		panic(fmt.Sprintf("%s: expected %s operand, got %v", name, kind, s))
	}
}

func requireSameShape(name string, shapes ...tensor.Shape) {
	for _, s := range shapes[1:] {
		if !s.Equal(shapes[0]) {
			panic(fmt.Sprintf("%s: incompatible shapes %v and %v", name, shapes[0], s))
		}
	}
}
