package autodiff

import (
	"fmt"

	"github.com/born-ml/a2d/internal/autodiff/ops"
	"github.com/born-ml/a2d/internal/tensor"
)

// Stack records composed nodes in evaluation order and drives the sweeps.
//
// Usage:
//
//	stack := MakeStack(ops.MatVecMult(kernel.Normal, A, x, y))
//	stack.Push(ops.VecDot(y, y, s))
//	s.BValue()[0] = 1
//	stack.Reverse()
//
// Nodes are evaluated when they are added, so a node may only reference
// operands supplied by the caller or produced by earlier nodes.
type Stack struct {
	nodes  []ops.Node // Composed nodes (in evaluation order)
	order  tensor.Order
	active int // Nodes with a differentiable output
}

// MakeStack creates a stack from nodes, evaluating each in order.
func MakeStack(nodes ...ops.Node) *Stack {
	s := &Stack{
		nodes: make([]ops.Node, 0, max(len(nodes), 8)),
		order: tensor.OrderSecond,
	}
	for _, n := range nodes {
		s.Push(n)
	}
	return s
}

// Push appends a node, evaluates it and returns the stack for chaining.
func (s *Stack) Push(n ops.Node) *Stack {
	n.Eval()
	s.nodes = append(s.nodes, n)
	// Passive nodes have nothing to propagate; every sweep skips over them.
	if n.Order() != tensor.OrderNone {
		s.order = min(s.order, n.Order())
		s.active++
	}
	return s
}

// Len returns the number of composed nodes.
func (s *Stack) Len() int {
	return len(s.nodes)
}

// Order returns the lowest differentiation order among the nodes with a
// differentiable output. A non-empty stack without such nodes reports
// OrderNone; an empty stack reports OrderSecond.
func (s *Stack) Order() tensor.Order {
	if len(s.nodes) > 0 && s.active == 0 {
		return tensor.OrderNone
	}
	return s.order
}

// Nodes returns the composed nodes in evaluation order.
func (s *Stack) Nodes() []ops.Node {
	return s.nodes
}

// Eval re-evaluates every node in evaluation order.
// Use it after changing input values in place.
func (s *Stack) Eval() {
	for _, n := range s.nodes {
		n.Eval()
	}
}

// Forward propagates first-order tangents (b slots) in evaluation order.
// Seed the b slots of the active inputs first.
func (s *Stack) Forward() {
	s.require("Forward", tensor.OrderFirst)
	for _, n := range s.nodes {
		n.Forward()
	}
}

// Reverse accumulates adjoints (b slots) in reverse evaluation order.
// Seed the b slot of the final output first.
func (s *Stack) Reverse() {
	s.require("Reverse", tensor.OrderFirst)
	for i := len(s.nodes) - 1; i >= 0; i-- {
		s.nodes[i].Reverse()
	}
}

// HForward propagates second-order tangents (p slots) in evaluation order.
// Seed the p slots of the active inputs first.
func (s *Stack) HForward() {
	s.require("HForward", tensor.OrderSecond)
	for _, n := range s.nodes {
		n.HForward()
	}
}

// HReverse accumulates Hessian-vector products (h slots) in reverse
// evaluation order. Reverse and HForward must have run.
func (s *Stack) HReverse() {
	s.require("HReverse", tensor.OrderSecond)
	for i := len(s.nodes) - 1; i >= 0; i-- {
		s.nodes[i].HReverse()
	}
}

// HProduct runs the mixed sweep: Reverse, HForward, HReverse.
//
// Before calling, seed the output's b slot (the adjoint seed), the active
// inputs' p slots (the direction) and optionally the output's h slot.
// Afterwards every active input's h slot holds its Hessian-vector product.
func (s *Stack) HProduct() {
	s.Reverse()
	s.HForward()
	s.HReverse()
}

// require panics when a node cannot run the requested sweep.
func (s *Stack) require(sweep string, order tensor.Order) {
	if s.Order() < order {
		panic(fmt.Sprintf("%s requires %s order nodes, stack has %s order", sweep, order, s.Order()))
	}
}
