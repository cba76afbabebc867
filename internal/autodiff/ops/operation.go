// Package ops defines the expression nodes of the differentiation stack.
//
// Every node relates pre-existing operands (it never owns their storage)
// and implements five phases:
//   - Eval: output value from input values
//   - Forward: tangent propagation into the output's b slot
//   - Reverse: adjoint accumulation from the output's b slot into active inputs
//   - HForward: tangent propagation on the p channel
//   - HReverse: Hessian-vector accumulation into active inputs' h slots
//
// Supported operations:
//   - MatVecMult: y = op(A)·x
//   - MatMatMult: C = op(A)·op(B)
//   - MatSum, VecSum, ScalarSum: z = αx + βy with constant α, β
//   - MatTrace: s = tr(A)
//   - MatDot, VecDot: s = Σ xᵢyᵢ
//   - VecNorm: s = ‖x‖₂
//   - VecScale: y = α·x with α a scalar operand
//   - VecOuter: A = α·x·yᵀ with constant α
//   - ScalarMult, ScalarDiv: c = a·b, c = a/b
//   - ScalarSqrt, ScalarRsqrt, ScalarExp, ScalarLog, ScalarSin, ScalarCos,
//     ScalarTanh: c = f(a)
//
// Passive inputs (tensor.Value operands) are skipped in every phase. Which
// inputs are active is resolved once, when the node is built.
package ops

import "github.com/born-ml/a2d/internal/tensor"

// Node is one composed operation.
type Node interface {
	// Name returns the operation name, e.g. "MatVecMult<N>".
	Name() string

	// Order returns the differentiation order of the node's output.
	Order() tensor.Order

	// Eval computes the output value.
	Eval()

	// Forward propagates the first-order tangent (b slots).
	Forward()

	// Reverse accumulates adjoints (b slots) into active inputs.
	Reverse()

	// HForward propagates the second-order tangent (p slots).
	HForward()

	// HReverse accumulates Hessian-vector products (h slots) into active inputs.
	HReverse()
}

// Activity records which inputs of a node are differentiable.
type Activity uint8

// Activity variants. Unary nodes use ActiveNone and ActiveLeft only.
const (
	ActiveNone  Activity = 0
	ActiveLeft  Activity = 1
	ActiveRight Activity = 2
	ActiveBoth           = ActiveLeft | ActiveRight
)

// Left reports whether the first input is active.
func (a Activity) Left() bool { return a&ActiveLeft != 0 }

// Right reports whether the second input is active.
func (a Activity) Right() bool { return a&ActiveRight != 0 }

// String returns a human-readable name for the variant.
func (a Activity) String() string {
	switch a {
	case ActiveNone:
		return "none"
	case ActiveLeft:
		return "left"
	case ActiveRight:
		return "right"
	case ActiveBoth:
		return "both"
	default:
		return "unknown"
	}
}
