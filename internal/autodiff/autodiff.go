// Package autodiff composes expression nodes into a stack and sweeps it.
//
// Architecture:
//   - tensor.Value / ADObj / A2DObj: operands owned by the caller
//   - ops.Node: one relation between operands (MatVecMult, VecDot, ...)
//   - Stack: nodes in composition order; sweeps walk it forwards or backwards
//
// Sweeps:
//   - Forward: first-order tangents, composition order
//   - Reverse: adjoints, reverse composition order
//   - HForward: second-order tangents, composition order
//   - HReverse: Hessian-vector products, reverse composition order
//
// A stack and its operands belong to one differentiation episode and one
// goroutine. Independent episodes may run concurrently.
package autodiff
