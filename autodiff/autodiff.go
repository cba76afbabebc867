// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides forward, reverse and second-order automatic
// differentiation over fixed-shape operands.
//
// Expression nodes relate caller-owned operands and are evaluated as they
// are composed onto a Stack. The stack then runs the derivative sweeps.
//
// Example (gradient and Hessian-vector product of s = ‖A·x‖):
//
//	import (
//	    "github.com/born-ml/a2d/autodiff"
//	    "github.com/born-ml/a2d/tensor"
//	)
//
//	func main() {
//	    A := tensor.NewValue[float64](tensor.MatShape(3, 3))
//	    x := tensor.NewA2DObj[float64](tensor.VecShape(3))
//	    y := tensor.NewA2DObj[float64](tensor.VecShape(3))
//	    s := tensor.NewA2DObj[float64](tensor.ScalarShape())
//
//	    stack := autodiff.MakeStack(
//	        autodiff.MatVecMult(autodiff.Normal, A, x, y),
//	        autodiff.VecNorm(y, s),
//	    )
//
//	    s.BValue()[0] = 1
//	    copy(x.PValue(), []float64{1, 0, 0})
//	    stack.HProduct() // x.BValue() = ∇s, x.HValue() = ∇²s·p
//	}
package autodiff

import (
	"github.com/born-ml/a2d/internal/autodiff"
	"github.com/born-ml/a2d/internal/autodiff/ops"
	"github.com/born-ml/a2d/internal/kernel"
	"github.com/born-ml/a2d/internal/tensor"
)

// Stack records composed nodes and drives the derivative sweeps.
type Stack = autodiff.Stack

// MakeStack creates a stack from nodes, evaluating each in order.
func MakeStack(nodes ...Node) *Stack {
	return autodiff.MakeStack(nodes...)
}

// Node is one composed operation.
type Node = ops.Node

// Activity records which inputs of a node are differentiable.
type Activity = ops.Activity

// Activity variants.
const (
	ActiveNone  Activity = ops.ActiveNone
	ActiveLeft  Activity = ops.ActiveLeft
	ActiveRight Activity = ops.ActiveRight
	ActiveBoth  Activity = ops.ActiveBoth
)

// MatOp selects whether a matrix operand is used as stored or transposed.
type MatOp = kernel.MatOp

// Matrix operand modes.
const (
	Normal    MatOp = kernel.Normal
	Transpose MatOp = kernel.Transpose
)

// Expression node types.
type (
	MatVecMultExpr[T tensor.Number] = ops.MatVecMultExpr[T]
	MatMatMultExpr[T tensor.Number] = ops.MatMatMultExpr[T]
	SumExpr[T tensor.Number]        = ops.SumExpr[T]
	MatTraceExpr[T tensor.Number]   = ops.MatTraceExpr[T]
	DotExpr[T tensor.Number]        = ops.DotExpr[T]
	VecNormExpr[T tensor.Number]    = ops.VecNormExpr[T]
	VecScaleExpr[T tensor.Number]   = ops.VecScaleExpr[T]
	VecOuterExpr[T tensor.Number]   = ops.VecOuterExpr[T]
	ScalarMultExpr[T tensor.Number] = ops.ScalarMultExpr[T]
	ScalarDivExpr[T tensor.Number]  = ops.ScalarDivExpr[T]
	ScalarFuncExpr[T tensor.Number] = ops.ScalarFuncExpr[T]
)

// MatVecMult creates y = op(A)·x.
func MatVecMult[T tensor.Number](op MatOp, a, x, y tensor.Obj[T]) *MatVecMultExpr[T] {
	return ops.MatVecMult(op, a, x, y)
}

// MatMatMult creates C = opA(A)·opB(B).
func MatMatMult[T tensor.Number](opA, opB MatOp, a, b, c tensor.Obj[T]) *MatMatMultExpr[T] {
	return ops.MatMatMult(opA, opB, a, b, c)
}

// MatSum creates C = αA + βB.
func MatSum[T tensor.Number](alpha T, a tensor.Obj[T], beta T, b, c tensor.Obj[T]) *SumExpr[T] {
	return ops.MatSum(alpha, a, beta, b, c)
}

// VecSum creates z = αx + βy.
func VecSum[T tensor.Number](alpha T, x tensor.Obj[T], beta T, y, z tensor.Obj[T]) *SumExpr[T] {
	return ops.VecSum(alpha, x, beta, y, z)
}

// ScalarSum creates c = αa + βb.
func ScalarSum[T tensor.Number](alpha T, a tensor.Obj[T], beta T, b, c tensor.Obj[T]) *SumExpr[T] {
	return ops.ScalarSum(alpha, a, beta, b, c)
}

// MatTrace creates s = tr(A).
func MatTrace[T tensor.Number](a, s tensor.Obj[T]) *MatTraceExpr[T] {
	return ops.MatTrace(a, s)
}

// MatDot creates s = A:B.
func MatDot[T tensor.Number](a, b, s tensor.Obj[T]) *DotExpr[T] {
	return ops.MatDot(a, b, s)
}

// VecDot creates s = x·y.
func VecDot[T tensor.Number](x, y, s tensor.Obj[T]) *DotExpr[T] {
	return ops.VecDot(x, y, s)
}

// VecNorm creates s = ‖x‖₂.
func VecNorm[T tensor.Number](x, s tensor.Obj[T]) *VecNormExpr[T] {
	return ops.VecNorm(x, s)
}

// VecScale creates y = α·x.
func VecScale[T tensor.Number](alpha, x, y tensor.Obj[T]) *VecScaleExpr[T] {
	return ops.VecScale(alpha, x, y)
}

// VecOuter creates A = α·x·yᵀ.
func VecOuter[T tensor.Number](alpha T, x, y, a tensor.Obj[T]) *VecOuterExpr[T] {
	return ops.VecOuter(alpha, x, y, a)
}

// ScalarMult creates c = a·b.
func ScalarMult[T tensor.Number](a, b, c tensor.Obj[T]) *ScalarMultExpr[T] {
	return ops.ScalarMult(a, b, c)
}

// ScalarSqrt creates c = √a.
func ScalarSqrt[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarSqrt(a, c)
}

// ScalarExp creates c = eᵃ.
func ScalarExp[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarExp(a, c)
}

// ScalarDiv creates c = a/b.
func ScalarDiv[T tensor.Number](a, b, c tensor.Obj[T]) *ScalarDivExpr[T] {
	return ops.ScalarDiv(a, b, c)
}

// ScalarRsqrt creates c = 1/√a.
func ScalarRsqrt[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarRsqrt(a, c)
}

// ScalarLog creates c = ln a.
func ScalarLog[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarLog(a, c)
}

// ScalarSin creates c = sin a.
func ScalarSin[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarSin(a, c)
}

// ScalarCos creates c = cos a.
func ScalarCos[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarCos(a, c)
}

// ScalarTanh creates c = tanh a.
func ScalarTanh[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return ops.ScalarTanh(a, c)
}
