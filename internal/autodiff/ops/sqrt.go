package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarSqrt builds c = √a. Derivatives are singular at a = 0.
//
//	f'(a)  = 1/(2√a)
//	f''(a) = −f'(a)/(2a)
func ScalarSqrt[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarSqrt", sqrtFunc[T], a, c)
}

func sqrtFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = tensor.Sqrt(a)
	d1 = 1 / (2 * f)
	d2 = -d1 / (2 * a)
	return f, d1, d2
}
