package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarRsqrt builds c = 1/√a. Defined for a > 0.
//
//	f'(a)  = −f/(2a)
//	f''(a) = 3f/(4a²)
func ScalarRsqrt[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarRsqrt", rsqrtFunc[T], a, c)
}

func rsqrtFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = 1 / tensor.Sqrt(a)
	d1 = -f / (2 * a)
	d2 = -3 * d1 / (2 * a)
	return f, d1, d2
}
