package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarExp builds c = exp(a).
func ScalarExp[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarExp", expFunc[T], a, c)
}

// expFunc is its own first and second derivative.
func expFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = tensor.Exp(a)
	return f, f, f
}
