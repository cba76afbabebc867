package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarSin builds c = sin(a).
func ScalarSin[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarSin", sinFunc[T], a, c)
}

func sinFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = tensor.Sin(a)
	return f, tensor.Cos(a), -f
}
