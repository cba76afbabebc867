package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarCos builds c = cos(a).
func ScalarCos[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarCos", cosFunc[T], a, c)
}

func cosFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = tensor.Cos(a)
	return f, -tensor.Sin(a), -f
}
