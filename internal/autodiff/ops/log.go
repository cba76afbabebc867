package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarLog builds c = ln(a). Defined for a > 0.
//
//	f'(a)  = 1/a
//	f''(a) = −1/a²
func ScalarLog[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarLog", logFunc[T], a, c)
}

func logFunc[T tensor.Number](a T) (f, d1, d2 T) {
	d1 = 1 / a
	return tensor.Log(a), d1, -d1 * d1
}
