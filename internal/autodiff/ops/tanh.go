package ops

import "github.com/born-ml/a2d/internal/tensor"

// ScalarTanh builds c = tanh(a).
//
//	f'(a)  = 1 − f²
//	f''(a) = −2f·f'
func ScalarTanh[T tensor.Number](a, c tensor.Obj[T]) *ScalarFuncExpr[T] {
	return newScalarFunc("ScalarTanh", tanhFunc[T], a, c)
}

func tanhFunc[T tensor.Number](a T) (f, d1, d2 T) {
	f = tensor.Tanh(a)
	d1 = 1 - f*f
	return f, d1, -2 * f * d1
}
