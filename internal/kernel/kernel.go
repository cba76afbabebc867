// Package kernel implements the dense row-major kernels the expression nodes
// are built from.
//
// Every kernel works on caller-provided storage with explicit extents and
// never allocates. Overwriting variants assign to the output, the *Add
// variants accumulate into it. Outputs must not alias inputs.
package kernel

import "github.com/born-ml/a2d/internal/tensor"

// MatOp selects whether a matrix is used as stored or transposed.
type MatOp int

// Matrix operation modes.
const (
	Normal MatOp = iota
	Transpose
)

// Not returns the opposite mode.
func (op MatOp) Not() MatOp {
	if op == Normal {
		return Transpose
	}
	return Normal
}

// String returns "N" or "T".
func (op MatOp) String() string {
	if op == Normal {
		return "N"
	}
	return "T"
}

// Dims returns the extents of op(A) for an n×m matrix A.
func (op MatOp) Dims(n, m int) (rows, cols int) {
	if op == Normal {
		return n, m
	}
	return m, n
}

// MatVec computes y = op(A)·x for the n×m matrix A.
func MatVec[T tensor.Number](op MatOp, n, m int, a, x, y []T) {
	matVec(op, n, m, a, x, y, false)
}

// MatVecAdd computes y += op(A)·x for the n×m matrix A.
func MatVecAdd[T tensor.Number](op MatOp, n, m int, a, x, y []T) {
	matVec(op, n, m, a, x, y, true)
}

func matVec[T tensor.Number](op MatOp, n, m int, a, x, y []T, additive bool) {
	if op == Normal {
		for i := 0; i < n; i++ {
			row := a[i*m : i*m+m]
			var sum T
			for j, aij := range row {
				sum += aij * x[j]
			}
			if additive {
				y[i] += sum
			} else {
				y[i] = sum
			}
		}
		return
	}

	if !additive {
		clear(y[:m])
	}
	for i := 0; i < n; i++ {
		xi := x[i]
		row := a[i*m : i*m+m]
		for j, aij := range row {
			y[j] += aij * xi
		}
	}
}

// VecOuter computes A = x·yᵀ, with x of length n and y of length m.
func VecOuter[T tensor.Number](n, m int, x, y, a []T) {
	vecOuter(n, m, 1, x, y, a, false)
}

// VecOuterAdd computes A += x·yᵀ.
func VecOuterAdd[T tensor.Number](n, m int, x, y, a []T) {
	vecOuter(n, m, 1, x, y, a, true)
}

// VecOuterScale computes A = alpha·x·yᵀ.
func VecOuterScale[T tensor.Number](n, m int, alpha T, x, y, a []T) {
	vecOuter(n, m, alpha, x, y, a, false)
}

// VecOuterScaleAdd computes A += alpha·x·yᵀ.
func VecOuterScaleAdd[T tensor.Number](n, m int, alpha T, x, y, a []T) {
	vecOuter(n, m, alpha, x, y, a, true)
}

func vecOuter[T tensor.Number](n, m int, alpha T, x, y, a []T, additive bool) {
	for i := 0; i < n; i++ {
		xi := alpha * x[i]
		row := a[i*m : i*m+m]
		if additive {
			for j := range row {
				row[j] += xi * y[j]
			}
		} else {
			for j := range row {
				row[j] = xi * y[j]
			}
		}
	}
}

// MatMat computes C = op(A)·op(B) for A stored as na×ma and B as nb×mb.
// C is stored with the extents of the product.
func MatMat[T tensor.Number](opA, opB MatOp, na, ma, nb, mb int, a, b, c []T) {
	matMat(opA, opB, na, ma, nb, mb, a, b, c, false)
}

// MatMatAdd computes C += op(A)·op(B).
func MatMatAdd[T tensor.Number](opA, opB MatOp, na, ma, nb, mb int, a, b, c []T) {
	matMat(opA, opB, na, ma, nb, mb, a, b, c, true)
}

func matMat[T tensor.Number](opA, opB MatOp, na, ma, nb, mb int, a, b, c []T, additive bool) {
	rows, inner := opA.Dims(na, ma)
	_, cols := opB.Dims(nb, mb)

	// Strides of op(A)[i][k] and op(B)[k][j] in the stored layout.
	ai, ak := ma, 1
	if opA == Transpose {
		ai, ak = 1, ma
	}
	bk, bj := mb, 1
	if opB == Transpose {
		bk, bj = 1, mb
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum T
			for k := 0; k < inner; k++ {
				sum += a[i*ai+k*ak] * b[k*bk+j*bj]
			}
			if additive {
				c[i*cols+j] += sum
			} else {
				c[i*cols+j] = sum
			}
		}
	}
}

// Dot returns x·y without conjugation.
func Dot[T tensor.Number](x, y []T) T {
	var sum T
	for i, xi := range x {
		sum += xi * y[i]
	}
	return sum
}

// Axpy computes y += alpha·x.
func Axpy[T tensor.Number](alpha T, x, y []T) {
	for i, xi := range x {
		y[i] += alpha * xi
	}
}

// Scale computes y = alpha·x.
func Scale[T tensor.Number](alpha T, x, y []T) {
	for i, xi := range x {
		y[i] = alpha * xi
	}
}

// Trace returns the sum of the diagonal of the n×n matrix A.
func Trace[T tensor.Number](n int, a []T) T {
	var sum T
	for i := 0; i < n; i++ {
		sum += a[i*n+i]
	}
	return sum
}

// AddDiag computes A += alpha·I for the n×n matrix A.
func AddDiag[T tensor.Number](n int, alpha T, a []T) {
	for i := 0; i < n; i++ {
		a[i*n+i] += alpha
	}
}
