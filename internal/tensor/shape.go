package tensor

import "fmt"

// Kind classifies a shape.
type Kind int

// Shape kinds.
const (
	KindScalar Kind = iota
	KindVec
	KindMat
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVec:
		return "vec"
	case KindMat:
		return "mat"
	default:
		return "unknown"
	}
}

// Shape describes the fixed extents of an operand.
// Vectors store their length in Rows with Cols == 1.
type Shape struct {
	kind Kind
	Rows int
	Cols int
}

// ScalarShape returns the shape of a scalar.
func ScalarShape() Shape {
	return Shape{kind: KindScalar, Rows: 1, Cols: 1}
}

// VecShape returns the shape of an n-vector.
func VecShape(n int) Shape {
	return Shape{kind: KindVec, Rows: n, Cols: 1}
}

// MatShape returns the shape of an n×m matrix.
func MatShape(n, m int) Shape {
	return Shape{kind: KindMat, Rows: n, Cols: m}
}

// Kind reports whether the shape is a scalar, vector or matrix.
func (s Shape) Kind() Kind {
	return s.kind
}

// NumElements returns the number of stored entries.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Index returns the row-major offset of entry (i, j).
func (s Shape) Index(i, j int) int {
	return i*s.Cols + j
}

// Validate checks that all extents are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("invalid %s shape %dx%d (extents must be > 0)", s.kind, s.Rows, s.Cols)
	}
	if s.kind != KindMat && s.Cols != 1 {
		return fmt.Errorf("invalid %s shape %dx%d (cols must be 1)", s.kind, s.Rows, s.Cols)
	}
	if s.kind == KindScalar && s.Rows != 1 {
		return fmt.Errorf("invalid scalar shape %dx%d", s.Rows, s.Cols)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

// String formats the shape, e.g. "mat(3x3)", "vec(3)", "scalar".
func (s Shape) String() string {
	switch s.kind {
	case KindScalar:
		return "scalar"
	case KindVec:
		return fmt.Sprintf("vec(%d)", s.Rows)
	default:
		return fmt.Sprintf("mat(%dx%d)", s.Rows, s.Cols)
	}
}
