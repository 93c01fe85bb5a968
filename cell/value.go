package cell

import "github.com/flightdyn/daveml/matrix"

// Value is the tagged union of a scalar float64 and a dense matrix that
// every expression node and every variable carries as its result cell
// (spec.md §3, C1). It also threads the boolean `test` flag used by
// relational, logical and piecewise nodes — a Value's nominal numeric
// meaning and its predicate meaning are independent and both always valid
// to read.
type Value struct {
	isMatrix bool
	test     bool
	scalar   float64
	mat      *matrix.Dense
}

// Scalar returns a Value holding a bare number.
func Scalar(v float64) Value {
	return Value{scalar: v}
}

// Bool returns a Value holding the numeric 0/1 encoding of b together with
// its predicate flag set — the shape `eq`, `lt`, `and`, `piece` etc. return.
func Bool(b bool) Value {
	v := 0.0
	if b {
		v = 1.0
	}

	return Value{scalar: v, test: b}
}

// Matrix returns a Value holding m. A 1×1 matrix collapses to scalar form —
// spec.md §3: "A 'single value' matrix (1×1) is treated as scalar in
// mixed-mode arithmetic," enforced here once so every caller gets it free.
func Matrix(m *matrix.Dense) Value {
	if m.Rows() == 1 && m.Cols() == 1 {
		v, _ := m.At(0, 0)

		return Value{scalar: v}
	}

	return Value{isMatrix: true, mat: m}
}

// IsMatrix reports whether this Value currently holds matrix data.
func (v Value) IsMatrix() bool { return v.isMatrix }

// Test returns the boolean-predicate flag threaded by relational/logical/
// piecewise nodes. It is independent of the numeric payload.
func (v Value) Test() bool { return v.test }

// AsScalar returns the scalar payload. Calling this on a matrix-valued
// Value is a caller error (spec.md §7 TypeError: "scalar read requested of
// a matrix-valued variable") and returns ErrMixedKind.
func (v Value) AsScalar() (float64, error) {
	if v.isMatrix {
		return 0, ErrMixedKind
	}

	return v.scalar, nil
}

// AsMatrix returns the matrix payload. Calling this on a scalar-valued
// Value is a caller error (spec.md §7 TypeError: "matrix read requested of
// a scalar variable") and returns ErrMixedKind.
func (v Value) AsMatrix() (*matrix.Dense, error) {
	if !v.isMatrix {
		return nil, ErrMixedKind
	}

	return v.mat, nil
}

// WithTest returns a copy of v with its test flag overridden — used by
// `piece`/`otherwise`/relational node bodies that compute a value and a
// predicate in the same step.
func (v Value) WithTest(test bool) Value {
	v.test = test

	return v
}

// CopyFrom returns a copy of other, propagating both the numeric payload
// and the test flag — spec.md §4.1: "copy-from-cell (which additionally
// propagates test)".
func CopyFrom(other Value) Value {
	return other
}
