package cell

import "github.com/flightdyn/daveml/matrix"

// Add implements scalar⊕scalar→scalar, scalar⊕matrix→matrix (broadcast)
// and matrix⊕matrix→matrix (elementwise) — spec.md §4.1.
func Add(a, b Value) (Value, error) {
	if !a.isMatrix && !b.isMatrix {
		return Scalar(a.scalar + b.scalar), nil
	}
	if a.isMatrix && b.isMatrix {
		m, err := matrix.Add(a.mat, b.mat)
		if err != nil {
			return Value{}, err
		}

		return Matrix(m), nil
	}

	return broadcast(a, b, func(x, y float64) float64 { return x + y })
}

// Sub implements the same broadcasting rule as Add for subtraction.
func Sub(a, b Value) (Value, error) {
	if !a.isMatrix && !b.isMatrix {
		return Scalar(a.scalar - b.scalar), nil
	}
	if a.isMatrix && b.isMatrix {
		m, err := matrix.Sub(a.mat, b.mat)
		if err != nil {
			return Value{}, err
		}

		return Matrix(m), nil
	}

	return broadcastOrdered(a, b, func(x, y float64) float64 { return x - y })
}

// Mul implements scalar*scalar→scalar, scalar*matrix→matrix (broadcast),
// and matrix*matrix→matrix as a true matrix product — spec.md §4.1.
func Mul(a, b Value) (Value, error) {
	if !a.isMatrix && !b.isMatrix {
		return Scalar(a.scalar * b.scalar), nil
	}
	if a.isMatrix && b.isMatrix {
		m, err := matrix.Mul(a.mat, b.mat)
		if err != nil {
			return Value{}, err
		}

		return Matrix(m), nil
	}

	return broadcast(a, b, func(x, y float64) float64 { return x * y })
}

// Div implements the division semantics of spec.md §4.1: matrix/scalar and
// scalar/matrix broadcast; matrix/matrix is elementwise when shapes agree,
// otherwise right-division by inverse (matrix.Divide — see DESIGN.md Open
// Questions); scalar/scalar follows IEEE-754 (no throw on zero divisor).
func Div(a, b Value) (Value, error) {
	if !a.isMatrix && !b.isMatrix {
		return Scalar(a.scalar / b.scalar), nil
	}
	if a.isMatrix && b.isMatrix {
		m, err := matrix.Divide(a.mat, b.mat)
		if err != nil {
			return Value{}, err
		}

		return Matrix(m), nil
	}

	return broadcastOrdered(a, b, func(x, y float64) float64 { return x / y })
}

// broadcast applies op elementwise between a scalar Value and a matrix
// Value, commutative (Add, Mul): the scalar operand may be on either side.
func broadcast(a, b Value, op func(x, y float64) float64) (Value, error) {
	if a.isMatrix {
		return broadcastMatrixScalar(a.mat, b.scalar, op), nil
	}

	return broadcastMatrixScalar(b.mat, a.scalar, func(x, y float64) float64 { return op(y, x) }), nil
}

// broadcastOrdered applies op elementwise preserving operand order (Sub,
// Div are not commutative).
func broadcastOrdered(a, b Value, op func(x, y float64) float64) (Value, error) {
	if a.isMatrix {
		return broadcastMatrixScalar(a.mat, b.scalar, op), nil
	}

	return broadcastMatrixScalar(b.mat, a.scalar, func(matElem, scalarElem float64) float64 {
		return op(scalarElem, matElem)
	}), nil
}

func broadcastMatrixScalar(m *matrix.Dense, s float64, op func(matElem, scalarElem float64) float64) Value {
	out, _ := matrix.NewDense(m.Rows(), m.Cols())
	data := out.Data()
	src := m.Data()
	for i := range src {
		data[i] = op(src[i], s)
	}

	return Matrix(out)
}
