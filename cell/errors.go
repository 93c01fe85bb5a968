package cell

import "errors"

// Sentinel errors for cell operations. The arithmetic helpers (Add, Sub,
// Mul, Div) pass through package matrix's errors for matrix⊕matrix shape
// failures; AsScalar and AsMatrix return ErrMixedKind.
var (
	// ErrShapeMismatch indicates two matrices have incompatible shapes for
	// an elementwise operation (Add, Sub, elementwise Divide).
	ErrShapeMismatch = errors.New("cell: matrix shape mismatch")

	// ErrNotSquare indicates an operation requiring a square matrix
	// received a non-square operand. Div's divide-by-matrix path reports
	// this through package matrix's own sentinel instead.
	ErrNotSquare = errors.New("cell: matrix is not square")

	// ErrDivideByZero names scalar division by an exact zero divisor. Div
	// follows IEEE-754 and never returns this error (spec.md §7:
	// RuntimeError — division propagates as IEEE behavior, no throw).
	ErrDivideByZero = errors.New("cell: division by zero")

	// ErrMixedKind indicates a scalar read of a matrix-valued Value
	// (AsScalar) or a matrix read of a scalar-valued Value (AsMatrix).
	ErrMixedKind = errors.New("cell: mixed scalar/matrix operands not supported here")
)
