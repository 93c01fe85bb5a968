package matrix

import "errors"

// Sentinel errors for the matrix package. Every exported function validates
// its inputs and returns one of these, never a bespoke error type; context
// (operator name, shape) is layered on with fmt.Errorf("%s: %w", ...) at the
// call site that has it.
var (
	// ErrInvalidDimensions indicates a requested shape has a non-positive
	// row or column count.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfRange indicates a row or column index outside [0, n).
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates two operands have incompatible shapes
	// for the requested operation.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotSquare indicates an operation that requires a square matrix
	// (Determinant, Inverse, Power, LU) received a non-square operand.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrSingular indicates a zero pivot was encountered during LU
	// decomposition; the matrix has no inverse under this (non-pivoting)
	// scheme.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotVector3 indicates an operation requiring a 3-element vector
	// (Cross, EulerTransform input angles excepted) received some other
	// length.
	ErrNotVector3 = errors.New("matrix: expected a 3-element vector")

	// ErrNegativeExponent indicates Power was asked for a negative integer
	// exponent; spec.md §9 retains this restriction even though a negative
	// power is mathematically defined for an invertible matrix.
	ErrNegativeExponent = errors.New("matrix: negative matrix exponent not supported")
)
