package uncertainty

import "errors"

// Sentinel errors for uncertainty propagation.
var (
	// ErrNoPDF indicates Variance or Bounds was asked to treat a variable
	// as though it carried a PDF of the requested kind, but it carries
	// none or a different kind.
	ErrNoPDF = errors.New("uncertainty: variable has no matching PDF")
	// ErrMatrixVariable indicates uncertainty propagation was requested
	// for a matrix-valued variable — out of scope (spec.md §4.7 is
	// defined only over scalar variables).
	ErrMatrixVariable = errors.New("uncertainty: propagation is not defined for matrix-valued variables")
)
