package matrix

// Add returns the elementwise sum a+b. Both operands must share shape.
// Stage 1 (Validate): same shape. Stage 2 (Execute): flat-slice loop.
func Add(a, b *Dense) (*Dense, error) {
	if !a.SameShape(b) {
		return nil, denseErrorf("Add", ErrDimensionMismatch)
	}
	out, _ := NewDense(a.r, a.c)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}

	return out, nil
}

// Sub returns the elementwise difference a-b. Both operands must share shape.
func Sub(a, b *Dense) (*Dense, error) {
	if !a.SameShape(b) {
		return nil, denseErrorf("Sub", ErrDimensionMismatch)
	}
	out, _ := NewDense(a.r, a.c)
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}

	return out, nil
}

// Hadamard returns the elementwise (mask_times) product a∘b. Both operands
// must share shape — unlike Mul this never falls back to matrix
// multiplication, which is what makes it the body of the mask_times
// operator (spec.md §4.3).
func Hadamard(a, b *Dense) (*Dense, error) {
	if !a.SameShape(b) {
		return nil, denseErrorf("Hadamard", ErrDimensionMismatch)
	}
	out, _ := NewDense(a.r, a.c)
	for i := range a.data {
		out.data[i] = a.data[i] * b.data[i]
	}

	return out, nil
}

// ElemDivide returns the elementwise quotient a/b (mask_divide). Both
// operands must share shape; no divide-by-zero check is performed — IEEE
// semantics apply (spec.md §7 RuntimeError policy).
func ElemDivide(a, b *Dense) (*Dense, error) {
	if !a.SameShape(b) {
		return nil, denseErrorf("ElemDivide", ErrDimensionMismatch)
	}
	out, _ := NewDense(a.r, a.c)
	for i := range a.data {
		out.data[i] = a.data[i] / b.data[i]
	}

	return out, nil
}

// Scale multiplies every element of m by alpha, returning a new matrix.
func Scale(m *Dense, alpha float64) *Dense {
	out, _ := NewDense(m.r, m.c)
	for i := range m.data {
		out.data[i] = m.data[i] * alpha
	}

	return out
}

// AddScalar broadcasts alpha onto every element of m (scalar⊕matrix).
func AddScalar(m *Dense, alpha float64) *Dense {
	out, _ := NewDense(m.r, m.c)
	for i := range m.data {
		out.data[i] = m.data[i] + alpha
	}

	return out
}

// Mul returns the true matrix product a*b (a.Cols() must equal b.Rows()).
// Stage 1 (Validate): inner dimensions agree.
// Stage 2 (Execute): naive triple loop — these matrices are small (flight
// dynamics state/rotation matrices rarely exceed a handful of dimensions),
// so there is no case for Strassen-style blocking here.
func Mul(a, b *Dense) (*Dense, error) {
	if a.c != b.r {
		return nil, denseErrorf("Mul", ErrDimensionMismatch)
	}
	out, _ := NewDense(a.r, b.c)
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik := a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.c; j++ {
				out.data[i*out.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Dense) *Dense {
	out, _ := NewDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = m.data[i*m.c+j]
		}
	}

	return out
}

// Equal reports whether a and b have identical shape and values.
func Equal(a, b *Dense) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}
