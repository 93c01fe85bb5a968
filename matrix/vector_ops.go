package matrix

// DotProduct returns the scalar (inner) product of two equal-length
// vectors — the body of the `scalarproduct` operator.
func DotProduct(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, denseErrorf("DotProduct", ErrDimensionMismatch)
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum, nil
}

// CrossProduct3 returns the 3-vector cross product a×b — the body of the
// `vectorproduct` operator, defined only for two 3-vectors.
func CrossProduct3(a, b []float64) ([]float64, error) {
	if len(a) != 3 || len(b) != 3 {
		return nil, denseErrorf("CrossProduct3", ErrNotVector3)
	}

	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}, nil
}

// OuterProduct returns the m×n matrix a⊗b where m=len(a), n=len(b) — the
// body of the `outerproduct` operator.
func OuterProduct(a, b []float64) (*Dense, error) {
	out, err := NewDense(len(a), len(b))
	if err != nil {
		return nil, denseErrorf("OuterProduct", err)
	}
	for i, av := range a {
		for j, bv := range b {
			out.data[i*out.c+j] = av * bv
		}
	}

	return out, nil
}

// SkewSymmetric returns the 3×3 skew-symmetric ("cross-product matrix")
// form of a 3-vector v, such that SkewSymmetric(v)·x == v×x for any
// 3-vector x — the body of the `cross` operator.
func SkewSymmetric(v []float64) (*Dense, error) {
	if len(v) != 3 {
		return nil, denseErrorf("SkewSymmetric", ErrNotVector3)
	}
	out, _ := NewDense(3, 3)
	out.data[0*3+1] = -v[2]
	out.data[0*3+2] = v[1]
	out.data[1*3+0] = v[2]
	out.data[1*3+2] = -v[0]
	out.data[2*3+0] = -v[1]
	out.data[2*3+1] = v[0]

	return out, nil
}
