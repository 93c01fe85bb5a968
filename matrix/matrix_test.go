package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdyn/daveml/matrix"
)

func TestMulAndTranspose(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.NewVector([]float64{5, 6})
	require.NoError(t, err)

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	v0, _ := c.At(0, 0)
	v1, _ := c.At(1, 0)
	assert.Equal(t, 17.0, v0)
	assert.Equal(t, 39.0, v1)

	at := matrix.Transpose(a)
	assert.Equal(t, 2, at.Rows())
	assert.Equal(t, 2, at.Cols())
	v, _ := at.At(0, 1)
	assert.Equal(t, 3.0, v)
}

func TestDeterminantAndInverse(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{4, 7}, {2, 6}})
	require.NoError(t, err)

	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, det, 1e-9)

	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	identity, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := identity.At(i, j)
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			assert.InDelta(t, expected, v, 1e-9)
		}
	}
}

func TestSingularMatrixDeterminantIsZero(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)
	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, det)

	_, err = matrix.Inverse(a)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestPowerNonNegativeInteger(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 1}, {0, 1}})
	require.NoError(t, err)

	p, err := matrix.Power(a, 3)
	require.NoError(t, err)
	v, _ := p.At(0, 1)
	assert.Equal(t, 3.0, v)

	_, err = matrix.Power(a, -1)
	assert.ErrorIs(t, err, matrix.ErrNegativeExponent)
}

func TestDivideElementwiseVsInverse(t *testing.T) {
	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := matrix.NewDenseFromRows([][]float64{{2, 2}, {2, 2}})

	// Same shape: elementwise.
	q, err := matrix.Divide(a, b)
	require.NoError(t, err)
	v, _ := q.At(0, 0)
	assert.Equal(t, 0.5, v)

	// Different but compatible shapes: right-division by inverse.
	c, _ := matrix.NewVector([]float64{5, 6})
	square, _ := matrix.NewDenseFromRows([][]float64{{1, 0}, {0, 2}})
	r, err := matrix.Divide(matrix.Transpose(c), square)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Rows())
	assert.Equal(t, 2, r.Cols())
}

func TestCrossDotOuterSkew(t *testing.T) {
	x := []float64{1, 0, 0}
	y := []float64{0, 1, 0}

	cross, err := matrix.CrossProduct3(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, cross)

	dot, err := matrix.DotProduct([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 32.0, dot)

	outer, err := matrix.OuterProduct([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	v, _ := outer.At(1, 1)
	assert.Equal(t, 8.0, v)

	skew, err := matrix.SkewSymmetric([]float64{1, 2, 3})
	require.NoError(t, err)
	result, err := matrix.Mul(skew, mustVec(t, x))
	require.NoError(t, err)
	// skew(v) * x == v cross x
	expected, _ := matrix.CrossProduct3([]float64{1, 2, 3}, x)
	assert.InDelta(t, expected[0], colAt(result, 0), 1e-9)
	assert.InDelta(t, expected[1], colAt(result, 1), 1e-9)
	assert.InDelta(t, expected[2], colAt(result, 2), 1e-9)
}

func mustVec(t *testing.T, v []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewVector(v)
	require.NoError(t, err)

	return m
}

func colAt(m *matrix.Dense, row int) float64 {
	v, _ := m.At(row, 0)

	return v
}

func TestEulerTransformDegMatchesRadians(t *testing.T) {
	rad := matrix.EulerTransform(0, 0, math.Pi/2)
	deg := matrix.EulerTransformDeg(0, 0, 90)
	assert.True(t, matrix.Equal(approxRound(rad), approxRound(deg)))
}

func approxRound(m *matrix.Dense) *matrix.Dense {
	out := m.Clone()
	for i, v := range out.Data() {
		out.Data()[i] = math.Round(v*1e9) / 1e9
	}

	return out
}

func TestSelectors(t *testing.T) {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	row, err := matrix.SelectRow(m, 1)
	require.NoError(t, err)
	v, _ := row.At(0, 2)
	assert.Equal(t, 6.0, v)

	col, err := matrix.SelectColumn(m, 2)
	require.NoError(t, err)
	v, _ = col.At(1, 0)
	assert.Equal(t, 6.0, v)

	slice, err := matrix.SelectSlice(m, 0, 1, 2, 2)
	require.NoError(t, err)
	v, _ = slice.At(1, 1)
	assert.Equal(t, 6.0, v)

	flat, err := matrix.ElementFlat(m, 4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, flat)
}
