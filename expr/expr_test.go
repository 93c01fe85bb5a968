package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/matrix"
)

// noVars is a VariableValues with no bound identifiers — every test tree
// here is closed over literals, so ValueOf is never actually called.
type noVars struct{}

func (noVars) ValueOf(int) (cell.Value, error) { return cell.Value{}, expr.ErrUnboundVariable }

func lit(v float64) *expr.Node { return expr.NewLiteral(v) }

func apply(t *testing.T, tag string, children ...*expr.Node) *expr.Node {
	t.Helper()
	n, err := expr.NewNode(tag, children...)
	require.NoError(t, err)

	return n
}

func evalScalar(t *testing.T, n *expr.Node) float64 {
	t.Helper()
	v, err := n.Eval(noVars{})
	require.NoError(t, err)
	f, err := v.AsScalar()
	require.NoError(t, err)

	return f
}

func TestArithmetic(t *testing.T) {
	sum := apply(t, "plus", lit(1), lit(2), lit(3))
	assert.Equal(t, 6.0, evalScalar(t, sum))

	diff := apply(t, "minus", lit(5), lit(2))
	assert.Equal(t, 3.0, evalScalar(t, diff))

	neg := apply(t, "minus", lit(5))
	assert.Equal(t, -5.0, evalScalar(t, neg))

	prod := apply(t, "times", lit(2), lit(3), lit(4))
	assert.Equal(t, 24.0, evalScalar(t, prod))

	pw := apply(t, "power", lit(2), lit(10))
	assert.Equal(t, 1024.0, evalScalar(t, pw))

	bound := apply(t, "bound", lit(15), lit(0), lit(10))
	assert.Equal(t, 10.0, evalScalar(t, bound))
	bound2 := apply(t, "bound", lit(-5), lit(0), lit(10))
	assert.Equal(t, 0.0, evalScalar(t, bound2))
}

// TestSignIsTwoArgCopysign covers spec.md §4.3's "sign (2-arg copysign)":
// magnitude of the first operand, sign of the second.
func TestSignIsTwoArgCopysign(t *testing.T) {
	assert.Equal(t, 3.0, evalScalar(t, apply(t, "sign", lit(3), lit(1))))
	assert.Equal(t, -3.0, evalScalar(t, apply(t, "sign", lit(3), lit(-1))))
	assert.Equal(t, -5.0, evalScalar(t, apply(t, "sign", lit(-5), lit(-1))))
}

// TestRemIsFractionalQuotient covers spec.md §4.3's "rem (fractional part)":
// rem(a,b) = a/b - trunc(a/b), not IEEE remainder.
func TestRemIsFractionalQuotient(t *testing.T) {
	assert.InDelta(t, 0.5, evalScalar(t, apply(t, "rem", lit(7), lit(2))), 1e-12)
	assert.InDelta(t, -0.5, evalScalar(t, apply(t, "rem", lit(-7), lit(2))), 1e-12)
}

// TestRootWithDegree covers `root`'s 2-operand form: the leading `degree`
// child is the root's degree, the second child the radicand.
func TestRootWithDegree(t *testing.T) {
	cube := apply(t, "root", apply(t, "degree", lit(3)), lit(27))
	assert.InDelta(t, 3.0, evalScalar(t, cube), 1e-9)

	sqrt := apply(t, "root", lit(16))
	assert.InDelta(t, 4.0, evalScalar(t, sqrt), 1e-9)
}

func TestPiecewiseClamp(t *testing.T) {
	// piecewise(piece(0, x<0), piece(10, x>10), otherwise(x)) with x=15
	x := lit(15)
	tree := apply(t, "piecewise",
		apply(t, "piece", lit(0), apply(t, "lt", x, lit(0))),
		apply(t, "piece", lit(10), apply(t, "gt", x, lit(10))),
		apply(t, "otherwise", x),
	)
	assert.Equal(t, 10.0, evalScalar(t, tree))
}

func TestPiecewiseNoMatchIsNaN(t *testing.T) {
	tree := apply(t, "piecewise",
		apply(t, "piece", lit(1), apply(t, "gt", lit(0), lit(1))),
	)
	assert.True(t, math.IsNaN(evalScalar(t, tree)))
}

func TestRelational(t *testing.T) {
	assert.Equal(t, 1.0, evalScalar(t, apply(t, "gt", lit(5), lit(2))))
	assert.Equal(t, 0.0, evalScalar(t, apply(t, "eq", lit(5), lit(2))))
	assert.Equal(t, 1.0, evalScalar(t, apply(t, "neq", lit(5), lit(2))))
}

func TestLogical(t *testing.T) {
	assert.Equal(t, 1.0, evalScalar(t, apply(t, "and", lit(1), lit(2), lit(3))))
	assert.Equal(t, 0.0, evalScalar(t, apply(t, "and", lit(1), lit(0))))
	assert.Equal(t, 1.0, evalScalar(t, apply(t, "or", lit(0), lit(0), lit(1))))
	assert.Equal(t, 1.0, evalScalar(t, apply(t, "xor", lit(0), lit(1), lit(0))))
	assert.Equal(t, 0.0, evalScalar(t, apply(t, "xor", lit(1), lit(1))), "xor with two truthy operands is false, not associative parity")
	assert.Equal(t, 0.0, evalScalar(t, apply(t, "xor", lit(0), lit(0))))
}

func TestDegreeTrig(t *testing.T) {
	n := apply(t, "sind", lit(90))
	assert.InDelta(t, 1.0, evalScalar(t, n), 1e-9)

	n2 := apply(t, "atan2d", lit(1), lit(1))
	assert.InDelta(t, 45.0, evalScalar(t, n2), 1e-9)
}

func TestLogWithBase(t *testing.T) {
	n := apply(t, "log", apply(t, "logbase", lit(2)), lit(8))
	assert.InDelta(t, 3.0, evalScalar(t, n), 1e-9)

	n10 := apply(t, "log", lit(1000))
	assert.InDelta(t, 3.0, evalScalar(t, n10), 1e-9)
}

func evalMatrix(t *testing.T, n *expr.Node) *matrix.Dense {
	t.Helper()
	v, err := n.Eval(noVars{})
	require.NoError(t, err)
	m, err := v.AsMatrix()
	require.NoError(t, err)

	return m
}

func TestMaskOpsBroadcastAndMatrixMatrix(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	an := expr.NewLiteralMatrix(a)
	bn := expr.NewLiteralMatrix(b)

	sum := apply(t, "mask_plus", an, bn)
	out := evalMatrix(t, sum)
	v, err := out.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	had := apply(t, "mask_times", an, bn)
	outH := evalMatrix(t, had)
	vh, err := outH.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 32.0, vh)
}

func TestDeterminantTranspose(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{4, 7}, {2, 6}})
	require.NoError(t, err)
	mn := expr.NewLiteralMatrix(m)

	det := apply(t, "determinant", mn)
	assert.InDelta(t, 10.0, evalScalar(t, det), 1e-9)

	tr := apply(t, "transpose", mn)
	out := evalMatrix(t, tr)
	v, err := out.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestVectorAndCrossProducts(t *testing.T) {
	a, err := matrix.NewVector([]float64{1, 0, 0})
	require.NoError(t, err)
	b, err := matrix.NewVector([]float64{0, 1, 0})
	require.NoError(t, err)
	an := expr.NewLiteralMatrix(a)
	bn := expr.NewLiteralMatrix(b)

	cross := apply(t, "vectorproduct", an, bn)
	out := evalMatrix(t, cross)
	v, err := out.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	dot := apply(t, "scalarproduct", an, bn)
	assert.Equal(t, 0.0, evalScalar(t, dot))
}

func TestUnitMatrixAndEulerTransform(t *testing.T) {
	u := apply(t, "unitmatrix", lit(3))
	out := evalMatrix(t, u)
	v, err := out.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	e := apply(t, "eulertransformd", lit(0), lit(0), lit(90))
	outE := evalMatrix(t, e)
	assert.InDelta(t, 0.0, mustAt(t, outE, 0, 0), 1e-9)
	assert.InDelta(t, -1.0, mustAt(t, outE, 0, 1), 1e-9)
}

func mustAt(t *testing.T, m *matrix.Dense, r, c int) float64 {
	t.Helper()
	v, err := m.At(r, c)
	require.NoError(t, err)

	return v
}
