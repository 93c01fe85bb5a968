package expr

import (
	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/matrix"
)

func init() {
	registerSeparate("eq", nil, evalEqGeneral)
	registerSeparate("neq", nil, evalNeqGeneral)
	registerBoth("gt", evalOrdered(func(a, b float64) bool { return a > b }))
	registerBoth("geq", evalOrdered(func(a, b float64) bool { return a >= b }))
	registerBoth("lt", evalOrdered(func(a, b float64) bool { return a < b }))
	registerBoth("leq", evalOrdered(func(a, b float64) bool { return a <= b }))
}

// evalOrdered builds a scalar ordering operator's body. Ordering is
// undefined for matrices, so a matrix operand surfaces cell.ErrMixedKind
// through childScalar/AsScalar rather than silently comparing shapes.
func evalOrdered(cmp func(a, b float64) bool) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		a, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}
		b, err := n.childScalar(1, vars)
		if err != nil {
			return 0, err
		}
		if cmp(a, b) {
			return 1, nil
		}

		return 0, nil
	}
}

// evalEqGeneral implements `eq`: scalar==scalar by value, matrix==matrix by
// same-shape elementwise equality, and mixed scalar/matrix operands always
// unequal.
func evalEqGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	a, err := n.child(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	b, err := n.child(1, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Bool(valuesEqual(a, b)), nil
}

// evalNeqGeneral implements `neq` as the negation of `eq`.
func evalNeqGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	v, err := evalEqGeneral(n, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Bool(!v.Test()), nil
}

func valuesEqual(a, b cell.Value) bool {
	if a.IsMatrix() != b.IsMatrix() {
		return false
	}
	if !a.IsMatrix() {
		av, _ := a.AsScalar()
		bv, _ := b.AsScalar()

		return av == bv
	}
	am, _ := a.AsMatrix()
	bm, _ := b.AsMatrix()

	return matrix.Equal(am, bm)
}
