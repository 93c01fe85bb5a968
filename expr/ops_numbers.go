package expr

import "github.com/flightdyn/daveml/cell"

func init() {
	registerSeparate("cn", evalLiteralScalar, evalLiteralGeneral)
	registerSeparate("ci", evalIdentifierScalar, evalIdentifierGeneral)
	registerSeparate("apply", evalApplyScalar, evalApplyGeneral)
	registerSeparate("csymbol", evalApplyScalar, evalApplyGeneral)
}

// evalLiteralScalar returns the `cn` node's stored scalar constant — absent
// for matrix-valued literals, which have no scalar fast path.
func evalLiteralScalar(n *Node, _ VariableValues) (float64, error) {
	if n.Literal == nil {
		return 0, ErrScalarOnly
	}

	return *n.Literal, nil
}

// evalLiteralGeneral returns the `cn` node's stored constant, scalar or
// matrix.
func evalLiteralGeneral(n *Node, _ VariableValues) (cell.Value, error) {
	if n.matLiteral != nil {
		return cell.Matrix(n.matLiteral), nil
	}
	if n.Literal == nil {
		return cell.Value{}, ErrWrongArity
	}

	return cell.Scalar(*n.Literal), nil
}

// evalIdentifierScalar resolves a `ci` leaf and demands a scalar result —
// used only when the owning tree was determined matrix-free at parse time.
func evalIdentifierScalar(n *Node, vars VariableValues) (float64, error) {
	v, err := evalIdentifierGeneral(n, vars)
	if err != nil {
		return 0, err
	}

	return v.AsScalar()
}

// evalIdentifierGeneral resolves a `ci` leaf to its bound variable's
// current value, scalar or matrix.
func evalIdentifierGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	if n.VarIndex < 0 {
		return cell.Value{}, ErrUnboundVariable
	}

	return vars.ValueOf(n.VarIndex)
}

// evalApplyScalar passes through its single child's scalar value — used
// for both `apply` and `csymbol` structural wrapper nodes.
func evalApplyScalar(n *Node, vars VariableValues) (float64, error) {
	return n.childScalar(0, vars)
}

// evalApplyGeneral passes through its single child's value unchanged.
func evalApplyGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	return n.child(0, vars)
}
