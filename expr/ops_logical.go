package expr

func init() {
	registerBoth("and", evalAnd)
	registerBoth("or", evalOr)
	registerBoth("xor", evalXor)
	registerBoth("not", evalNot)
}

// evalAnd implements variadic `and`, short-circuiting on the first falsy
// operand. Numeric (non-Bool) operands pass through nonzero-test.
func evalAnd(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	for i := range n.Children {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 0, nil
		}
	}

	return 1, nil
}

// evalOr implements variadic `or`, short-circuiting on the first truthy
// operand.
func evalOr(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	for i := range n.Children {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		if v != 0 {
			return 1, nil
		}
	}

	return 0, nil
}

// evalXor implements `xor` over any number of operands as "exactly one
// operand is truthy" — not the associative parity XOR a 2-ary reading
// would suggest, per the explicit resolution of spec.md §9's open
// question on N-ary xor semantics.
func evalXor(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	truthy := 0
	for i := range n.Children {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		if v != 0 {
			truthy++
		}
	}
	if truthy == 1 {
		return 1, nil
	}

	return 0, nil
}

// evalNot implements unary `not`.
func evalNot(n *Node, vars VariableValues) (float64, error) {
	v, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 1, nil
	}

	return 0, nil
}
