package expr

import "math"

func init() {
	registerBoth("plus", evalPlus)
	registerBoth("minus", evalMinus)
	registerBoth("times", evalTimes)
	registerBoth("divide", evalDivide)
	registerBoth("power", evalPower)
	registerBoth("quotient", evalQuotient)
	registerBoth("rem", evalRem)
	registerBoth("factorial", evalFactorial)
	registerBoth("max", evalMax)
	registerBoth("min", evalMin)
	registerBoth("root", evalRoot)
	registerBoth("degree", evalDegreeWrapper)
	registerBoth("abs", unary(math.Abs))
	registerBoth("floor", unary(math.Floor))
	registerBoth("ceiling", unary(math.Ceil))
	registerBoth("fmod", binary(math.Mod))
	registerBoth("sign", evalSign)
	registerBoth("bound", evalBound)
	registerBoth("nearbyint", unary(math.RoundToEven))
}

func unary(f func(float64) float64) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		v, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}

		return f(v), nil
	}
}

func binary(f func(a, b float64) float64) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		a, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}
		b, err := n.childScalar(1, vars)
		if err != nil {
			return 0, err
		}

		return f(a, b), nil
	}
}

// evalPlus is variadic sum (spec.md §4.3: `plus` may take 1..N operands).
func evalPlus(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	sum := 0.0
	for i := range n.Children {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		sum += v
	}

	return sum, nil
}

// evalMinus is unary negation with one child, binary subtraction with two.
func evalMinus(n *Node, vars VariableValues) (float64, error) {
	switch len(n.Children) {
	case 1:
		v, err := n.childScalar(0, vars)

		return -v, err
	case 2:
		a, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}
		b, err := n.childScalar(1, vars)

		return a - b, err
	default:
		return 0, ErrWrongArity
	}
}

// evalTimes is variadic product.
func evalTimes(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	product := 1.0
	for i := range n.Children {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		product *= v
	}

	return product, nil
}

func evalDivide(n *Node, vars VariableValues) (float64, error) {
	a, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	b, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}

	return a / b, nil
}

func evalPower(n *Node, vars VariableValues) (float64, error) {
	base, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	exp, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}

	return math.Pow(base, exp), nil
}

func evalQuotient(n *Node, vars VariableValues) (float64, error) {
	a, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	b, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}

	return math.Trunc(a / b), nil
}

// evalRem implements `rem` as the fractional part of the quotient a/b
// (spec.md §4.3; original_source/Janus/SolveMathML.cpp's `modf(a/b, &quot)`
// fractional-part result) — not IEEE remainder, which disagrees for every
// non-exact division (e.g. rem(7,2): 0.5 here, -1 for math.Remainder).
func evalRem(n *Node, vars VariableValues) (float64, error) {
	a, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	b, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}
	q := a / b

	return q - math.Trunc(q), nil
}

// evalSign implements `sign` as the 2-arg `copysign` spec.md §4.3 defines
// it to be: the magnitude of the first operand with the sign of the second
// (original_source/Janus/SolveMathML.cpp: `copysign(solve(front), solve(back))`).
func evalSign(n *Node, vars VariableValues) (float64, error) {
	mag, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	sgn, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}

	return math.Copysign(mag, sgn), nil
}

// evalFactorial accepts only non-negative integral operands, returning NaN
// otherwise (spec.md §7 RuntimeError policy: domain errors produce NaN
// rather than propagating a Go error).
func evalFactorial(n *Node, vars VariableValues) (float64, error) {
	v, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != math.Trunc(v) {
		return math.NaN(), nil
	}
	result := 1.0
	for i := 2.0; i <= v; i++ {
		result *= i
	}

	return result, nil
}

// evalMax is variadic maximum.
func evalMax(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	best, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(n.Children); i++ {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		if v > best {
			best = v
		}
	}

	return best, nil
}

// evalMin is variadic minimum.
func evalMin(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) == 0 {
		return 0, ErrWrongArity
	}
	best, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(n.Children); i++ {
		v, err := n.childScalar(i, vars)
		if err != nil {
			return 0, err
		}
		if v < best {
			best = v
		}
	}

	return best, nil
}

// evalRoot implements `root`: one operand is a square root; two operands is
// the nth root via the leading `degree` wrapper child, content-MathML's
// `<degree>` qualifier coming before the radicand (original_source/Janus/
// SolveMathML.cpp: `pow(back, 1/front)`, front the degree child, back the
// value).
func evalRoot(n *Node, vars VariableValues) (float64, error) {
	switch len(n.Children) {
	case 1:
		v, err := n.childScalar(0, vars)

		return math.Sqrt(v), err
	case 2:
		deg, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}
		v, err := n.childScalar(1, vars)
		if err != nil {
			return 0, err
		}

		return math.Pow(v, 1.0/deg), nil
	default:
		return 0, ErrWrongArity
	}
}

// evalDegreeWrapper passes through `degree`'s sole child — it exists only
// to annotate `root` and `log`'s second operand (spec.md §4.3).
func evalDegreeWrapper(n *Node, vars VariableValues) (float64, error) {
	return n.childScalar(0, vars)
}

// evalBound implements `bound`: value, lower, upper — clamps value into
// [lower, upper].
func evalBound(n *Node, vars VariableValues) (float64, error) {
	if len(n.Children) != 3 {
		return 0, ErrWrongArity
	}
	v, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	lo, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}
	hi, err := n.childScalar(2, vars)
	if err != nil {
		return 0, err
	}
	if v < lo {
		return lo, nil
	}
	if v > hi {
		return hi, nil
	}

	return v, nil
}
