package expr

import "math"

const d2r = math.Pi / 180.0
const r2d = 180.0 / math.Pi

func init() {
	registerBoth("sin", unary(math.Sin))
	registerBoth("cos", unary(math.Cos))
	registerBoth("tan", unary(math.Tan))
	registerBoth("sec", unary(func(v float64) float64 { return 1 / math.Cos(v) }))
	registerBoth("csc", unary(func(v float64) float64 { return 1 / math.Sin(v) }))
	registerBoth("cot", unary(func(v float64) float64 { return 1 / math.Tan(v) }))
	registerBoth("arcsin", unary(math.Asin))
	registerBoth("arccos", unary(math.Acos))
	registerBoth("arctan", unary(math.Atan))
	registerBoth("arcsec", unary(func(v float64) float64 { return math.Acos(1 / v) }))
	registerBoth("arccsc", unary(func(v float64) float64 { return math.Asin(1 / v) }))
	registerBoth("arccot", unary(func(v float64) float64 { return math.Atan(1 / v) }))

	registerBoth("sind", degreeIn(math.Sin))
	registerBoth("cosd", degreeIn(math.Cos))
	registerBoth("tand", degreeIn(math.Tan))
	registerBoth("secd", degreeIn(func(v float64) float64 { return 1 / math.Cos(v) }))
	registerBoth("cscd", degreeIn(func(v float64) float64 { return 1 / math.Sin(v) }))
	registerBoth("cotd", degreeIn(func(v float64) float64 { return 1 / math.Tan(v) }))
	registerBoth("arcsind", degreeOut(math.Asin))
	registerBoth("arccosd", degreeOut(math.Acos))
	registerBoth("arctand", degreeOut(math.Atan))
	registerBoth("arcsecd", degreeOut(func(v float64) float64 { return math.Acos(1 / v) }))
	registerBoth("arccscd", degreeOut(func(v float64) float64 { return math.Asin(1 / v) }))
	registerBoth("arccotd", degreeOut(func(v float64) float64 { return math.Atan(1 / v) }))

	registerBoth("atan2", binary(math.Atan2))
	registerBoth("atan2d", evalAtan2d)

	registerBoth("exp", unary(math.Exp))
	registerBoth("ln", unary(math.Log))
	registerBoth("log", evalLog)
	registerBoth("logbase", evalDegreeWrapper)
}

// degreeIn adapts a radian-domain function to take its argument in degrees
// (the `*d` trig variants, spec.md §4.3).
func degreeIn(f func(float64) float64) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		v, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}

		return f(v * d2r), nil
	}
}

// degreeOut adapts a radian-result inverse trig function to return degrees.
func degreeOut(f func(float64) float64) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		v, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}

		return f(v) * r2d, nil
	}
}

func evalAtan2d(n *Node, vars VariableValues) (float64, error) {
	y, err := n.childScalar(0, vars)
	if err != nil {
		return 0, err
	}
	x, err := n.childScalar(1, vars)
	if err != nil {
		return 0, err
	}

	return math.Atan2(y, x) * r2d, nil
}

// evalLog implements `log`: one operand is base 10 by DAVE-ML convention;
// two operands is the leading `logbase`-wrapped base over the value that
// follows it, content-MathML's `<logbase>` qualifier coming before the
// argument (original_source/Janus/SolveMathML.cpp: `log(back)/log(front)`,
// front the base child, back the value).
func evalLog(n *Node, vars VariableValues) (float64, error) {
	switch len(n.Children) {
	case 1:
		v, err := n.childScalar(0, vars)

		return math.Log10(v), err
	case 2:
		base, err := n.childScalar(0, vars)
		if err != nil {
			return 0, err
		}
		v, err := n.childScalar(1, vars)
		if err != nil {
			return 0, err
		}

		return math.Log(v) / math.Log(base), nil
	default:
		return 0, ErrWrongArity
	}
}
