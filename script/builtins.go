package script

import "math"

// builtinFunc is a script-callable function operating purely on float64
// scalars — the script runtime's accelerated equivalent of package expr's
// ScalarFunc, minus the Node/VariableValues plumbing a tree-walking
// operator body needs, since a script function call's arguments are
// already-evaluated scalars (spec.md §4.6: script is the "simple
// expressions" accelerated path, not a general matrix-capable one).
type builtinFunc func(args []float64) (float64, error)

// builtins mirrors a deliberately-scoped subset of package expr's scalar
// operator set (ops_arithmetic.go, ops_transcendental.go). Transpile looks
// an expr tag up here by name, so only entries named after an expr tag are
// reachable from a transpiled tree; the others (sqrt, asin, acos, atan, …)
// are available to hand-written scripts only.
var builtins = map[string]builtinFunc{
	"abs":       unaryBuiltin(math.Abs),
	"floor":     unaryBuiltin(math.Floor),
	"ceiling":   unaryBuiltin(math.Ceil),
	"sign":      binaryBuiltin(math.Copysign),
	"nearbyint": unaryBuiltin(math.RoundToEven),
	"sqrt":      unaryBuiltin(math.Sqrt),
	"exp":       unaryBuiltin(math.Exp),
	"ln":        unaryBuiltin(math.Log),
	"sin":       unaryBuiltin(math.Sin),
	"cos":       unaryBuiltin(math.Cos),
	"tan":       unaryBuiltin(math.Tan),
	"asin":      unaryBuiltin(math.Asin),
	"acos":      unaryBuiltin(math.Acos),
	"atan":      unaryBuiltin(math.Atan),
	"sind":      unaryBuiltin(func(v float64) float64 { return math.Sin(v * d2r) }),
	"cosd":      unaryBuiltin(func(v float64) float64 { return math.Cos(v * d2r) }),
	"tand":      unaryBuiltin(func(v float64) float64 { return math.Tan(v * d2r) }),
	"asind":     unaryBuiltin(func(v float64) float64 { return math.Asin(v) * r2d }),
	"acosd":     unaryBuiltin(func(v float64) float64 { return math.Acos(v) * r2d }),
	"atand":     unaryBuiltin(func(v float64) float64 { return math.Atan(v) * r2d }),
	"fact":      unaryBuiltin(factBuiltin),

	"pow":       binaryBuiltin(math.Pow),
	"atan2":     binaryBuiltin(math.Atan2),
	"atan2d":    binaryBuiltin(func(a, b float64) float64 { return math.Atan2(a, b) * r2d }),
	"quotient":  binaryBuiltin(func(a, b float64) float64 { return math.Trunc(a / b) }),
	"rem":       binaryBuiltin(func(a, b float64) float64 { q := a / b; return q - math.Trunc(q) }),
	"copysign":  binaryBuiltin(math.Copysign),
	// root/log take their degree/base qualifier as the first argument and
	// the value as the second, matching expr.evalRoot/evalLog's
	// content-MathML argument order (degree-or-base child before the value
	// child) so script and MathML evaluation agree.
	"root": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Sqrt(args[0]), nil
		case 2:
			return math.Pow(args[1], 1/args[0]), nil
		default:
			return 0, ErrWrongArgCount
		}
	},
	"log": func(args []float64) (float64, error) {
		switch len(args) {
		case 1:
			return math.Log10(args[0]), nil
		case 2:
			return math.Log(args[1]) / math.Log(args[0]), nil
		default:
			return 0, ErrWrongArgCount
		}
	},
	"bound": func(args []float64) (float64, error) {
		if len(args) != 3 {
			return 0, ErrWrongArgCount
		}
		v, lo, hi := args[0], args[1], args[2]
		if v < lo {
			return lo, nil
		}
		if v > hi {
			return hi, nil
		}

		return v, nil
	},
	"linterp": func(args []float64) (float64, error) {
		if len(args) != 5 {
			return 0, ErrWrongArgCount
		}
		x, xl, xh, yl, yh := args[0], args[1], args[2], args[3], args[4]
		if xl < xh {
			if x <= xl {
				return yl, nil
			}
			if x >= xh {
				return yh, nil
			}
		} else if xl > xh {
			if x >= xl {
				return yl, nil
			}
			if x <= xh {
				return yh, nil
			}
		}

		return (yh-yl)/(xh-xl)*(x-xl) + yl, nil
	},
	"max": func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, ErrWrongArgCount
		}
		m := args[0]
		for _, a := range args[1:] {
			if a > m {
				m = a
			}
		}

		return m, nil
	},
	"min": func(args []float64) (float64, error) {
		if len(args) == 0 {
			return 0, ErrWrongArgCount
		}
		m := args[0]
		for _, a := range args[1:] {
			if a < m {
				m = a
			}
		}

		return m, nil
	},
}

const (
	d2r = math.Pi / 180
	r2d = 180 / math.Pi
)

func unaryBuiltin(f func(float64) float64) builtinFunc {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, ErrWrongArgCount
		}

		return f(args[0]), nil
	}
}

func binaryBuiltin(f func(a, b float64) float64) builtinFunc {
	return func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, ErrWrongArgCount
		}

		return f(args[0], args[1]), nil
	}
}

func factBuiltin(v float64) float64 {
	if v < 0 || v != math.Trunc(v) {
		return math.NaN()
	}
	result := 1.0
	for i := 2.0; i <= v; i++ {
		result *= i
	}

	return result
}
