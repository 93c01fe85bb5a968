package expr

import "math"

// eulerGamma is the Euler–Mascheroni constant, not provided by package math.
const eulerGamma = 0.57721566490153286060651209008240243104215933593992

func init() {
	registerBoth("exponentiale", constant(math.E))
	registerBoth("pi", constant(math.Pi))
	registerBoth("eulergamma", constant(eulerGamma))
	registerBoth("infinity", constant(math.Inf(1)))
	registerBoth("notanumber", constant(math.NaN()))
	registerBoth("noop", constant(math.NaN()))
}

func constant(v float64) ScalarFunc {
	return func(_ *Node, _ VariableValues) (float64, error) { return v, nil }
}
