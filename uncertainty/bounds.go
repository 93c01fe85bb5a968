package uncertainty

import (
	"math"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/variable"
)

// Bounds returns v's Uniform-PDF deviation bounds [lower, upper] around its
// nominal value (spec.md §4.7): the direct declared bound if v itself
// carries a Uniform PDF, otherwise the propagated form obtained by
// enumerating the 2ⁿ vertices of the input hypercube. Per the PDF
// invariant (Normal ⇒ uniformBounds = 0; Uniform ⇒ variance = 0), a
// variable carrying a Normal PDF always reports bounds [0, 0].
func Bounds(r *variable.Registry, v *variable.Variable) (float64, float64, error) {
	if v.PDF != nil && v.PDF.Kind == variable.PDFNormal {
		return 0, 0, nil
	}
	if v.PDF != nil && v.PDF.Kind == variable.PDFUniform {
		return directBounds(r, v, *v.PDF)
	}
	if cached, ok := r.CachedBounds(v); ok {
		return cached[0], cached[1], nil
	}

	lower, upper, err := propagatedBounds(r, v)
	if err != nil {
		return 0, 0, err
	}
	r.SetCachedBounds(v, lower, upper)

	return lower, upper, nil
}

// directBounds implements the declared Uniform bound: symmetric [-b, +b]
// when only one bound was declared, or the asymmetric [-b0, +b1] form when
// both were (spec.md §4.7), each magnitude passed through effectTerm the
// same way directVariance scales a Normal bound by Effect.
func directBounds(r *variable.Registry, v *variable.Variable, pdf variable.PDF) (float64, float64, error) {
	value, err := r.GetScalar(v)
	if err != nil {
		return 0, 0, err
	}

	lowerMag := effectTerm(pdf.Effect, pdf.BoundLower, value)
	upperMag := lowerMag
	if pdf.HasUpper {
		upperMag = effectTerm(pdf.Effect, pdf.BoundUpper, value)
	}

	return -lowerMag, upperMag, nil
}

// propagatedBounds enumerates every vertex of the hypercube formed by each
// direct input's own Uniform deviation bounds (one of its two extremes per
// input, 2ⁿ combinations total), evaluates v at each, and tracks the
// minimum and maximum deviation from v's nominal value (spec.md §4.7: "2ⁿ
// vertices of the input hypercube"). Inputs are restored to their nominal
// value once every vertex has been visited.
func propagatedBounds(r *variable.Registry, v *variable.Variable) (float64, float64, error) {
	inputs := v.IndependentVarRefs
	n := len(inputs)
	if n == 0 {
		return 0, 0, nil
	}

	nominals := make([]float64, n)
	deltas := make([][2]float64, n)
	for i, idx := range inputs {
		input := r.At(idx)
		nominal, err := r.GetScalar(input)
		if err != nil {
			return 0, 0, err
		}
		lower, upper, err := Bounds(r, input)
		if err != nil {
			return 0, 0, err
		}
		nominals[i] = nominal
		deltas[i] = [2]float64{lower, upper}
	}

	nominalValue, err := r.GetScalar(v)
	if err != nil {
		return 0, 0, err
	}

	minDev := math.Inf(1)
	maxDev := math.Inf(-1)

	vertices := 1 << uint(n)
	for mask := 0; mask < vertices; mask++ {
		for i, idx := range inputs {
			input := r.At(idx)
			corner := deltas[i][0]
			if mask&(1<<uint(i)) != 0 {
				corner = deltas[i][1]
			}
			if err := r.SetValue(input, cell.Scalar(nominals[i]+corner), true); err != nil {
				return 0, 0, err
			}
		}

		value, err := r.GetScalar(v)
		if err != nil {
			return 0, 0, err
		}
		dev := value - nominalValue
		if dev < minDev {
			minDev = dev
		}
		if dev > maxDev {
			maxDev = dev
		}
	}

	for i, idx := range inputs {
		input := r.At(idx)
		if err := r.SetValue(input, cell.Scalar(nominals[i]), true); err != nil {
			return 0, 0, err
		}
	}

	return minDev, maxDev, nil
}
