package uncertainty

import (
	"math"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/variable"
)

// machineEpsilon is the IEEE-754 double's unit roundoff — the finite-
// difference step spec.md §4.7 specifies is "1000·ε" of it.
const machineEpsilon = 2.220446049250313e-16

const jacobianStepScale = 1000

// Variance returns the Normal-PDF variance of v (spec.md §4.7): the direct
// formula if v itself carries a Normal PDF, otherwise the propagated
// Jacobian/covariance form over v's direct inputs. Per the PDF invariant
// (Normal ⇒ uniformBounds = 0; Uniform ⇒ variance = 0), a variable
// carrying a Uniform PDF always reports variance 0.
func Variance(r *variable.Registry, v *variable.Variable) (float64, error) {
	if v.PDF != nil && v.PDF.Kind == variable.PDFUniform {
		return 0, nil
	}
	if v.PDF != nil && v.PDF.Kind == variable.PDFNormal {
		return directVariance(r, v, *v.PDF)
	}
	if cached, ok := r.CachedVariance(v); ok {
		return cached, nil
	}

	variance, err := propagatedVariance(r, v)
	if err != nil {
		return 0, err
	}
	r.SetCachedVariance(v, variance)

	return variance, nil
}

// directVariance implements "(bound · scale / nSigmas)²" — scale is 1 for
// Additive (the bound is used as-is), the current value for
// Multiplicative, current value/100 for Percentage; Absolute replaces the
// whole bound·scale term with |value − bound| directly, since Absolute's
// bound is already expressed in the variable's own units.
func directVariance(r *variable.Registry, v *variable.Variable, pdf variable.PDF) (float64, error) {
	value, err := r.GetScalar(v)
	if err != nil {
		return 0, err
	}

	ratio := effectTerm(pdf.Effect, pdf.BoundLower, value) / pdf.NSigmas

	return ratio * ratio, nil
}

// effectTerm scales a declared PDF bound by its Effect against the
// variable's current value (spec.md §4.7) — shared by directVariance's
// Normal term and directBounds' Uniform term, since both are "bound ·
// scale" with the same scale rule: 1 for Additive, the current value for
// Multiplicative, current value/100 for Percentage; Absolute replaces the
// whole product with |value − bound| directly, since an Absolute bound is
// already expressed in the variable's own units.
func effectTerm(effect variable.Effect, bound, value float64) float64 {
	switch effect {
	case variable.Multiplicative:
		return bound * value
	case variable.Percentage:
		return bound * value / 100
	case variable.Absolute:
		return math.Abs(value - bound)
	default: // Additive
		return bound
	}
}

// propagatedVariance computes JᵀΣJ over v's direct inputs: a central-
// difference Jacobian entry per input, and a covariance matrix whose
// diagonal is each input's own (recursively propagated) variance and
// whose off-diagonal is ρᵢⱼ·√(σᵢ²σⱼ²), ρ sourced from either input's
// declared correlation list (spec.md §4.7).
func propagatedVariance(r *variable.Registry, v *variable.Variable) (float64, error) {
	inputs := v.IndependentVarRefs
	n := len(inputs)
	if n == 0 {
		return 0, nil
	}

	jac, err := jacobian(r, v, inputs)
	if err != nil {
		return 0, err
	}

	variances := make([]float64, n)
	for i, idx := range inputs {
		input := r.At(idx)
		vi, err := Variance(r, input)
		if err != nil {
			return 0, err
		}
		variances[i] = vi
	}

	var total float64
	for i := range inputs {
		for j := range inputs {
			var sigmaIJ float64
			if i == j {
				sigmaIJ = variances[i]
			} else {
				rho, err := r.CorrelationCoefficient(inputs[i], inputs[j])
				if err != nil {
					return 0, err
				}
				sigmaIJ = rho * math.Sqrt(variances[i]*variances[j])
			}
			total += jac[i] * sigmaIJ * jac[j]
		}
	}

	return total, nil
}

// jacobian computes v's central-difference partial derivative with
// respect to each of inputs, perturbing one input at a time and restoring
// it to its nominal value before moving to the next (spec.md §4.7:
// "evaluating the variable twice per input").
func jacobian(r *variable.Registry, v *variable.Variable, inputs []int) ([]float64, error) {
	jac := make([]float64, len(inputs))
	for i, idx := range inputs {
		input := r.At(idx)
		nominal, err := r.GetScalar(input)
		if err != nil {
			return nil, err
		}

		h := jacobianStepScale * machineEpsilon * math.Max(math.Abs(nominal), 1)

		if err := r.SetValue(input, cell.Scalar(nominal+h), true); err != nil {
			return nil, err
		}
		plus, err := r.GetScalar(v)
		if err != nil {
			return nil, err
		}

		if err := r.SetValue(input, cell.Scalar(nominal-h), true); err != nil {
			return nil, err
		}
		minus, err := r.GetScalar(v)
		if err != nil {
			return nil, err
		}

		if err := r.SetValue(input, cell.Scalar(nominal), true); err != nil {
			return nil, err
		}

		jac[i] = (plus - minus) / (2 * h)
	}

	return jac, nil
}
