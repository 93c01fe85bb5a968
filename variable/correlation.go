package variable

// CorrelationCoefficient returns the declared correlation between variables
// i and j (spec.md §4.7's covariance assembly needs off-diagonal rho terms).
// A pair may be declared from either side, or both; both-sides declarations
// must agree or the model is inconsistent (ErrCorrelationMismatch). An
// undeclared pair correlates at 0. Self-correlation is always 1.
func (r *Registry) CorrelationCoefficient(i, j int) (float64, error) {
	if i == j {
		return 1, nil
	}

	vi, vj := r.At(i), r.At(j)
	if vi == nil || vj == nil {
		return 0, ErrUnknownVarID
	}

	rhoFromI, okI := correlationLookup(vi, j)
	rhoFromJ, okJ := correlationLookup(vj, i)

	switch {
	case okI && okJ:
		if rhoFromI != rhoFromJ {
			return 0, ErrCorrelationMismatch
		}

		return rhoFromI, nil
	case okI:
		return rhoFromI, nil
	case okJ:
		return rhoFromJ, nil
	default:
		return 0, nil
	}
}

func correlationLookup(v *Variable, other int) (float64, bool) {
	if v.PDF == nil || v.PDF.Correlation == nil {
		return 0, false
	}
	rho, ok := v.PDF.Correlation[other]

	return rho, ok
}
