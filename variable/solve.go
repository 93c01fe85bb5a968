package variable

import (
	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/matrix"
)

// GetValue returns v's current value, solving it first if its cache has
// been invalidated (spec.md §4.5 Getter).
func (r *Registry) GetValue(v *Variable) (cell.Value, error) {
	if v.isCurrent {
		return v.value, nil
	}
	if err := r.solve(v); err != nil {
		return cell.Value{}, err
	}

	return v.value, nil
}

// GetScalar is GetValue demanding a scalar result.
func (r *Registry) GetScalar(v *Variable) (float64, error) {
	val, err := r.GetValue(v)
	if err != nil {
		return 0, err
	}

	return val.AsScalar()
}

// GetMatrix is GetValue demanding a matrix result.
func (r *Registry) GetMatrix(v *Variable) (*matrix.Dense, error) {
	val, err := r.GetValue(v)
	if err != nil {
		return nil, err
	}

	return val.AsMatrix()
}

// SetValue applies value to v. Non-Input variables reject the set unless
// forced is true (spec.md §4.5 Setters) — the rejection is also reported
// to the caller as ErrNotSettable so the once-per-variable warning can be
// emitted by the layer that owns the warning sink (package engine).
func (r *Registry) SetValue(v *Variable, value cell.Value, forced bool) error {
	if !forced && !v.IsInput {
		return ErrNotSettable
	}
	if !value.IsMatrix() && (v.MinValue != nil || v.MaxValue != nil) {
		s, _ := value.AsScalar()
		if v.MinValue != nil && s < *v.MinValue {
			s = *v.MinValue
		}
		if v.MaxValue != nil && s > *v.MaxValue {
			s = *v.MaxValue
		}
		value = cell.Scalar(s)
	}
	v.value = value
	v.isCurrent = true
	r.invalidateDescendants(v)

	return nil
}

// Invalidate clears v's own cache (so its next get re-runs solve, rather
// than returning a stale value) and every transitive descendant's, without
// assigning it a value — the form attaching a perturbation needs, since
// the perturbed value is computed by solve itself, not supplied by the
// caller.
func (r *Registry) Invalidate(v *Variable) {
	v.isCurrent = false
	v.varianceCache = nil
	v.boundsCache = nil
	r.invalidateDescendants(v)
}

// invalidateDescendants clears isCurrent (and the uncertainty caches) on
// every transitive descendant of v — called after every successful set,
// per spec.md §4.5's "Any setter clears isCurrent on this variable and
// recursively on every descendant." v itself was already marked current by
// the caller, so only its descendants need clearing here.
func (r *Registry) invalidateDescendants(v *Variable) {
	for idx := range v.DescendantsRef {
		d := r.At(idx)
		if d == nil {
			continue
		}
		d.isCurrent = false
		d.varianceCache = nil
		d.boundsCache = nil
	}
}

// solve runs the procedure of spec.md §4.5: dispatch on method, apply
// output scaling, clamp, and perturbation, then mark current. Each method
// body reads its own dependencies through Registry.GetValue/ValueOf, which
// recursively solves them first — this is what satisfies step 2 ("ensure
// every direct dependency is current") without a separate explicit pass.
func (r *Registry) solve(v *Variable) error {
	if v.inEvaluation {
		// Step 1: break the recursion without doing any work. v.value
		// still holds whatever it last held — the zero-value cell.Value{}
		// (scalar 0) if this is the first ever solve, which is exactly
		// the "0, not NaN" self-referential-script behavior decided in
		// DESIGN.md: it falls out of the zero value rather than needing
		// special-case code.
		return nil
	}
	v.inEvaluation = true
	defer func() { v.inEvaluation = false }()

	result, err := r.compute(v)
	if err != nil {
		return err
	}

	if v.OutputScaleFactor != nil {
		result, err = cell.Mul(result, cell.Scalar(*v.OutputScaleFactor))
		if err != nil {
			return err
		}
	}

	if !result.IsMatrix() && (v.MinValue != nil || v.MaxValue != nil) {
		s, _ := result.AsScalar()
		if v.MinValue != nil && s < *v.MinValue {
			s = *v.MinValue
		}
		if v.MaxValue != nil && s > *v.MaxValue {
			s = *v.MaxValue
		}
		result = cell.Scalar(s)
	}

	if v.Perturbation != nil {
		result, err = applyPerturbation(result, *v.Perturbation)
		if err != nil {
			return err
		}
	}

	v.value = result
	v.isCurrent = true

	return nil
}

// compute dispatches on method (spec.md §4.5 step 3).
func (r *Registry) compute(v *Variable) (cell.Value, error) {
	switch v.Method {
	case Plain:
		if v.Perturbation != nil {
			return v.InitialValue, nil
		}
		if v.isCurrent {
			return v.value, nil
		}

		return v.InitialValue, nil
	case FunctionMethod:
		return r.solveFunction(v)
	case MathML:
		return r.solveMathML(v)
	case Script:
		return r.solveScript(v)
	case Array:
		return r.solveArray(v)
	case Model:
		return cell.Value{}, ErrModelNotSupported
	default:
		return cell.Value{}, ErrModelNotSupported
	}
}

func (r *Registry) solveMathML(v *Variable) (cell.Value, error) {
	if v.Root == nil {
		return cell.Value{}, ErrNoRoot
	}
	if v.HasMatrixOps {
		return v.Root.Eval(r)
	}
	f, err := v.Root.EvalScalar(r)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Scalar(f), nil
}

func (r *Registry) solveScript(v *Variable) (cell.Value, error) {
	if v.ScriptBody == nil {
		return cell.Value{}, ErrNoScript
	}
	result, _, err := v.ScriptBody.Run(r)

	return result, err
}

// solveArray materialises the matrix by reading each back-referenced
// variable's current value and multiplying by its ±1 scale (spec.md §4.5
// step 3), assembled as a column vector.
func (r *Registry) solveArray(v *Variable) (cell.Value, error) {
	data := make([]float64, len(v.ArrayCells))
	for i, ac := range v.ArrayCells {
		dep := r.At(ac.VarIndex)
		if dep == nil {
			return cell.Value{}, ErrUnknownVarID
		}
		s, err := r.GetScalar(dep)
		if err != nil {
			return cell.Value{}, err
		}
		data[i] = s * ac.Scale
	}
	vec, err := matrix.NewVector(data)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(vec), nil
}

func applyPerturbation(v cell.Value, p Perturbation) (cell.Value, error) {
	if v.IsMatrix() {
		return cell.Value{}, ErrMatrixPerturbation
	}
	s, _ := v.AsScalar()
	switch p.Effect {
	case Additive:
		s += p.Value
	case Multiplicative:
		s *= p.Value
	case Percentage:
		s += s * p.Value / 100
	case Absolute:
		s = p.Value
	}

	return cell.Scalar(s), nil
}
