package variable

import "github.com/flightdyn/daveml/cell"

// Registry owns every Variable in a loaded model and the dense index that
// backs both expr.VariableValues (`ValueOf`) and mathml.VariableResolver
// (`IndexOf`) — the two collaborator interfaces that let package expr and
// package mathml stay free of any import on this package.
type Registry struct {
	vars []*Variable
	byID map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: map[string]int{}}
}

// Add registers v, assigning it the next index. Returns ErrDuplicateVarID if
// v.ID is already registered.
func (r *Registry) Add(v *Variable) (int, error) {
	if _, exists := r.byID[v.ID]; exists {
		return 0, ErrDuplicateVarID
	}
	idx := len(r.vars)
	v.Index = idx
	r.vars = append(r.vars, v)
	r.byID[v.ID] = idx

	return idx, nil
}

// IndexOf implements mathml.VariableResolver and script.Host.
func (r *Registry) IndexOf(id string) (int, bool) {
	idx, ok := r.byID[id]

	return idx, ok
}

// NameOf implements script.Names: the inverse of IndexOf.
func (r *Registry) NameOf(idx int) string {
	v := r.At(idx)
	if v == nil {
		return ""
	}

	return v.ID
}

// IsInput implements script.Host: whether setVarDef may target idx.
func (r *Registry) IsInput(idx int) bool {
	v := r.At(idx)

	return v != nil && v.IsInput
}

// SetScalar implements script.Host: force-set a scalar by index, the
// collaborator surface setVarDef/setVarDefSticky need (package script
// never imports package variable — Registry satisfies script.Host
// structurally).
func (r *Registry) SetScalar(idx int, value float64) error {
	v := r.At(idx)
	if v == nil {
		return ErrUnknownVarID
	}

	return r.SetValue(v, cell.Scalar(value), true)
}

// Count returns the number of registered variables.
func (r *Registry) Count() int { return len(r.vars) }

// At returns the variable at index idx, or nil if out of range.
func (r *Registry) At(idx int) *Variable {
	if idx < 0 || idx >= len(r.vars) {
		return nil
	}

	return r.vars[idx]
}

// ValueOf implements expr.VariableValues: resolve variable idx's current
// value, solving it first if necessary.
func (r *Registry) ValueOf(idx int) (cell.Value, error) {
	v := r.At(idx)
	if v == nil {
		return cell.Value{}, ErrUnknownVarID
	}

	return r.GetValue(v)
}

// IsMatrixVar implements the callback expr.HasMatrixOps needs to decide
// whether a `ci` leaf forces the general (non-scalar-fast-path) evaluator.
func (r *Registry) IsMatrixVar(idx int) bool {
	v := r.At(idx)
	if v == nil {
		return false
	}
	if v.Method == MathML {
		return v.HasMatrixOps
	}

	return v.DeclaredMatrix
}

// CachedVariance returns v's memoised Normal-PDF propagated variance, if
// any has been recorded since the last invalidation (package uncertainty
// is the sole writer, via SetCachedVariance).
func (r *Registry) CachedVariance(v *Variable) (float64, bool) {
	if v.varianceCache == nil {
		return 0, false
	}

	return *v.varianceCache, true
}

// SetCachedVariance records v's propagated variance; invalidateDescendants
// clears it whenever a dependency changes.
func (r *Registry) SetCachedVariance(v *Variable, variance float64) {
	v.varianceCache = &variance
}

// CachedBounds returns v's memoised Uniform-PDF propagated [lower, upper]
// deviation bounds, if any has been recorded since the last invalidation.
func (r *Registry) CachedBounds(v *Variable) ([2]float64, bool) {
	if v.boundsCache == nil {
		return [2]float64{}, false
	}

	return *v.boundsCache, true
}

// SetCachedBounds records v's propagated bounds.
func (r *Registry) SetCachedBounds(v *Variable, lower, upper float64) {
	b := [2]float64{lower, upper}
	v.boundsCache = &b
}

// BuildClosures computes, for every registered variable, its transitive
// ancestor set (inputs it ultimately depends on) and descendant set
// (outputs that ultimately depend on it) — a single fixed-point pass run
// once after every variable's IndependentVarRefs is populated (spec.md
// §4.5's "Dependency bookkeeping").
func (r *Registry) BuildClosures() {
	n := len(r.vars)
	ancestors := make([]map[int]bool, n)
	for i := range ancestors {
		ancestors[i] = map[int]bool{}
	}

	// Fixed point: repeatedly union each variable's direct refs' own
	// ancestor sets (plus the refs themselves) until nothing changes.
	// Small dependency graphs (a handful of variables per model) make the
	// naive O(n^2) iteration count acceptable — see matrix package's own
	// "no Strassen blocking" note for the same small-N reasoning.
	changed := true
	for changed {
		changed = false
		for i, v := range r.vars {
			for _, dep := range v.IndependentVarRefs {
				if !ancestors[i][dep] {
					ancestors[i][dep] = true
					changed = true
				}
				for a := range ancestors[dep] {
					if !ancestors[i][a] {
						ancestors[i][a] = true
						changed = true
					}
				}
			}
		}
	}

	descendants := make([]map[int]bool, n)
	for i := range descendants {
		descendants[i] = map[int]bool{}
	}
	for i, anc := range ancestors {
		for a := range anc {
			descendants[a][i] = true
		}
	}

	for i, v := range r.vars {
		v.AncestorsRef = ancestors[i]
		v.DescendantsRef = descendants[i]
	}
}
