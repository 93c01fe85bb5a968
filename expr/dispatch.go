package expr

import "github.com/flightdyn/daveml/cell"

// ScalarOps is the scalar-only dispatch table (spec.md §4.2's "scalar
// registry"): operators defined for scalar arguments, keyed by tag.
var ScalarOps = map[string]ScalarFunc{}

// GeneralOps is the scalar-or-matrix dispatch table (spec.md §4.2's
// "general registry"): every operator in the inventory, a strict superset
// of ScalarOps's keyspace.
var GeneralOps = map[string]GeneralFunc{}

// registerBoth installs the same-named operator into both tables — used
// for every operator defined identically on scalars, where the general
// body simply wraps the scalar one in a cell.Value. Bool-kind operators
// (relational, logical) get their Test flag set from the scalar result.
func registerBoth(tag string, scalar ScalarFunc) {
	ScalarOps[tag] = scalar
	GeneralOps[tag] = func(n *Node, vars VariableValues) (cell.Value, error) {
		v, err := scalar(n, vars)
		if err != nil {
			return cell.Value{}, err
		}
		if n.Kind == Bool {
			return cell.Bool(v != 0), nil
		}

		return cell.Scalar(v), nil
	}
}

// registerGeneralOnly installs an operator that has no scalar-only body
// (matrix-native operators: determinant, transpose, inverse, selectors,
// etc.).
func registerGeneralOnly(tag string, general GeneralFunc) {
	GeneralOps[tag] = general
}

// registerSeparate installs distinct scalar and general bodies — used when
// the general body cannot be derived mechanically from the scalar one,
// e.g. `ci` (a variable reference may itself be matrix-valued).
func registerSeparate(tag string, scalar ScalarFunc, general GeneralFunc) {
	if scalar != nil {
		ScalarOps[tag] = scalar
	}
	GeneralOps[tag] = general
}
