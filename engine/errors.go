package engine

import "errors"

// Sentinel errors for the Caller API (spec.md §7's ParseError/LoadError/
// TypeError/RangeError categories, at the boundary this package owns).
var (
	// ErrUnknownVariable indicates a caller referenced a varID or index
	// outside this engine's registered set.
	ErrUnknownVariable = errors.New("engine: unknown variable")
	// ErrDuplicateVariable surfaces variable.ErrDuplicateVarID at Load
	// time — a LoadError per spec.md §7.
	ErrDuplicateVariable = errors.New("engine: duplicate variable id in load spec")
	// ErrMissingMathMLRoot indicates a VariableSpec declared Method ==
	// variable.MathML but supplied no DOM root to parse.
	ErrMissingMathMLRoot = errors.New("engine: MathML-method variable has no DOM root")
	// ErrMissingScriptSource indicates a VariableSpec declared Method ==
	// variable.Script but supplied no source text to compile.
	ErrMissingScriptSource = errors.New("engine: script-method variable has no source")
	// ErrNoUnitConverter indicates getValueSI/getValueMetric/setValueSI/
	// setValueMetric was called without a UnitConverter configured via
	// WithUnitConverter.
	ErrNoUnitConverter = errors.New("engine: no unit converter configured")
	// ErrNotUniformPDF indicates getUncertaintyValue(isUpper) was called
	// on a variable not carrying (directly or via propagation) a Uniform
	// bound.
	ErrNotUniformPDF = errors.New("engine: variable has no uniform bound")
)
