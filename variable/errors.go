package variable

import "errors"

// Sentinel errors for the variable registry and its solve procedure.
var (
	// ErrDuplicateVarID indicates two variables were registered under the
	// same identifier (spec.md §7 LoadError).
	ErrDuplicateVarID = errors.New("variable: duplicate varID")
	// ErrUnknownVarID indicates a lookup by name or index found nothing.
	ErrUnknownVarID = errors.New("variable: unknown varID")
	// ErrNotSettable indicates setValue was called without forced=true on
	// a non-Input variable (spec.md §4.5 — this is also emitted as a
	// once-per-variable warning, not only an error).
	ErrNotSettable = errors.New("variable: not settable without forced=true")
	// ErrModelNotSupported indicates a Model-method variable was solved;
	// Model collaboration is out of scope (spec.md §4.5 step 3).
	ErrModelNotSupported = errors.New("variable: Model method is out of scope")
	// ErrNoRoot indicates a MathML-method variable has no parsed tree.
	ErrNoRoot = errors.New("variable: MathML variable has no parsed tree")
	// ErrNoScript indicates a Script-method variable has no compiled script.
	ErrNoScript = errors.New("variable: Script variable has no compiled script")
	// ErrNoTable indicates a Function-method variable has no table
	// collaborator attached.
	ErrNoTable = errors.New("variable: Function variable has no table")
	// ErrBreakpointMismatch indicates a gridded table lookup's coordinate
	// count does not match its independent-variable count.
	ErrBreakpointMismatch = errors.New("variable: coordinate count does not match table dimensions")
	// ErrNotStringTable indicates getStringValue was called on a numeric
	// table.
	ErrNotStringTable = errors.New("variable: table is not string-valued")
	// ErrCorrelationMismatch indicates a variable declared a correlation
	// coefficient for a pair already declared, inconsistently, from the
	// other side (spec.md §7 RangeError: "correlation lookup inconsistency").
	ErrCorrelationMismatch = errors.New("variable: inconsistent correlation coefficient declared from both sides")
	// ErrMatrixPerturbation indicates a perturbation was attached to a
	// matrix-valued variable (spec.md §7 TypeError: "matrix perturbation,
	// not yet supported").
	ErrMatrixPerturbation = errors.New("variable: matrix perturbation not supported")
)
