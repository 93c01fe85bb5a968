package mathml

import "errors"

var (
	// ErrUnsupportedTag reports an element tag (or synthesised csymbol
	// target) outside the fixed operator inventory of spec.md §4.3.
	ErrUnsupportedTag = errors.New("mathml: unsupported operator tag")
	// ErrArityMismatch reports a declared or implied argument count that
	// violates the operator's arity policy.
	ErrArityMismatch = errors.New("mathml: arity mismatch")
	// ErrUnboundIdentifier reports a `ci` leaf whose name does not resolve
	// via the supplied VariableResolver.
	ErrUnboundIdentifier = errors.New("mathml: unbound identifier")
	// ErrNotNumeric reports a `cn` body that does not parse as a float64.
	ErrNotNumeric = errors.New("mathml: cn body is not numeric")
	// ErrMultipleTopLevelOperators reports a `math` root with zero or more
	// than one child operator element (spec.md §7).
	ErrMultipleTopLevelOperators = errors.New("mathml: math root must have exactly one top-level operator")
)
