package expr

import "errors"

// Sentinel errors returned by operator bodies and the evaluator driver.
var (
	// ErrUnknownOperator indicates a node's tag has no entry in the
	// relevant dispatch table. The parser (package mathml) is expected to
	// catch this at load time; seeing it at evaluation time means a tree
	// was built by hand with a bad tag.
	ErrUnknownOperator = errors.New("expr: unknown operator")

	// ErrScalarOnly indicates a scalar fast-path evaluation was requested
	// of a node that has no scalar body (Node.EvalScalar) or of a matrix
	// `cn` literal. A matrix operand reaching a scalar-only operator body
	// (e.g. quotient, max, the degree-trig family) instead surfaces
	// cell.ErrMixedKind from the operand's AsScalar — spec.md §7 TypeError.
	ErrScalarOnly = errors.New("expr: operator does not accept matrix operands")

	// ErrWrongArity indicates a node has the wrong number of children for
	// its operator at evaluation time. The parser enforces arity at parse
	// time (package mathml); this is a defense-in-depth check for trees
	// built directly against this package.
	ErrWrongArity = errors.New("expr: wrong number of children for operator")

	// ErrNotBoolean indicates a logical operator's operand did not carry
	// the boolean-predicate flag and could not be coerced by a nonzero
	// test either.
	ErrNotBoolean = errors.New("expr: operand is not boolean-typed")

	// ErrUnboundVariable indicates a `ci` leaf's variable index could not
	// be resolved against the VariableValues supplied at evaluation time.
	ErrUnboundVariable = errors.New("expr: unbound variable reference")
)
