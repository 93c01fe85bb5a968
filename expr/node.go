package expr

import (
	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/matrix"
)

// ReturnKind classifies the nominal type a node's value carries: Real for
// ordinary numeric/matrix results, Bool for relational/logical results
// (spec.md §3: "return-type kind ∈ {Real, Bool}").
type ReturnKind int

const (
	// Real is the return kind of every arithmetic, transcendental, matrix
	// and piecewise operator.
	Real ReturnKind = iota
	// Bool is the return kind of relational and logical operators.
	Bool
)

// VariableValues is the collaborator a Node needs to resolve `ci` leaves:
// the variable registry (package variable) implements it. Kept as a small
// interface here, rather than importing package variable directly, so expr
// has no dependency on the registry — only the registry depends on expr.
type VariableValues interface {
	// ValueOf returns the current value of the variable at the given
	// 0-based index, triggering its lazy solve if necessary.
	ValueOf(index int) (cell.Value, error)
}

// ScalarFunc is a scalar-only ("fast path") operator body. It is defined
// only for operators that never produce or consume matrix data.
type ScalarFunc func(n *Node, vars VariableValues) (float64, error)

// GeneralFunc is the always-correct operator body: it may read and return
// matrix-valued operands.
type GeneralFunc func(n *Node, vars VariableValues) (cell.Value, error)

// Node is one operator application in an expression tree (spec.md §3, C3).
type Node struct {
	Tag        string        // operator tag, e.g. "plus", "ci", "selector_row"
	Children   []*Node       // ordered child nodes
	Literal    *float64      // set only for scalar `cn` leaves
	matLiteral *matrix.Dense // set only for matrix-valued `cn` leaves
	VarIndex   int           // set (>=0) only for `ci` leaves; -1 otherwise
	Attr       string        // content-symbol annotation, e.g. csymbol's cd/type
	Kind       ReturnKind

	scalarFn  ScalarFunc
	generalFn GeneralFunc

	// cached is the node's value cell from the most recent evaluation; it
	// is mutable scratch during descent and doubles as the "last value"
	// cache spec.md §3 describes.
	cached cell.Value
}

// NewNode constructs a Node for operator tag, binding both dispatch
// pointers from the package tables. Returns ErrUnknownOperator if tag has
// no entry in GeneralOps (the superset table) — package mathml surfaces
// this as ParseError/UnsupportedTag.
func NewNode(tag string, children ...*Node) (*Node, error) {
	general, ok := GeneralOps[tag]
	if !ok {
		return nil, ErrUnknownOperator
	}
	n := &Node{
		Tag:       tag,
		Children:  children,
		VarIndex:  -1,
		generalFn: general,
		Kind:      kindOf(tag),
	}
	if scalar, ok := ScalarOps[tag]; ok {
		n.scalarFn = scalar
	}

	return n, nil
}

// NewLiteral constructs a `cn` leaf holding a constant value.
func NewLiteral(v float64) *Node {
	n, _ := NewNode("cn")
	n.Literal = &v

	return n
}

// NewIdentifier constructs a `ci` leaf bound to variable index idx.
func NewIdentifier(idx int) *Node {
	n, _ := NewNode("ci")
	n.VarIndex = idx

	return n
}

// NewLiteralMatrix constructs a `cn`-like leaf holding a constant matrix —
// used where test fixtures or the mathml parser need a matrix-valued
// literal (the `cn` MathML tag itself is scalar-only per spec.md §4.3;
// this is the in-tree equivalent for `matrix`-typed literal children).
func NewLiteralMatrix(m *matrix.Dense) *Node {
	n, _ := NewNode("cn")
	n.matLiteral = m

	return n
}

// HasScalarFastPath reports whether this node's operator has a scalar-only
// body registered.
func (n *Node) HasScalarFastPath() bool { return n.scalarFn != nil }

// Eval evaluates the node via the general (always-correct) dispatch table,
// recursing depth-first post-order into children as each operator body
// requires (spec.md §5: "dependencies are evaluated in depth-first
// post-order... order among independent siblings is declaration order").
func (n *Node) Eval(vars VariableValues) (cell.Value, error) {
	v, err := n.generalFn(n, vars)
	if err != nil {
		return cell.Value{}, err
	}
	n.cached = v

	return v, nil
}

// EvalScalar evaluates the node via the scalar fast-path table. Callers
// (package variable) must only invoke this when the owning variable's
// whole tree was determined matrix-free at load time (the HasMatrixOps
// scan of this package, run on the root by package engine); calling it on a node lacking a
// scalar body is a programmer error and returns ErrScalarOnly.
func (n *Node) EvalScalar(vars VariableValues) (float64, error) {
	if n.scalarFn == nil {
		return 0, ErrScalarOnly
	}
	v, err := n.scalarFn(n, vars)
	if err != nil {
		return 0, err
	}
	n.cached = cell.Scalar(v)

	return v, nil
}

// Cached returns the value cell from the most recent evaluation of this
// node (spec.md §3: the node's value cell "doubles" as scratch and cache).
func (n *Node) Cached() cell.Value { return n.cached }

// MatrixLiteral returns the matrix held by a `cn`-tagged leaf built via
// NewLiteralMatrix, or nil for every other node — the read side package
// export needs to serialise a matrix literal back to content MathML.
func (n *Node) MatrixLiteral() *matrix.Dense { return n.matLiteral }

// child evaluates Children[i] via Eval, wrapping arity errors.
func (n *Node) child(i int, vars VariableValues) (cell.Value, error) {
	if i >= len(n.Children) {
		return cell.Value{}, ErrWrongArity
	}

	return n.Children[i].Eval(vars)
}

func (n *Node) childScalar(i int, vars VariableValues) (float64, error) {
	if i >= len(n.Children) {
		return 0, ErrWrongArity
	}
	v, err := n.Children[i].Eval(vars)
	if err != nil {
		return 0, err
	}

	return v.AsScalar()
}

func kindOf(tag string) ReturnKind {
	switch tag {
	case "eq", "neq", "gt", "geq", "lt", "leq", "and", "or", "xor", "not":
		return Bool
	default:
		return Real
	}
}
