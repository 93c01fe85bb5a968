package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flightdyn/daveml/expr"
)

// infixOperators gives the script-source rendering of the small set of
// expr tags that read as native infix operators rather than function
// calls (spec.md §4.6's "MathML→infix script transpiler").
var infixOperators = map[string]string{
	"plus":   "+",
	"minus":  "-",
	"times":  "*",
	"divide": "/",
	"eq":     "==",
	"neq":    "!=",
	"lt":     "<",
	"leq":    "<=",
	"gt":     ">",
	"geq":    ">=",
	"and":    "&&",
	"or":     "||",
}

// Names resolves a ci leaf's variable index to the identifier Transpile
// should emit.
type Names interface {
	NameOf(index int) string
}

// Transpile renders root as script source text, the accelerated-path
// counterpart of the MathML tree it was parsed from (spec.md §4.6). Any
// node lacking a scalar fast path — every matrix operator, by construction
// (package expr's HasMatrixOps walk) — makes the whole tree non-
// transpilable, matching "Matrix-valued variables always use MathML."
func Transpile(root *expr.Node, names Names) (string, error) {
	s, err := transpileNode(root, names)
	if err != nil {
		return "", err
	}

	return s + ";", nil
}

func transpileNode(n *expr.Node, names Names) (string, error) {
	if !n.HasScalarFastPath() {
		return "", fmt.Errorf("%w: operator %q has no scalar form", ErrNotTranspilable, n.Tag)
	}

	switch n.Tag {
	case "cn":
		if n.Literal == nil {
			return "", ErrNotTranspilable
		}

		return strconv.FormatFloat(*n.Literal, 'g', -1, 64), nil
	case "ci":
		return names.NameOf(n.VarIndex), nil
	case "apply", "csymbol":
		return transpileNode(n.Children[0], names)
	case "piecewise":
		return transpilePiecewise(n, names)
	case "piece", "otherwise":
		return "", fmt.Errorf("%w: %q outside piecewise", ErrNotTranspilable, n.Tag)
	case "not":
		x, err := transpileNode(n.Children[0], names)
		if err != nil {
			return "", err
		}

		return "!(" + x + ")", nil
	case "minus":
		return transpileMinus(n, names)
	}

	if sym, ok := infixOperators[n.Tag]; ok {
		return transpileInfix(n, sym, names)
	}

	return transpileCall(n, names)
}

func transpileInfix(n *expr.Node, sym string, names Names) (string, error) {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		s, err := transpileNode(c, names)
		if err != nil {
			return "", err
		}
		parts[i] = "(" + s + ")"
	}

	return strings.Join(parts, sym), nil
}

func transpileMinus(n *expr.Node, names Names) (string, error) {
	if len(n.Children) == 1 {
		x, err := transpileNode(n.Children[0], names)
		if err != nil {
			return "", err
		}

		return "-(" + x + ")", nil
	}

	return transpileInfix(n, "-", names)
}

func transpileCall(n *expr.Node, names Names) (string, error) {
	if _, ok := builtins[n.Tag]; !ok {
		return "", fmt.Errorf("%w: no script builtin for %q", ErrNotTranspilable, n.Tag)
	}
	args := make([]string, len(n.Children))
	for i, c := range n.Children {
		s, err := transpileNode(c, names)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	return n.Tag + "(" + strings.Join(args, ",") + ")", nil
}

// transpilePiecewise renders piece/otherwise children as a right-nested
// ternary chain: piece(value,pred) -> "pred ? value : rest", otherwise ->
// the terminal value, or NaN if absent (mirroring expr's own
// evalPiecewiseGeneral fallback).
func transpilePiecewise(n *expr.Node, names Names) (string, error) {
	var build func(i int) (string, error)
	build = func(i int) (string, error) {
		if i >= len(n.Children) {
			return "(0/0)", nil
		}
		child := n.Children[i]
		switch child.Tag {
		case "piece":
			value, err := transpileNode(child.Children[0], names)
			if err != nil {
				return "", err
			}
			pred, err := transpileNode(child.Children[1], names)
			if err != nil {
				return "", err
			}
			rest, err := build(i + 1)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("((%s)!=0 ? (%s) : (%s))", pred, value, rest), nil
		case "otherwise":
			return transpileNode(child.Children[0], names)
		default:
			return "", fmt.Errorf("%w: piecewise child %q", ErrNotTranspilable, child.Tag)
		}
	}

	return build(0)
}
