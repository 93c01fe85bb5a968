package expr

import (
	"math"

	"github.com/flightdyn/daveml/cell"
)

func init() {
	registerSeparate("piece", scalarFromGeneral(evalPieceGeneral), evalPieceGeneral)
	registerSeparate("otherwise", scalarFromGeneral(evalOtherwiseGeneral), evalOtherwiseGeneral)
	registerSeparate("piecewise", scalarFromGeneral(evalPiecewiseGeneral), evalPiecewiseGeneral)
}

// scalarFromGeneral adapts a GeneralFunc into a ScalarFunc by delegating
// and demanding the result be scalar. Every recursive descent already goes
// through Node.Eval (general) regardless of whether the root was entered
// via EvalScalar or Eval (see node.go's child/childScalar helpers), so
// this loses no information about child Test flags — it only means the
// piecewise family never allocates a distinct scalar interpreter.
func scalarFromGeneral(general GeneralFunc) ScalarFunc {
	return func(n *Node, vars VariableValues) (float64, error) {
		v, err := general(n, vars)
		if err != nil {
			return 0, err
		}

		return v.AsScalar()
	}
}

// evalPieceGeneral implements `piece`: value, predicate. Its own Test flag
// becomes the predicate's truth value; its numeric payload is the value
// child's payload, unchanged (spec.md §4.3).
func evalPieceGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 2 {
		return cell.Value{}, ErrWrongArity
	}
	value, err := n.child(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	pred, err := n.child(1, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return value.WithTest(pred.Test()), nil
}

// evalOtherwiseGeneral implements `otherwise`: value, always true.
func evalOtherwiseGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 1 {
		return cell.Value{}, ErrWrongArity
	}
	value, err := n.child(0, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return value.WithTest(true), nil
}

// evalPiecewiseGeneral implements `piecewise`: the first child (each
// expected to be a `piece` or `otherwise` node) whose Test is true
// supplies the result; if none match, the result is NaN (spec.md §4.3,
// §7 RuntimeError — "piecewise with no matching piece returns NaN").
func evalPiecewiseGeneral(n *Node, vars VariableValues) (cell.Value, error) {
	for _, child := range n.Children {
		v, err := child.Eval(vars)
		if err != nil {
			return cell.Value{}, err
		}
		if v.Test() {
			return v, nil
		}
	}

	return cell.Scalar(math.NaN()), nil
}
