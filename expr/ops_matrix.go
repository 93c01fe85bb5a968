package expr

import (
	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/matrix"
)

func init() {
	registerGeneralOnly("determinant", evalDeterminant)
	registerGeneralOnly("transpose", evalTranspose)
	registerGeneralOnly("inverse", evalInverse)
	registerGeneralOnly("vectorproduct", evalVectorProduct)
	registerGeneralOnly("scalarproduct", evalScalarProduct)
	registerGeneralOnly("outerproduct", evalOuterProduct)
	registerGeneralOnly("selector_element", evalSelectorElement)
	registerGeneralOnly("selector_row", evalSelectorRow)
	registerGeneralOnly("selector_column", evalSelectorColumn)
	registerGeneralOnly("selector_diag", evalSelectorDiag)
	registerGeneralOnly("selector_mslice", evalSelectorSlice)
	registerGeneralOnly("unitmatrix", evalUnitMatrix)
	registerGeneralOnly("eulertransform", evalEulerTransform)
	registerGeneralOnly("eulertransformd", evalEulerTransformDeg)
	registerGeneralOnly("cross", evalCross)
	registerGeneralOnly("mask_plus", evalMaskOp(cell.Add))
	registerGeneralOnly("mask_minus", evalMaskOp(cell.Sub))
	registerGeneralOnly("mask_times", evalMaskOp(elementwise(matrix.Hadamard, cell.Mul)))
	registerGeneralOnly("mask_divide", evalMaskOp(elementwise(matrix.ElemDivide, cell.Div)))
}

// elementwise applies matOp when both operands are matrices and falls back
// to the cell-level broadcasting op when at least one is scalar.
func elementwise(matOp func(a, b *matrix.Dense) (*matrix.Dense, error), op func(a, b cell.Value) (cell.Value, error)) func(a, b cell.Value) (cell.Value, error) {
	return func(a, b cell.Value) (cell.Value, error) {
		if !a.IsMatrix() || !b.IsMatrix() {
			return op(a, b)
		}
		am, _ := a.AsMatrix()
		bm, _ := b.AsMatrix()
		out, err := matOp(am, bm)
		if err != nil {
			return cell.Value{}, err
		}

		return cell.Matrix(out), nil
	}
}

// childMatrix evaluates Children[i] and demands a matrix result.
func (n *Node) childMatrix(i int, vars VariableValues) (*matrix.Dense, error) {
	v, err := n.child(i, vars)
	if err != nil {
		return nil, err
	}

	return v.AsMatrix()
}

// vectorOf extracts a flat vector from a row or column Dense, whichever
// shape m happens to be — `vectorproduct`/`scalarproduct`/`cross`'s
// operands are conventionally 1×n or n×1.
func vectorOf(m *matrix.Dense) ([]float64, error) {
	if m.Rows() == 1 {
		return m.Row(0)
	}

	return m.Column(0)
}

func evalDeterminant(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	d, err := matrix.Determinant(m)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Scalar(d), nil
}

func evalTranspose(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(matrix.Transpose(m)), nil
}

func evalInverse(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	inv, err := matrix.Inverse(m)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(inv), nil
}

func evalVectorProduct(n *Node, vars VariableValues) (cell.Value, error) {
	a, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	b, err := n.childMatrix(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	av, err := vectorOf(a)
	if err != nil {
		return cell.Value{}, err
	}
	bv, err := vectorOf(b)
	if err != nil {
		return cell.Value{}, err
	}
	cr, err := matrix.CrossProduct3(av, bv)
	if err != nil {
		return cell.Value{}, err
	}
	vec, err := matrix.NewVector(cr)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(vec), nil
}

func evalScalarProduct(n *Node, vars VariableValues) (cell.Value, error) {
	a, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	b, err := n.childMatrix(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	av, err := vectorOf(a)
	if err != nil {
		return cell.Value{}, err
	}
	bv, err := vectorOf(b)
	if err != nil {
		return cell.Value{}, err
	}
	dot, err := matrix.DotProduct(av, bv)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Scalar(dot), nil
}

func evalOuterProduct(n *Node, vars VariableValues) (cell.Value, error) {
	a, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	b, err := n.childMatrix(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	av, err := vectorOf(a)
	if err != nil {
		return cell.Value{}, err
	}
	bv, err := vectorOf(b)
	if err != nil {
		return cell.Value{}, err
	}
	out, err := matrix.OuterProduct(av, bv)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(out), nil
}

// evalSelectorElement implements `selector_element` in both its (matrix,
// row, col) and (matrix, flat-index) forms, distinguished by arity.
func evalSelectorElement(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	switch len(n.Children) {
	case 2:
		idx, err := n.childScalar(1, vars)
		if err != nil {
			return cell.Value{}, err
		}
		v, err := matrix.ElementFlat(m, int(idx))
		if err != nil {
			return cell.Value{}, err
		}

		return cell.Scalar(v), nil
	case 3:
		row, err := n.childScalar(1, vars)
		if err != nil {
			return cell.Value{}, err
		}
		col, err := n.childScalar(2, vars)
		if err != nil {
			return cell.Value{}, err
		}
		v, err := matrix.Element(m, int(row), int(col))
		if err != nil {
			return cell.Value{}, err
		}

		return cell.Scalar(v), nil
	default:
		return cell.Value{}, ErrWrongArity
	}
}

func evalSelectorRow(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	r, err := n.childScalar(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	out, err := matrix.SelectRow(m, int(r))
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(out), nil
}

func evalSelectorColumn(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	c, err := n.childScalar(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	out, err := matrix.SelectColumn(m, int(c))
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(out), nil
}

func evalSelectorDiag(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 3 {
		return cell.Value{}, ErrWrongArity
	}
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	row, err := n.childScalar(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	col, err := n.childScalar(2, vars)
	if err != nil {
		return cell.Value{}, err
	}
	v, err := matrix.SelectDiag(m, int(row), int(col))
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Scalar(v), nil
}

func evalSelectorSlice(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 5 {
		return cell.Value{}, ErrWrongArity
	}
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	args := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := n.childScalar(i+1, vars)
		if err != nil {
			return cell.Value{}, err
		}
		args[i] = int(v)
	}
	out, err := matrix.SelectSlice(m, args[0], args[1], args[2], args[3])
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(out), nil
}

// evalUnitMatrix implements `unitmatrix`: a single scalar child gives the
// identity matrix's dimension.
func evalUnitMatrix(n *Node, vars VariableValues) (cell.Value, error) {
	dim, err := n.childScalar(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	m, err := matrix.Identity(int(dim))
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(m), nil
}

func evalEulerTransform(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 3 {
		return cell.Value{}, ErrWrongArity
	}
	roll, err := n.childScalar(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	pitch, err := n.childScalar(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	yaw, err := n.childScalar(2, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(matrix.EulerTransform(roll, pitch, yaw)), nil
}

func evalEulerTransformDeg(n *Node, vars VariableValues) (cell.Value, error) {
	if len(n.Children) != 3 {
		return cell.Value{}, ErrWrongArity
	}
	roll, err := n.childScalar(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	pitch, err := n.childScalar(1, vars)
	if err != nil {
		return cell.Value{}, err
	}
	yaw, err := n.childScalar(2, vars)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(matrix.EulerTransformDeg(roll, pitch, yaw)), nil
}

// evalCross implements `cross`: the 3×3 skew-symmetric form of a 3-vector,
// such that the result left-multiplied against another 3-vector reproduces
// `vectorproduct`.
func evalCross(n *Node, vars VariableValues) (cell.Value, error) {
	m, err := n.childMatrix(0, vars)
	if err != nil {
		return cell.Value{}, err
	}
	v, err := vectorOf(m)
	if err != nil {
		return cell.Value{}, err
	}
	skew, err := matrix.SkewSymmetric(v)
	if err != nil {
		return cell.Value{}, err
	}

	return cell.Matrix(skew), nil
}

// evalMaskOp builds the general body for a mask_* operator from an
// elementwise arithmetic op that broadcasts scalar operands (package cell,
// C1) — these are the matrix-aware counterparts of plus/minus/times/divide.
func evalMaskOp(op func(a, b cell.Value) (cell.Value, error)) GeneralFunc {
	return func(n *Node, vars VariableValues) (cell.Value, error) {
		a, err := n.child(0, vars)
		if err != nil {
			return cell.Value{}, err
		}
		b, err := n.child(1, vars)
		if err != nil {
			return cell.Value{}, err
		}

		return op(a, b)
	}
}
