package export

import (
	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/script"
)

// Script renders root as an infix script body (package script's surface
// syntax) wherever its operators all have a scalar fast path — the
// complementary export path original_source/Janus/ExportMathML.cpp does
// not need, since the original's script form lives in a different file
// (VariableDefExprTkScript.cpp) rather than its MathML exporter; this
// module keeps both exporters under one façade since both start from the
// same expr.Node tree. Returns script.ErrNotTranspilable if root (or any
// descendant) requires the general scalar-or-matrix evaluator.
func Script(root *expr.Node, names script.Names) (string, error) {
	return script.Transpile(root, names)
}
