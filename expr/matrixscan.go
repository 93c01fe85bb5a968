package expr

// HasMatrixOps implements the spec.md §4.4 post-parse scan: a tree is
// scalar-fast-path-eligible only if every node in it has a scalar body
// (operators with no scalar body — determinant, transpose, the selectors,
// mask_*, etc. — are registered via registerGeneralOnly precisely because
// they read or produce matrix data) and no `ci` leaf resolves to a
// matrix-valued variable. isMatrixVar resolves a `ci` leaf's VarIndex to
// "this variable currently holds a matrix," supplied by package variable.
func HasMatrixOps(n *Node, isMatrixVar func(varIndex int) bool) bool {
	if !n.HasScalarFastPath() {
		return true
	}
	if n.Tag == "ci" && isMatrixVar != nil && isMatrixVar(n.VarIndex) {
		return true
	}
	for _, child := range n.Children {
		if HasMatrixOps(child, isMatrixVar) {
			return true
		}
	}

	return false
}
