// Package matrix provides the dense row-major matrix type and the linear
// algebra primitives behind the expression engine's matrix operators:
// determinant, inverse, transpose, cross/dot/outer product, row/column/
// diagonal/element/slice selectors, identity construction, Euler-angle
// rotation, and the skew-symmetric form of a 3-vector.
//
// Dense stores its elements in a single flat slice, row-major, matching
// the representation the expression engine's value cells (package cell)
// embed directly: a 1×1 Dense and a bare float64 are interchangeable in
// everything built on top of this package.
//
// LU decomposition (and everything built on it — Determinant, Inverse)
// deliberately omits pivoting: on the small, well-conditioned matrices this
// engine evaluates (rotation, mass, a handful of linear equations) that
// trades a little numerical robustness for fully deterministic output,
// matching the tradeoff documented in spec.md §9.
package matrix
