// Package expr implements the expression tree and operator dispatch tables
// behind every MathML-defined variable (spec.md §4.2, §4.3 — components
// C2/C3).
//
// A Node is an operator tag, its children, and a scratch cell.Value used
// both as working storage during descent and as the cached "last value" of
// the node. Two dispatch tables map operator tag to an evaluator function:
// ScalarOps (defined only for scalar arguments, returns float64 directly —
// the fast path) and GeneralOps (the full ~80-operator superset, returns a
// cell.Value and so can produce matrices). A tree's owning variable decides
// once, at load time, whether the whole subtree is provably scalar-only
// (the package-level HasMatrixOps scan) and therefore whether to evaluate it via EvalScalar
// or the always-correct Eval.
//
// Both tables are built once, in init(), as immutable package-level maps —
// the "read-only singleton" option spec.md §9 offers as an alternative to
// passing tables by reference per engine. Since neither table is ever
// mutated after package initialization, it carries none of the downsides
// ordinarily associated with global mutable state.
package expr
