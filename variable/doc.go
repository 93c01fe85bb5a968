// Package variable implements the variable registry and its lazy,
// memoised evaluation procedure (spec.md §4.5, component C5) — the graph
// that every other component hangs off of: MathML expression trees (package
// expr/mathml) resolve `ci` leaves against it, scripts (package script) bind
// their external symbols to it, and the uncertainty engine (package
// uncertainty) walks its dependency edges to build a Jacobian.
//
// A Variable's value is solved on demand and cached (`isCurrent`); setting
// any variable clears its cache and the cache of every transitive
// descendant. The registry precomputes, once after loading, each
// variable's transitive ancestor and descendant sets so invalidation and
// uncertainty propagation never have to re-walk the graph.
package variable
