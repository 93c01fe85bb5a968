// Package uncertainty implements the engine's Normal-PDF variance and
// Uniform-PDF bound propagation (spec.md §4.7, C7): a direct form that
// reads a variable's own attached PDF, and a propagated form that derives
// the result from the variable's direct-input dependencies — a numeric
// Jacobian and input covariance matrix for Normal, a hypercube vertex
// enumeration for Uniform. Both consult package variable's Registry for
// current values, the dependency graph, and correlation coefficients, and
// cache their result on the Variable until the next invalidation.
package uncertainty
