// Package cell provides the Value type: a small tagged union of scalar and
// dense row-major matrix data, plus the boolean "test" flag threaded through
// relational, logical and piecewise expression nodes.
//
// A Value never carries both a scalar and a matrix at once. Assigning a
// matrix whose total element count is 1 collapses it to scalar form — this
// is the single place that collapse rule is enforced, so every consumer
// (expr, variable, script) gets it for free.
package cell
