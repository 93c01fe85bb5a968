// Package script implements the optional MathML→infix script transpiler and
// its runtime (spec.md §4.6, C6): a small hand-rolled infix expression
// language in the shape of the teacher's other tree-walking evaluators —
// tokenizer, recursive-descent parser, and an interpreter that walks the
// resulting AST directly rather than compiling to bytecode, matching how
// package expr walks its own Node tree rather than emitting instructions.
//
// A script source may call the two privileged built-ins setVarDef and
// setVarDefSticky to write other variables as a side effect, and may
// reference its own owning variable's identifier to produce a
// self-assignment result instead of its last expression's value. Compile
// performs the two-pass analysis spec.md §4.6 describes — symbol
// collection and non-sticky save/restore bookkeeping — as a single AST
// walk rather than the textual rewrite the original engine used, which is
// the Go-idiomatic equivalent of the same two-pass contract.
package script
