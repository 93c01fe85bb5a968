// Package engine assembles a variable.Registry into the per-engine Caller
// API spec.md §6 describes: load, per-variable getters/setters (including
// the SI/metric accessors and the uncertainty/correlation/perturbation
// surface), export, and a warning sink for the once-per-variable
// conditions §7 calls out. It is the top-level facade — the only package
// a host program imports — grounded on the teacher's builder package's
// single-orchestrator-plus-functional-options construction style
// (builder.BuildGraph / builder.BuilderOption).
//
// Parsing a DAVE-ML document into variableDef elements is, per spec.md
// §1, an external collaborator's job ("the file-level loader that
// instantiates the collection of variable definitions"); Load accepts
// that work already done, as a slice of VariableSpec, and does the part
// spec.md keeps in scope: registering every variable, parsing each one's
// MathML subtree (C4) or compiling its script (C6), and building the
// dependency closures (C5).
package engine
