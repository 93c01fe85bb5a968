// Package export serialises an expr.Node tree back to content MathML — the
// inverse of package mathml's Parse — and renders an expression tree as an
// infix script body (package script's surface syntax), grounded on
// original_source/Janus/ExportMathML.cpp/.h's two export paths. Both
// writers build a string by hand the same way package mathml's xmldom.go
// reads one: no ecosystem templating or MathML library appears anywhere
// in the example pack to ground a dependency on.
package export
