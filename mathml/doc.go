// Package mathml parses a DAVE-ML content-MathML expression subtree into an
// expr.Node tree (spec.md §4.4, component C4).
//
// The parser never touches an XML library directly — it consumes a small
// DOMElement collaborator interface (spec.md §6: "the engine treats the DOM
// as read-only"), so any host representation (encoding/xml, a hand-rolled
// tokenizer, a DOM already loaded for other reasons) can drive it. Package
// xmldom.go supplies a reference encoding/xml-backed adapter for hosts that
// have nothing else.
//
// Parsing proceeds tag-by-tag: `cn`/`ci` are leaves, `apply` reads its first
// child as the operator selector (a plain tag like `<plus/>` or a `csymbol`
// synthesising one, e.g. `other="row"` on a `selector` csymbol becomes
// `selector_row`) and its remaining children as operands, and `piecewise`/
// `piece`/`otherwise` read their own children directly rather than through
// `apply`. An arity policy table (arity.go) validates each operator's
// argument count as the tree is built, surfacing ArityMismatch eagerly
// rather than waiting for evaluation.
package mathml
