package export

import "errors"

// ErrMalformedTree indicates a node's children do not match what its own
// Tag and arity rules promise — e.g. a `piece` without exactly two children
// or a `cn` leaf with no literal. Package mathml's parser rejects such trees
// at parse time; expr.NewNode does not check arity, so a tree built by hand
// can reach this error.
var ErrMalformedTree = errors.New("export: malformed expression tree")
