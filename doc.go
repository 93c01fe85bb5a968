// Package daveml is a DAVE-ML flight-dynamics expression-evaluation
// engine for Go.
//
// What is daveml?
//
//	A dependency-graph evaluator for aerospace flight-dynamics models
//	expressed in the DAVE-ML family of declarative XML datasets:
//
//	  • Variable graph: lazy, memoised, dependency-driven evaluation
//	  • MathML parser: lifts a content-MathML arithmetic tree into an
//	    evaluator tree with scalar and matrix dispatch vtables
//	  • ~80-operator evaluator: scalar/matrix arithmetic, linear algebra,
//	    piecewise logic, trigonometry in degrees and radians
//	  • Script transpiler: accelerates scalar-only expressions to infix
//	    script source and back
//	  • Uncertainty engine: Normal-PDF variance via Jacobians, Uniform-PDF
//	    bounds via hypercube vertex enumeration
//
// Everything is organized under focused subpackages:
//
//	cell/        — the tagged scalar/matrix value cell (C1)
//	matrix/      — dense matrix storage and linear-algebra primitives
//	expr/        — the expression tree and its dispatch tables (C2, C3)
//	mathml/      — the content-MathML parser (C4)
//	variable/    — the dependency-graph registry (C5)
//	script/      — the MathML↔infix script transpiler and runner (C6)
//	uncertainty/ — variance and bound propagation (C7)
//	export/      — MathML and script serialisation (C8)
//	engine/      — the top-level Caller API (§6): Load, getters/setters,
//	               unit conversion, uncertainty queries, export
//
//	go get github.com/flightdyn/daveml/engine
package daveml
