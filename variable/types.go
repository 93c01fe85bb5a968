package variable

import (
	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/script"
)

// Method selects how a variable's value is produced (spec.md §4.5 step 3).
type Method int

const (
	// Plain is a bare input/constant, no formula.
	Plain Method = iota
	// FunctionMethod delegates to an interpolation table collaborator.
	FunctionMethod
	// MathML evaluates a parsed expr.Node tree.
	MathML
	// Script runs a compiled script (package script).
	Script
	// Array materialises a matrix from other variables' current values.
	Array
	// Model is an out-of-scope collaborator (spec.md §4.5 step 3).
	Model
)

// Effect classifies how a perturbation or direct PDF bound combines with a
// variable's nominal value (spec.md §4.7).
type Effect int

const (
	Additive Effect = iota
	Multiplicative
	Percentage
	Absolute
)

// PDFKind is the shape of a variable's attached uncertainty distribution.
type PDFKind int

const (
	PDFNone PDFKind = iota
	PDFNormal
	PDFUniform
)

// PDF is the uncertainty distribution a variable may carry at most one of
// (spec.md §4.7). NSigmas applies only to PDFNormal; BoundLower/BoundUpper
// hold one or two declared bounds depending on kind.
type PDF struct {
	Kind        PDFKind
	NSigmas     float64
	BoundLower  float64
	BoundUpper  float64
	HasUpper    bool
	Effect      Effect
	Correlation map[int]float64 // otherVarIndex -> rho, as declared by this variable
}

// Perturbation is an offset of any Effect kind, applied in Solve step 6 on
// every solve while it stays attached.
type Perturbation struct {
	Effect Effect
	Value  float64
}

// ArrayCell is one (variable, scale) pair materialised into an Array
// variable's matrix (spec.md §4.5 step 3: "multiplying by its ±1 scale").
type ArrayCell struct {
	VarIndex int
	Scale    float64
}

// VariableValues is re-exported here under the name the mathml/expr
// collaborators expect; Registry implements it directly.
type VariableValues interface {
	ValueOf(index int) (cell.Value, error)
}

// ScriptRunner is the collaborator a compiled script (package script)
// implements: Run evaluates the script body against the registry's full
// read/write surface (script.Host — Registry satisfies it structurally)
// and reports whether the script's own self-assignment (rather than its
// last-statement value) is the result (spec.md §4.6 Runtime).
type ScriptRunner interface {
	Run(host script.Host) (result cell.Value, selfAssigned bool, err error)
}

// TableKind distinguishes a Function collaborator's interpolation
// strategy (spec.md §6).
type TableKind int

const (
	Gridded TableKind = iota
	Ungridded
)

// FunctionTable is the interpolation-engine collaborator of spec.md §6:
// independent-variable indices, table kind, breakpoints, an
// all-interpolations-are-linear predicate, and the underlying data (numeric
// or string, gridded row-major, or an ungridded evaluator).
type FunctionTable interface {
	IndependentIndices() []int
	Kind() TableKind
	Breakpoints() [][]float64
	AllLinear() bool
	NumericData() []float64
	StringData() []string
	EvalUngridded(coords []float64) (float64, error)
}

// Variable is one node of the dependency graph (spec.md §3).
type Variable struct {
	ID     string
	Index  int
	Method Method
	Unit   string // declared unit string (spec.md §3); engine.UnitConverter interprets it

	// MathML
	Root         *expr.Node
	HasMatrixOps bool

	// Script
	ScriptBody ScriptRunner

	// Function
	Table FunctionTable

	// Array
	ArrayCells     []ArrayCell
	DeclaredMatrix bool // true for Array/Function/Plain variables known matrix-valued at load time

	MinValue, MaxValue *float64
	OutputScaleFactor  *float64
	IsInput            bool
	InitialValue       cell.Value

	IndependentVarRefs []int
	AncestorsRef       map[int]bool
	DescendantsRef     map[int]bool

	PDF          *PDF
	Perturbation *Perturbation

	value        cell.Value
	isCurrent    bool
	inEvaluation bool
	warnedSet    bool

	varianceCache *float64
	boundsCache   *[2]float64
}
