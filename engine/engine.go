package engine

import (
	"fmt"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/mathml"
	"github.com/flightdyn/daveml/script"
	"github.com/flightdyn/daveml/variable"
)

// VariableSpec is one already-parsed variableDef, handed to Load by the
// out-of-scope file-level loader (spec.md §1). Exactly one of MathMLRoot,
// ScriptSource, Table, ArrayCells is populated, matching Method.
type VariableSpec struct {
	ID      string
	Unit    string
	IsInput bool
	Method  variable.Method

	MathMLRoot   mathml.DOMElement // required iff Method == variable.MathML
	ScriptSource string            // required iff Method == variable.Script
	Table        variable.FunctionTable
	ArrayCells   []variable.ArrayCell

	DeclaredMatrix     bool
	InitialValue       float64
	MinValue, MaxValue *float64
	OutputScaleFactor  *float64
	PDF                *variable.PDF
	Perturbation       *variable.Perturbation
}

// Option configures Load (functional-options idiom, matching the
// teacher's builder.BuilderOption style).
type Option func(*Engine)

// WithUnitConverter installs the collaborator getValueSI/getValueMetric/
// setValueSI/setValueMetric need.
func WithUnitConverter(c UnitConverter) Option {
	return func(e *Engine) { e.converter = c }
}

// WithScriptAcceleration enables the optional C6 compile step: every
// MathML variable whose tree is pure-scalar is additionally transpiled
// and compiled to a script handle VerifyScriptParity can cross-check
// against the MathML evaluation. A transpile failure (ErrNotTranspilable)
// is normal and silent; a transpile success followed by a compile failure
// is recorded as WarnScriptConversionFailure.
func WithScriptAcceleration() Option {
	return func(e *Engine) { e.scriptAccel = true }
}

// Engine is the per-model Caller API surface (spec.md §6). Concurrent use
// from multiple goroutines is not supported — §5's "separate engine
// instances must be used" for concurrent evaluation.
type Engine struct {
	registry      *variable.Registry
	converter     UnitConverter
	scriptAccel   bool
	scriptHandles map[int]*script.Compiled
	warnings      []Warning
	warned        map[string]map[WarningCategory]bool
}

// Load constructs the registry from specs: registers every variable first
// (so cross-references to variables declared later in specs resolve),
// then parses each MathML-method tree and compiles each Script-method
// body, then builds the dependency closures. Mirrors the teacher's
// builder.BuildGraph single-orchestrator shape: one entry point, options
// resolved up front, steps applied in a fixed deterministic order.
func Load(specs []VariableSpec, opts ...Option) (*Engine, error) {
	e := &Engine{
		registry:      variable.NewRegistry(),
		scriptHandles: map[int]*script.Compiled{},
		warned:        map[string]map[WarningCategory]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}

	indices := make(map[string]int, len(specs))
	for _, spec := range specs {
		v := &variable.Variable{
			ID:                spec.ID,
			Unit:              spec.Unit,
			IsInput:           spec.IsInput,
			Method:            spec.Method,
			Table:             spec.Table,
			ArrayCells:        spec.ArrayCells,
			DeclaredMatrix:    spec.DeclaredMatrix,
			InitialValue:      cell.Scalar(spec.InitialValue),
			MinValue:          spec.MinValue,
			MaxValue:          spec.MaxValue,
			OutputScaleFactor: spec.OutputScaleFactor,
			PDF:               spec.PDF,
			Perturbation:      spec.Perturbation,
		}
		idx, err := e.registry.Add(v)
		if err != nil {
			return nil, fmt.Errorf("engine.Load: variable %q: %w", spec.ID, ErrDuplicateVariable)
		}
		indices[spec.ID] = idx
	}

	for _, spec := range specs {
		v := e.registry.At(indices[spec.ID])
		switch spec.Method {
		case variable.MathML:
			if err := e.loadMathML(v, spec); err != nil {
				return nil, err
			}
		case variable.Script:
			if err := e.loadScript(v, spec); err != nil {
				return nil, err
			}
		}
	}

	e.registry.BuildClosures()

	if e.scriptAccel {
		e.buildAccelerators(specs, indices)
	}

	return e, nil
}

func (e *Engine) loadMathML(v *variable.Variable, spec VariableSpec) error {
	if spec.MathMLRoot == nil {
		return fmt.Errorf("engine.Load: variable %q: %w", spec.ID, ErrMissingMathMLRoot)
	}
	result, err := mathml.Parse(spec.MathMLRoot, e.registry)
	if err != nil {
		return fmt.Errorf("engine.Load: variable %q: %w", spec.ID, err)
	}
	v.Root = result.Root
	v.IndependentVarRefs = result.Dependencies
	v.HasMatrixOps = expr.HasMatrixOps(result.Root, e.registry.IsMatrixVar)

	return nil
}

func (e *Engine) loadScript(v *variable.Variable, spec VariableSpec) error {
	if spec.ScriptSource == "" {
		return fmt.Errorf("engine.Load: variable %q: %w", spec.ID, ErrMissingScriptSource)
	}
	compiled, err := script.Compile(spec.ID, spec.ScriptSource, e.registry)
	if err != nil {
		return fmt.Errorf("engine.Load: variable %q: %w", spec.ID, err)
	}
	v.ScriptBody = compiled
	v.IndependentVarRefs = compiled.Dependencies()

	return nil
}

// GetVariableIndex resolves varID to its 0-based registry index.
func (e *Engine) GetVariableIndex(varID string) (int, error) {
	idx, ok := e.registry.IndexOf(varID)
	if !ok {
		return 0, ErrUnknownVariable
	}

	return idx, nil
}

// GetVariableCount returns the number of registered variables.
func (e *Engine) GetVariableCount() int { return e.registry.Count() }
