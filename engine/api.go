package engine

import (
	"fmt"
	"math"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/export"
	"github.com/flightdyn/daveml/matrix"
	"github.com/flightdyn/daveml/script"
	"github.com/flightdyn/daveml/uncertainty"
	"github.com/flightdyn/daveml/variable"
)

func (e *Engine) variableAt(idx int) (*variable.Variable, error) {
	v := e.registry.At(idx)
	if v == nil {
		return nil, ErrUnknownVariable
	}

	return v, nil
}

// GetValue returns variable idx's current value (spec.md §6 getValue),
// solving it first if necessary.
func (e *Engine) GetValue(idx int) (cell.Value, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return cell.Value{}, err
	}

	return e.registry.GetValue(v)
}

// GetVector returns variable idx's current value demanding a scalar
// result (spec.md §6 getVector names the single-value accessor; matrices
// use GetMatrix).
func (e *Engine) GetVector(idx int) (float64, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return 0, err
	}

	return e.registry.GetScalar(v)
}

// GetMatrix returns variable idx's current value demanding a matrix
// result.
func (e *Engine) GetMatrix(idx int) (*matrix.Dense, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return nil, err
	}

	return e.registry.GetMatrix(v)
}

// SetValue applies value to variable idx. Setting a non-Input variable
// without forced=true is not a fatal error (spec.md §7 classifies it as a
// Warning, not a TypeError): the set is silently ignored and
// WarnSetWithoutForce is recorded once per variable.
func (e *Engine) SetValue(idx int, value cell.Value, forced bool) error {
	v, err := e.variableAt(idx)
	if err != nil {
		return err
	}

	err = e.registry.SetValue(v, value, forced)
	if err == variable.ErrNotSettable {
		e.warnOnce(v.ID, WarnSetWithoutForce,
			fmt.Sprintf("setValue(%q) ignored: not an Input variable and forced=false", v.ID))

		return nil
	}

	return err
}

// GetValueSI returns variable idx's current scalar value converted to SI
// via the configured UnitConverter.
func (e *Engine) GetValueSI(idx int) (float64, error) {
	if e.converter == nil {
		return 0, ErrNoUnitConverter
	}
	v, err := e.variableAt(idx)
	if err != nil {
		return 0, err
	}
	native, err := e.registry.GetScalar(v)
	if err != nil {
		return 0, err
	}

	return e.converter.ToSI(v.Unit, native)
}

// GetValueMetric returns variable idx's current scalar value converted to
// the metric system via the configured UnitConverter.
func (e *Engine) GetValueMetric(idx int) (float64, error) {
	if e.converter == nil {
		return 0, ErrNoUnitConverter
	}
	v, err := e.variableAt(idx)
	if err != nil {
		return 0, err
	}
	native, err := e.registry.GetScalar(v)
	if err != nil {
		return 0, err
	}

	return e.converter.ToMetric(v.Unit, native)
}

// SetValueSI converts si from SI to variable idx's declared unit via the
// configured UnitConverter, then sets it exactly as SetValue would.
func (e *Engine) SetValueSI(idx int, si float64, forced bool) error {
	if e.converter == nil {
		return ErrNoUnitConverter
	}
	v, err := e.variableAt(idx)
	if err != nil {
		return err
	}
	native, err := e.converter.FromSI(v.Unit, si)
	if err != nil {
		return err
	}

	return e.SetValue(idx, cell.Scalar(native), forced)
}

// SetValueMetric converts metric from the metric system to variable idx's
// declared unit via the configured UnitConverter, then sets it exactly as
// SetValue would.
func (e *Engine) SetValueMetric(idx int, metric float64, forced bool) error {
	if e.converter == nil {
		return ErrNoUnitConverter
	}
	v, err := e.variableAt(idx)
	if err != nil {
		return err
	}
	native, err := e.converter.FromMetric(v.Unit, metric)
	if err != nil {
		return err
	}

	return e.SetValue(idx, cell.Scalar(native), forced)
}

// GetUncertaintyNormal returns numSigmas standard deviations of variable
// idx's propagated or directly declared Normal-PDF uncertainty, added to
// its current value (spec.md §6's getUncertaintyValue(numSigmas) form).
func (e *Engine) GetUncertaintyNormal(idx int, numSigmas float64) (float64, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return 0, err
	}
	variance, err := uncertainty.Variance(e.registry, v)
	if err != nil {
		return 0, err
	}
	nominal, err := e.registry.GetScalar(v)
	if err != nil {
		return 0, err
	}

	return nominal + numSigmas*sqrtNonNegative(variance), nil
}

// GetUncertaintyUniform returns variable idx's current value shifted by
// its propagated or directly declared Uniform-PDF deviation bound — the
// upper bound if isUpper, otherwise the lower bound (spec.md §6's
// getUncertaintyValue(isUpper) form).
func (e *Engine) GetUncertaintyUniform(idx int, isUpper bool) (float64, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return 0, err
	}
	lower, upper, err := uncertainty.Bounds(e.registry, v)
	if err != nil {
		return 0, err
	}
	nominal, err := e.registry.GetScalar(v)
	if err != nil {
		return 0, err
	}
	if isUpper {
		return nominal + upper, nil
	}

	return nominal + lower, nil
}

func sqrtNonNegative(x float64) float64 {
	if x <= 0 {
		return 0
	}

	return math.Sqrt(x)
}

// GetCorrelationCoefficient returns the declared correlation between
// variables idx and otherIdx (spec.md §4.7).
func (e *Engine) GetCorrelationCoefficient(idx, otherIdx int) (float64, error) {
	if _, err := e.variableAt(idx); err != nil {
		return 0, err
	}
	if _, err := e.variableAt(otherIdx); err != nil {
		return 0, err
	}

	return e.registry.CorrelationCoefficient(idx, otherIdx)
}

// SetPerturbation attaches a perturbation to variable idx, which stays
// attached and is applied on every later solve of idx, replacing any
// previously attached one, and invalidates its own cache and
// every descendant's (spec.md §4.5 Solve step 6).
func (e *Engine) SetPerturbation(idx int, effect variable.Effect, value float64) error {
	v, err := e.variableAt(idx)
	if err != nil {
		return err
	}
	v.Perturbation = &variable.Perturbation{Effect: effect, Value: value}
	e.registry.Invalidate(v)

	return nil
}

// ExportDefinition renders variable idx's parsed expression tree back to
// content MathML (spec.md §6 exportDefinition). MathML-method variables
// only: Script-method variables have no tree to export this way, and
// non-expression methods (Function/Array/Plain/Model) have none at all.
func (e *Engine) ExportDefinition(idx int) (string, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return "", err
	}
	if v.Method != variable.MathML || v.Root == nil {
		return "", variable.ErrNoRoot
	}

	return export.MathML(v.Root, e.registry)
}

// ExportScript renders variable idx's parsed expression tree as script
// source text (spec.md §6 exportDefinition's script-form sibling), if its
// tree has an all-scalar fast path and every operator in it has a script
// counterpart. Returns script.ErrNotTranspilable otherwise.
func (e *Engine) ExportScript(idx int) (string, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return "", err
	}
	if v.Method != variable.MathML || v.Root == nil {
		return "", variable.ErrNoRoot
	}

	return export.Script(v.Root, e.registry)
}

// buildAccelerators transpiles and compiles a parallel script handle for
// every pure-scalar MathML variable (WithScriptAcceleration). A tree that
// is not transpilable (any matrix operator, or any operator without a
// script counterpart, in its closure) is skipped
// silently — that is the expected common case, not a failure. A tree that
// transpiles but then fails to compile is unexpected and is recorded as
// WarnScriptConversionFailure rather than failing Load itself, since the
// MathML evaluator remains fully usable either way.
func (e *Engine) buildAccelerators(specs []VariableSpec, indices map[string]int) {
	for _, spec := range specs {
		if spec.Method != variable.MathML {
			continue
		}
		idx := indices[spec.ID]
		v := e.registry.At(idx)
		if v == nil || v.Root == nil || v.HasMatrixOps {
			continue
		}

		source, err := export.Script(v.Root, e.registry)
		if err != nil {
			continue
		}

		compiled, err := script.Compile(spec.ID, source, e.registry)
		if err != nil {
			e.warnOnce(spec.ID, WarnScriptConversionFailure,
				fmt.Sprintf("script acceleration: transpiled but failed to compile: %v", err))

			continue
		}

		e.scriptHandles[idx] = compiled
	}
}

// VerifyScriptParity evaluates variable idx through both its MathML tree
// and its accelerated script handle (if WithScriptAcceleration built one)
// and reports whether the two agree (spec.md §8's testable parity
// property). Returns false, nil if no script handle exists for idx.
func (e *Engine) VerifyScriptParity(idx int) (bool, error) {
	v, err := e.variableAt(idx)
	if err != nil {
		return false, err
	}
	compiled, ok := e.scriptHandles[idx]
	if !ok {
		return false, nil
	}

	mathmlResult, err := e.registry.GetScalar(v)
	if err != nil {
		return false, err
	}

	scriptResult, _, err := compiled.Run(e.registry)
	if err != nil {
		return false, err
	}
	scriptScalar, err := scriptResult.AsScalar()
	if err != nil {
		return false, err
	}

	agree := mathmlResult == scriptScalar
	if !agree {
		e.warnOnce(v.ID, WarnParityFailure,
			fmt.Sprintf("MathML and script evaluations disagree: %v vs %v", mathmlResult, scriptScalar))
	}

	return agree, nil
}
