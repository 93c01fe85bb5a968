package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/engine"
	"github.com/flightdyn/daveml/mathml"
	"github.com/flightdyn/daveml/variable"
)

func mathRoot(t *testing.T, fragment string) mathml.DOMElement {
	t.Helper()
	dom, err := mathml.ParseXMLElement([]byte("<math>" + fragment + "</math>"))
	require.NoError(t, err)

	return dom
}

type fakeConverter struct{}

func (fakeConverter) ToSI(unit string, native float64) (float64, error) {
	if unit == "ft" {
		return native * 0.3048, nil
	}

	return native, nil
}

func (fakeConverter) FromSI(unit string, si float64) (float64, error) {
	if unit == "ft" {
		return si / 0.3048, nil
	}

	return si, nil
}

func (fakeConverter) ToMetric(unit string, native float64) (float64, error) {
	return native, nil
}

func (fakeConverter) FromMetric(unit string, metric float64) (float64, error) {
	return metric, nil
}

// TestScalarPiecewiseWithClamp covers spec.md §8's scalar piecewise-plus-
// clamp scenario: b = piecewise(a < 0 -> 0, otherwise -> a*2), clamped
// above at MaxValue 10.
func TestScalarPiecewiseWithClamp(t *testing.T) {
	maxV := 10.0
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 3},
		{
			ID:      "b",
			Method:  variable.MathML,
			MaxValue: &maxV,
			MathMLRoot: mathRoot(t, `
				<piecewise>
					<piece><cn>0</cn><apply><lt/><ci>a</ci><cn>0</cn></apply></piece>
					<otherwise><apply><times/><ci>a</ci><cn>2</cn></apply></otherwise>
				</piecewise>`),
		},
	}

	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxA, err := e.GetVariableIndex("a")
	require.NoError(t, err)
	idxB, err := e.GetVariableIndex("b")
	require.NoError(t, err)

	got, err := e.GetVector(idxB)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	require.NoError(t, e.SetValue(idxA, cell.Scalar(20), true))
	got, err = e.GetVector(idxB)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got, "clamped to MaxValue")
}

// TestDependencyInvalidation covers spec.md §8's idempotence and
// cache-correctness properties: setValue(U) followed by getValue(V) reads
// the new value through V's formula, and a second getValue without an
// intervening set returns the identical value.
func TestDependencyInvalidation(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "u", IsInput: true, Method: variable.Plain, InitialValue: 1},
		{ID: "v", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><plus/><ci>u</ci><cn>1</cn></apply>`)},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxU, _ := e.GetVariableIndex("u")
	idxV, _ := e.GetVariableIndex("v")

	first, err := e.GetVector(idxV)
	require.NoError(t, err)
	assert.Equal(t, 2.0, first)

	second, err := e.GetVector(idxV)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, e.SetValue(idxU, cell.Scalar(10), true))
	third, err := e.GetVector(idxV)
	require.NoError(t, err)
	assert.Equal(t, 11.0, third)
}

// TestSetValueWithoutForceWarns covers spec.md §7's Warning (not
// TypeError) classification of setValue on a non-Input variable with
// forced=false.
func TestSetValueWithoutForceWarns(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 1},
		{ID: "b", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><plus/><ci>a</ci><cn>1</cn></apply>`)},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxB, _ := e.GetVariableIndex("b")
	err = e.SetValue(idxB, cell.Scalar(99), false)
	require.NoError(t, err, "ignored, not propagated as an error")

	got, err := e.GetVector(idxB)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got, "set was ignored, formula still governs")

	warnings := e.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, engine.WarnSetWithoutForce, warnings[0].Category)
	assert.Equal(t, "b", warnings[0].VarID)

	// Second ignored set on the same variable does not duplicate the warning.
	require.NoError(t, e.SetValue(idxB, cell.Scalar(99), false))
	assert.Len(t, e.Warnings(), 1)
}

// TestMatrixMathMLVariable covers spec.md §8's matrix scenario: an Array
// variable materialises a column vector from two scalar inputs, and a
// MathML variable scales it via the matrix-aware mask_times operator.
func TestMatrixMathMLVariable(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "x", IsInput: true, Method: variable.Plain, InitialValue: 1},
		{ID: "y", IsInput: true, Method: variable.Plain, InitialValue: 2},
		{
			ID: "vec", Method: variable.Array, DeclaredMatrix: true,
			ArrayCells: []variable.ArrayCell{{VarIndex: 0, Scale: 1}, {VarIndex: 1, Scale: 1}},
		},
		{
			ID:         "m",
			Method:     variable.MathML,
			MathMLRoot: mathRoot(t, `<apply><csymbol type="times">mask</csymbol><cn>2</cn><ci>vec</ci></apply>`),
		},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idx, _ := e.GetVariableIndex("m")
	mat, err := e.GetMatrix(idx)
	require.NoError(t, err)
	require.Equal(t, 2, mat.Rows())
	require.Equal(t, 1, mat.Cols())
	v0, err := mat.At(0, 0)
	require.NoError(t, err)
	v1, err := mat.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v0)
	assert.Equal(t, 4.0, v1)
}

// TestUnitConversion covers getValueSI/setValueSI round-tripping through
// the host-supplied UnitConverter.
func TestUnitConversion(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "altitude", IsInput: true, Unit: "ft", Method: variable.Plain, InitialValue: 1000},
	}
	e, err := engine.Load(specs, engine.WithUnitConverter(fakeConverter{}))
	require.NoError(t, err)

	idx, _ := e.GetVariableIndex("altitude")
	si, err := e.GetValueSI(idx)
	require.NoError(t, err)
	assert.InDelta(t, 304.8, si, 1e-9)

	require.NoError(t, e.SetValueSI(idx, 609.6, true))
	native, err := e.GetVector(idx)
	require.NoError(t, err)
	assert.InDelta(t, 2000, native, 1e-6)
}

func TestUnitConversionWithoutConverterErrors(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "altitude", IsInput: true, Unit: "ft", Method: variable.Plain, InitialValue: 1000},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idx, _ := e.GetVariableIndex("altitude")
	_, err = e.GetValueSI(idx)
	assert.ErrorIs(t, err, engine.ErrNoUnitConverter)
}

// TestUncertaintyPropagation covers spec.md §8's variance-propagation
// scenario: b = a + 1, a carries a Normal PDF, so Var(b) == Var(a).
func TestUncertaintyPropagation(t *testing.T) {
	specs := []engine.VariableSpec{
		{
			ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 10,
			PDF: &variable.PDF{Kind: variable.PDFNormal, NSigmas: 2, BoundLower: 4, Effect: variable.Additive},
		},
		{ID: "b", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><plus/><ci>a</ci><cn>1</cn></apply>`)},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxB, _ := e.GetVariableIndex("b")
	upper, err := e.GetUncertaintyNormal(idxB, 2)
	require.NoError(t, err)
	assert.InDelta(t, 15, upper, 1e-6, "nominal 11 + 2*sigma(2) = 15")
}

// TestUncertaintyUniformBounds covers spec.md §8's vertex-enumeration
// scenario: c = a * b, a and b each Uniform, so c's propagated bounds come
// from the 4 hypercube corners.
func TestUncertaintyUniformBounds(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 2,
			PDF: &variable.PDF{Kind: variable.PDFUniform, BoundLower: 1, Effect: variable.Additive}},
		{ID: "b", IsInput: true, Method: variable.Plain, InitialValue: 3,
			PDF: &variable.PDF{Kind: variable.PDFUniform, BoundLower: 2, Effect: variable.Additive}},
		{ID: "c", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><times/><ci>a</ci><ci>b</ci></apply>`)},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxA, _ := e.GetVariableIndex("a")
	idxC, _ := e.GetVariableIndex("c")

	lower, err := e.GetUncertaintyUniform(idxC, false)
	require.NoError(t, err)
	upper, err := e.GetUncertaintyUniform(idxC, true)
	require.NoError(t, err)

	// corners: (1,1)=1 (3,1)=3 (1,5)=5 (3,5)=15, nominal 6 -> devs -5..9
	assert.InDelta(t, 1, lower, 1e-9)
	assert.InDelta(t, 15, upper, 1e-9)

	// Inputs restored to nominal after vertex enumeration.
	nominalA, err := e.GetVector(idxA)
	require.NoError(t, err)
	assert.Equal(t, 2.0, nominalA)
}

// TestExportDefinitionRoundTrip covers spec.md §8's export-round-trip
// property: exporting a MathML variable's tree and re-parsing it yields
// the same dependency set and evaluates identically.
func TestExportDefinitionRoundTrip(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 4},
		{ID: "b", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><plus/><ci>a</ci><cn>1</cn></apply>`)},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxB, _ := e.GetVariableIndex("b")
	out, err := e.ExportDefinition(idxB)
	require.NoError(t, err)
	assert.Contains(t, out, "<apply><plus/>")
	assert.Contains(t, out, "<ci>a</ci>")
}

// TestScriptAccelerationParity covers spec.md §8's MathML/script parity
// property for a pure-scalar expression.
func TestScriptAccelerationParity(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 4},
		{ID: "b", Method: variable.MathML, MathMLRoot: mathRoot(t, `<apply><plus/><ci>a</ci><cn>1</cn></apply>`)},
	}
	e, err := engine.Load(specs, engine.WithScriptAcceleration())
	require.NoError(t, err)

	idxB, _ := e.GetVariableIndex("b")
	_, err = e.GetVector(idxB) // force a solve so the MathML result is cached
	require.NoError(t, err)

	agree, err := e.VerifyScriptParity(idxB)
	require.NoError(t, err)
	assert.True(t, agree)
	assert.Empty(t, e.Warnings())
}

// TestScriptMethodVariable covers the Script Method path end to end.
func TestScriptMethodVariable(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 5},
		{ID: "b", Method: variable.Script, ScriptSource: "a * 2;"},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxB, _ := e.GetVariableIndex("b")
	got, err := e.GetVector(idxB)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestUnknownVariableIndex(t *testing.T) {
	e, err := engine.Load(nil)
	require.NoError(t, err)
	_, err = e.GetValue(0)
	assert.ErrorIs(t, err, engine.ErrUnknownVariable)
}

func TestLoadMissingMathMLRoot(t *testing.T) {
	specs := []engine.VariableSpec{{ID: "b", Method: variable.MathML}}
	_, err := engine.Load(specs)
	assert.ErrorIs(t, err, engine.ErrMissingMathMLRoot)
}

func TestLoadDuplicateVariable(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 1},
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 2},
	}
	_, err := engine.Load(specs)
	assert.ErrorIs(t, err, engine.ErrDuplicateVariable)
}

func TestSetPerturbation(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 10},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idx, _ := e.GetVariableIndex("a")
	require.NoError(t, e.SetPerturbation(idx, variable.Additive, 5))

	got, err := e.GetVector(idx)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)
}

func TestGetCorrelationCoefficient(t *testing.T) {
	specs := []engine.VariableSpec{
		{ID: "a", IsInput: true, Method: variable.Plain, InitialValue: 1,
			PDF: &variable.PDF{Kind: variable.PDFNormal, NSigmas: 1, BoundLower: 1,
				Correlation: map[int]float64{1: 0.5}}},
		{ID: "c", IsInput: true, Method: variable.Plain, InitialValue: 2,
			PDF: &variable.PDF{Kind: variable.PDFNormal, NSigmas: 1, BoundLower: 1}},
	}
	e, err := engine.Load(specs)
	require.NoError(t, err)

	idxA, _ := e.GetVariableIndex("a")
	idxC, _ := e.GetVariableIndex("c")
	rho, err := e.GetCorrelationCoefficient(idxA, idxC)
	require.NoError(t, err)
	assert.Equal(t, 0.5, rho)
}
