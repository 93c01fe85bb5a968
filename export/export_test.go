package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/export"
	"github.com/flightdyn/daveml/mathml"
)

type fakeNames []string

func (n fakeNames) NameOf(idx int) string { return n[idx] }

type fakeResolver map[string]int

func (r fakeResolver) IndexOf(id string) (int, bool) {
	idx, ok := r[id]

	return idx, ok
}

func roundTrip(t *testing.T, fragment string, resolver mathml.VariableResolver) *expr.Node {
	t.Helper()
	dom, err := mathml.ParseXMLElement([]byte("<math>" + fragment + "</math>"))
	require.NoError(t, err)
	res, err := mathml.Parse(dom, resolver)
	require.NoError(t, err)

	return res.Root
}

func TestExportArithmeticRoundTrip(t *testing.T) {
	names := fakeNames{"a"}
	root, err := expr.NewNode("plus", expr.NewIdentifier(0), expr.NewLiteral(2))
	require.NoError(t, err)

	got, err := export.MathML(root, names)
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, "<apply><plus/>"))
	assert.True(t, strings.Contains(got, "<ci>a</ci>"))
	assert.True(t, strings.Contains(got, "<cn>2</cn>"))

	reparsed := roundTrip(t, got, fakeResolver{"a": 0})
	assert.Equal(t, "plus", reparsed.Tag)
	assert.Equal(t, 0, reparsed.Children[0].VarIndex)
	assert.Equal(t, 2.0, *reparsed.Children[1].Literal)
}

func TestExportArityZeroConstant(t *testing.T) {
	root, err := expr.NewNode("pi")
	require.NoError(t, err)

	got, err := export.MathML(root, fakeNames{})
	require.NoError(t, err)
	assert.Equal(t, "<pi/>", got)
}

func TestExportPiecewise(t *testing.T) {
	names := fakeNames{"a"}
	pred, err := expr.NewNode("gt", expr.NewIdentifier(0), expr.NewLiteral(0))
	require.NoError(t, err)
	piece, err := expr.NewNode("piece", expr.NewLiteral(1), pred)
	require.NoError(t, err)
	otherwise, err := expr.NewNode("otherwise", expr.NewLiteral(-1))
	require.NoError(t, err)
	root, err := expr.NewNode("piecewise", piece, otherwise)
	require.NoError(t, err)

	got, err := export.MathML(root, names)
	require.NoError(t, err)

	reparsed := roundTrip(t, got, fakeResolver{"a": 0})
	assert.Equal(t, "piecewise", reparsed.Tag)
	assert.Equal(t, "piece", reparsed.Children[0].Tag)
	assert.Equal(t, "otherwise", reparsed.Children[1].Tag)
}

func TestExportSelectorRow(t *testing.T) {
	names := fakeNames{"m"}
	root, err := expr.NewNode("selector_row", expr.NewIdentifier(0), expr.NewLiteral(1))
	require.NoError(t, err)

	got, err := export.MathML(root, names)
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, `<csymbol other="row">selector</csymbol>`))

	reparsed := roundTrip(t, got, fakeResolver{"m": 0})
	assert.Equal(t, "selector_row", reparsed.Tag)
}

func TestExportMaskPlus(t *testing.T) {
	names := fakeNames{"m", "n"}
	root, err := expr.NewNode("mask_plus", expr.NewIdentifier(0), expr.NewIdentifier(1))
	require.NoError(t, err)

	got, err := export.MathML(root, names)
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, `<csymbol type="plus">mask</csymbol>`))

	reparsed := roundTrip(t, got, fakeResolver{"m": 0, "n": 1})
	assert.Equal(t, "mask_plus", reparsed.Tag)
}

func TestExportCsymbolCdRoundTrip(t *testing.T) {
	names := fakeNames{"a"}

	fragment := `<apply><csymbol cd="sign"></csymbol><ci>a</ci><cn>-1</cn></apply>`
	reparsed := roundTrip(t, fragment, fakeResolver{"a": 0})
	assert.Equal(t, "sign", reparsed.Tag)
	assert.Equal(t, "cd", reparsed.Attr)

	got, err := export.MathML(reparsed, names)
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, `<csymbol cd="sign">`))

	reReparsed := roundTrip(t, got, fakeResolver{"a": 0})
	assert.Equal(t, "sign", reReparsed.Tag)
	assert.Equal(t, "cd", reReparsed.Attr)
}

func TestExportScriptFacadeArithmetic(t *testing.T) {
	names := fakeNames{"a"}
	root, err := expr.NewNode("plus", expr.NewIdentifier(0), expr.NewLiteral(2))
	require.NoError(t, err)

	got, err := export.Script(root, names)
	require.NoError(t, err)
	assert.Equal(t, "(a)+(2);", got)
}
