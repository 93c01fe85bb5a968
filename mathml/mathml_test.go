package mathml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdyn/daveml/cell"
	"github.com/flightdyn/daveml/mathml"
)

// fakeElement is an in-memory DOMElement used to build test fixtures
// without going through encoding/xml.
type fakeElement struct {
	tag      string
	attrs    map[string]string
	chars    string
	children []*fakeElement
}

func el(tag string, children ...*fakeElement) *fakeElement {
	return &fakeElement{tag: tag, children: children}
}

func cdata(tag, data string) *fakeElement {
	return &fakeElement{tag: tag, chars: data}
}

func (e *fakeElement) withAttr(k, v string) *fakeElement {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[k] = v

	return e
}

func (e *fakeElement) Tag() string { return e.tag }
func (e *fakeElement) Children() []mathml.DOMElement {
	out := make([]mathml.DOMElement, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}

	return out
}
func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]

	return v, ok
}
func (e *fakeElement) CharData() string { return e.chars }

// fakeResolver is a VariableResolver over a fixed name→index map.
type fakeResolver map[string]int

func (r fakeResolver) IndexOf(id string) (int, bool) {
	idx, ok := r[id]

	return idx, ok
}

func mathRoot(body *fakeElement) *fakeElement {
	return el("math", body)
}

func evalRoot(t *testing.T, root *mathml.Result, vars noVars) cell.Value {
	t.Helper()
	v, err := root.Root.Eval(vars)
	require.NoError(t, err)

	return v
}

type noVars struct{ values map[int]cell.Value }

func (n noVars) ValueOf(idx int) (cell.Value, error) { return n.values[idx], nil }

func TestParseLiteralAndIdentifier(t *testing.T) {
	body := el("apply", el("plus"), cdata("ci", "alpha"), cdata("cn", "2.5"))
	r, err := mathml.Parse(mathRoot(body), fakeResolver{"alpha": 0})
	require.NoError(t, err)
	require.Equal(t, []int{0}, r.Dependencies)

	v := evalRoot(t, r, noVars{values: map[int]cell.Value{0: cell.Scalar(1.5)}})
	f, err := v.AsScalar()
	require.NoError(t, err)
	assert.Equal(t, 4.0, f)
}

func TestParsePiecewiseClamp(t *testing.T) {
	x := cdata("ci", "x")
	body := el("piecewise",
		el("piece", cdata("cn", "0"), el("apply", el("lt"), x, cdata("cn", "0"))),
		el("piece", cdata("cn", "10"), el("apply", el("gt"), x, cdata("cn", "10"))),
		el("otherwise", x),
	)
	r, err := mathml.Parse(mathRoot(body), fakeResolver{"x": 0})
	require.NoError(t, err)

	v := evalRoot(t, r, noVars{values: map[int]cell.Value{0: cell.Scalar(15)}})
	f, _ := v.AsScalar()
	assert.Equal(t, 10.0, f)
}

func TestCsymbolSelectorAndMaskResolution(t *testing.T) {
	selector := cdata("csymbol", "selector").withAttr("other", "row")
	mask := cdata("csymbol", "mask").withAttr("type", "plus")

	assert.NotPanics(t, func() {
		_, err := mathml.Parse(mathRoot(el("apply", selector, cdata("ci", "m"), cdata("cn", "0"))), fakeResolver{"m": 0})
		require.NoError(t, err)
	})
	assert.NotPanics(t, func() {
		_, err := mathml.Parse(mathRoot(el("apply", mask, cdata("ci", "a"), cdata("ci", "b"))), fakeResolver{"a": 0, "b": 1})
		require.NoError(t, err)
	})
}

func TestUnboundIdentifierError(t *testing.T) {
	body := el("apply", el("abs"), cdata("ci", "missing"))
	_, err := mathml.Parse(mathRoot(body), fakeResolver{})
	assert.ErrorIs(t, err, mathml.ErrUnboundIdentifier)
}

func TestArityMismatchError(t *testing.T) {
	body := el("apply", el("abs"), cdata("cn", "1"), cdata("cn", "2"))
	_, err := mathml.Parse(mathRoot(body), fakeResolver{})
	assert.ErrorIs(t, err, mathml.ErrArityMismatch)
}

func TestMultipleTopLevelOperatorsError(t *testing.T) {
	root := el("math", cdata("cn", "1"), cdata("cn", "2"))
	_, err := mathml.Parse(root, fakeResolver{})
	assert.ErrorIs(t, err, mathml.ErrMultipleTopLevelOperators)
}

func TestUnsupportedTagError(t *testing.T) {
	body := el("apply", el("frobnicate"), cdata("cn", "1"))
	_, err := mathml.Parse(mathRoot(body), fakeResolver{})
	assert.ErrorIs(t, err, mathml.ErrUnsupportedTag)
}
