package export

import (
	"strconv"
	"strings"

	"github.com/flightdyn/daveml/expr"
	"github.com/flightdyn/daveml/matrix"
)

// Names resolves a `ci` leaf's bound variable index back to its textual
// identifier — the collaborator an expr.Node tree needs to export itself,
// the mirror image of mathml.VariableResolver.
type Names interface {
	NameOf(index int) string
}

// arityZeroTags are the operators expr registers with no children (spec.md
// §4.3's named constants), rendered as bare empty elements rather than
// wrapped in an apply.
var arityZeroTags = map[string]bool{
	"exponentiale": true, "pi": true, "eulergamma": true,
	"infinity": true, "notanumber": true, "noop": true,
}

// selectorAttrs maps a synthesised selector_* tag back to the csymbol
// "other" attribute value mathml.resolveCsymbol reads it from.
var selectorAttrs = map[string]string{
	"selector_row": "row", "selector_column": "column",
	"selector_diag": "diag", "selector_mslice": "mslice",
	"selector_element": "element",
}

// maskAttrs maps a synthesised mask_* tag back to the csymbol "type"
// attribute value.
var maskAttrs = map[string]string{
	"mask_plus": "plus", "mask_minus": "minus",
	"mask_times": "times", "mask_divide": "divide",
}

// MathML renders root as a content-MathML fragment (the single top-level
// operator element spec.md §7 requires directly under the caller's own
// `<math>` wrapper — this function emits only that operator element, not
// the `<math>` tag itself, since a model's `<math>` may carry its own
// namespace/attribute conventions the caller owns).
func MathML(root *expr.Node, names Names) (string, error) {
	var b strings.Builder
	if err := writeNode(&b, root, names); err != nil {
		return "", err
	}

	return b.String(), nil
}

func writeNode(b *strings.Builder, n *expr.Node, names Names) error {
	switch n.Tag {
	case "cn":
		return writeLiteral(b, n)
	case "ci":
		b.WriteString("<ci>")
		b.WriteString(escape(names.NameOf(n.VarIndex)))
		b.WriteString("</ci>")

		return nil
	case "piecewise":
		return writeWrapped(b, "piecewise", n.Children, names)
	case "piece":
		if len(n.Children) != 2 {
			return ErrMalformedTree
		}
		b.WriteString("<piece>")
		if err := writeNode(b, n.Children[0], names); err != nil {
			return err
		}
		if err := writeNode(b, n.Children[1], names); err != nil {
			return err
		}
		b.WriteString("</piece>")

		return nil
	case "otherwise":
		if len(n.Children) != 1 {
			return ErrMalformedTree
		}
		b.WriteString("<otherwise>")
		if err := writeNode(b, n.Children[0], names); err != nil {
			return err
		}
		b.WriteString("</otherwise>")

		return nil
	}

	if other, ok := selectorAttrs[n.Tag]; ok {
		return writeCsymbolApply(b, "selector", "other", other, n.Children, names)
	}
	if typ, ok := maskAttrs[n.Tag]; ok {
		return writeCsymbolApply(b, "mask", "type", typ, n.Children, names)
	}
	if arityZeroTags[n.Tag] {
		b.WriteString("<")
		b.WriteString(n.Tag)
		b.WriteString("/>")

		return nil
	}
	if n.Attr == "cd" || n.Attr == "definitionURL" {
		return writeCsymbolNamedApply(b, n.Attr, n.Tag, n.Children, names)
	}

	b.WriteString("<apply><")
	b.WriteString(n.Tag)
	b.WriteString("/>")
	for _, c := range n.Children {
		if err := writeNode(b, c, names); err != nil {
			return err
		}
	}
	b.WriteString("</apply>")

	return nil
}

// writeCsymbolNamedApply re-expands an operator that was originally named
// via a csymbol's cd or definitionURL attribute (mathml.resolveCsymbol's
// no-CDATA path) back into that same attribute spelling, so re-export is
// lossless for both spellings Janus accepts on input.
func writeCsymbolNamedApply(b *strings.Builder, attr, tag string, operands []*expr.Node, names Names) error {
	b.WriteString("<apply><csymbol ")
	b.WriteString(attr)
	b.WriteString("=\"")
	b.WriteString(tag)
	b.WriteString("\"></csymbol>")
	for _, c := range operands {
		if err := writeNode(b, c, names); err != nil {
			return err
		}
	}
	b.WriteString("</apply>")

	return nil
}

func writeWrapped(b *strings.Builder, tag string, children []*expr.Node, names Names) error {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	for _, c := range children {
		if err := writeNode(b, c, names); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")

	return nil
}

// writeCsymbolApply renders an apply whose operator-selector position is a
// csymbol annotated with attr=value and CDATA cdata (spec.md §4.3's
// selector/mask resolution, inverted).
func writeCsymbolApply(b *strings.Builder, cdata, attr, value string, operands []*expr.Node, names Names) error {
	b.WriteString("<apply><csymbol ")
	b.WriteString(attr)
	b.WriteString("=\"")
	b.WriteString(value)
	b.WriteString("\">")
	b.WriteString(cdata)
	b.WriteString("</csymbol>")
	for _, c := range operands {
		if err := writeNode(b, c, names); err != nil {
			return err
		}
	}
	b.WriteString("</apply>")

	return nil
}

func writeLiteral(b *strings.Builder, n *expr.Node) error {
	if m := n.MatrixLiteral(); m != nil {
		return writeMatrix(b, m)
	}
	if n.Literal == nil {
		return ErrMalformedTree
	}
	b.WriteString("<cn>")
	b.WriteString(strconv.FormatFloat(*n.Literal, 'g', -1, 64))
	b.WriteString("</cn>")

	return nil
}

func writeMatrix(b *strings.Builder, m *matrix.Dense) error {
	b.WriteString("<matrix>")
	for r := 0; r < m.Rows(); r++ {
		b.WriteString("<matrixrow>")
		row, err := m.Row(r)
		if err != nil {
			return err
		}
		for _, v := range row {
			b.WriteString("<cn>")
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteString("</cn>")
		}
		b.WriteString("</matrixrow>")
	}
	b.WriteString("</matrix>")

	return nil
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	return r.Replace(s)
}
