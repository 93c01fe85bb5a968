package mathml

import (
	"strconv"
	"strings"

	"github.com/flightdyn/daveml/expr"
)

// Result is what Parse returns: the built expression tree plus the distinct
// variable indices its `ci` leaves reference, in first-encountered order —
// the raw material for a variable's independentVarRefs (spec.md §4.5).
type Result struct {
	Root         *expr.Node
	Dependencies []int
}

// Parse builds an expression tree from mathRoot, the `<math>` element (or
// an equivalent already-unwrapped root) that must have exactly one child
// operator element (spec.md §7: "no or multiple top-level operators under
// <math>").
func Parse(mathRoot DOMElement, resolver VariableResolver) (*Result, error) {
	kids := mathRoot.Children()
	if len(kids) != 1 {
		return nil, ErrMultipleTopLevelOperators
	}
	ctx := &parseContext{resolver: resolver, seen: map[int]bool{}}
	node, err := ctx.parseElement(kids[0])
	if err != nil {
		return nil, err
	}

	return &Result{Root: node, Dependencies: ctx.order}, nil
}

type parseContext struct {
	resolver VariableResolver
	seen     map[int]bool
	order    []int
}

func (c *parseContext) parseElement(elem DOMElement) (*expr.Node, error) {
	switch elem.Tag() {
	case "cn":
		return c.parseLiteral(elem)
	case "ci":
		return c.parseIdentifier(elem)
	case "apply":
		return c.parseApply(elem)
	case "piecewise":
		return c.parsePiecewise(elem)
	case "piece":
		return c.parsePiece(elem)
	case "otherwise":
		return c.parseOtherwise(elem)
	case "csymbol":
		return c.parseStandaloneCsymbol(elem)
	default:
		return c.parseBareOperator(elem)
	}
}

func (c *parseContext) parseLiteral(elem DOMElement) (*expr.Node, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(elem.CharData()), 64)
	if err != nil {
		return nil, ErrNotNumeric
	}

	return expr.NewLiteral(v), nil
}

func (c *parseContext) parseIdentifier(elem DOMElement) (*expr.Node, error) {
	name := strings.TrimSpace(elem.CharData())
	idx, ok := c.resolver.IndexOf(name)
	if !ok {
		return nil, ErrUnboundIdentifier
	}
	if !c.seen[idx] {
		c.seen[idx] = true
		c.order = append(c.order, idx)
	}

	return expr.NewIdentifier(idx), nil
}

// parseApply reads the first child as the operator selector and the
// remaining children as operands (spec.md §4.4's "children read as
// siblings under apply").
func (c *parseContext) parseApply(elem DOMElement) (*expr.Node, error) {
	kids := elem.Children()
	if len(kids) < 1 {
		return nil, ErrArityMismatch
	}
	tag, attrKind, err := c.resolveOperatorTag(kids[0])
	if err != nil {
		return nil, err
	}
	operandElems := kids[1:]
	if err := checkArity(tag, len(operandElems)); err != nil {
		return nil, err
	}
	operands := make([]*expr.Node, len(operandElems))
	for i, oe := range operandElems {
		n, err := c.parseElement(oe)
		if err != nil {
			return nil, err
		}
		operands[i] = n
	}
	node, err := expr.NewNode(tag, operands...)
	if err != nil {
		return nil, ErrUnsupportedTag
	}
	node.Attr = attrKind

	return node, nil
}

// resolveOperatorTag resolves head to a concrete operator tag, plus (for
// the csymbol cd/definitionURL naming path only) which of the two
// attribute spellings named it — package export's csymbol round-trip
// reads this back so re-export picks the same spelling the source used.
func (c *parseContext) resolveOperatorTag(head DOMElement) (string, string, error) {
	if head.Tag() == "csymbol" {
		return resolveCsymbol(head)
	}
	tag := head.Tag()
	if _, ok := expr.GeneralOps[tag]; !ok {
		return "", "", ErrUnsupportedTag
	}

	return tag, "", nil
}

// resolveCsymbol synthesises a concrete operator tag from a csymbol's
// CDATA and attributes (spec.md §4.3's csymbol resolution rules):
// CDATA "selector" + other="row" → "selector_row"; CDATA "mask" +
// type="plus" → "mask_plus"; any other CDATA (e.g. "sind") names the tag
// directly; with no CDATA, cd/definitionURL names it.
func resolveCsymbol(elem DOMElement) (string, string, error) {
	data := strings.TrimSpace(elem.CharData())
	switch data {
	case "selector":
		other, _ := elem.Attr("other")
		tag, ok := map[string]string{
			"row": "selector_row", "column": "selector_column",
			"diag": "selector_diag", "mslice": "selector_mslice",
			"element": "selector_element", "": "selector_element",
		}[other]
		if !ok {
			return "", "", ErrUnsupportedTag
		}

		return tag, "", nil
	case "mask":
		typ, _ := elem.Attr("type")
		tag, ok := map[string]string{
			"plus": "mask_plus", "minus": "mask_minus",
			"times": "mask_times", "divide": "mask_divide",
		}[typ]
		if !ok {
			return "", "", ErrUnsupportedTag
		}

		return tag, "", nil
	case "":
		attrKind := "cd"
		name, ok := elem.Attr("cd")
		if !ok {
			attrKind = "definitionURL"
			name, ok = elem.Attr("definitionURL")
		}
		if !ok {
			return "", "", ErrUnsupportedTag
		}
		if _, ok := expr.GeneralOps[name]; !ok {
			return "", "", ErrUnsupportedTag
		}

		return name, attrKind, nil
	default:
		if _, ok := expr.GeneralOps[data]; !ok {
			return "", "", ErrUnsupportedTag
		}

		return data, "", nil
	}
}

// parsePiecewise reads its own children directly (not through apply), each
// expected to be a `piece` or `otherwise` element.
func (c *parseContext) parsePiecewise(elem DOMElement) (*expr.Node, error) {
	kids := elem.Children()
	if err := checkArity("piecewise", len(kids)); err != nil {
		return nil, err
	}
	children := make([]*expr.Node, len(kids))
	for i, k := range kids {
		if k.Tag() != "piece" && k.Tag() != "otherwise" {
			return nil, ErrUnsupportedTag
		}
		n, err := c.parseElement(k)
		if err != nil {
			return nil, err
		}
		children[i] = n
	}

	return expr.NewNode("piecewise", children...)
}

func (c *parseContext) parsePiece(elem DOMElement) (*expr.Node, error) {
	kids := elem.Children()
	if err := checkArity("piece", len(kids)); err != nil {
		return nil, err
	}
	value, err := c.parseElement(kids[0])
	if err != nil {
		return nil, err
	}
	pred, err := c.parseElement(kids[1])
	if err != nil {
		return nil, err
	}

	return expr.NewNode("piece", value, pred)
}

func (c *parseContext) parseOtherwise(elem DOMElement) (*expr.Node, error) {
	kids := elem.Children()
	if err := checkArity("otherwise", len(kids)); err != nil {
		return nil, err
	}
	value, err := c.parseElement(kids[0])
	if err != nil {
		return nil, err
	}

	return expr.NewNode("otherwise", value)
}

// parseStandaloneCsymbol handles a csymbol encountered outside an apply's
// operator-selector position — only meaningful for arity-0 targets (a
// named constant referenced directly as a value).
func (c *parseContext) parseStandaloneCsymbol(elem DOMElement) (*expr.Node, error) {
	tag, attrKind, err := resolveCsymbol(elem)
	if err != nil {
		return nil, err
	}
	if err := checkArity(tag, 0); err != nil {
		return nil, ErrUnsupportedTag
	}
	node, err := expr.NewNode(tag)
	if err != nil {
		return nil, err
	}
	node.Attr = attrKind

	return node, nil
}

// parseBareOperator handles a plain element tag with no enclosing apply —
// valid only for the arity-0 constants (`pi`, `exponentiale`, etc.), which
// content MathML represents as empty elements.
func (c *parseContext) parseBareOperator(elem DOMElement) (*expr.Node, error) {
	tag := elem.Tag()
	if _, ok := expr.GeneralOps[tag]; !ok {
		return nil, ErrUnsupportedTag
	}
	if len(elem.Children()) != 0 {
		return nil, ErrUnsupportedTag
	}

	return expr.NewNode(tag)
}
