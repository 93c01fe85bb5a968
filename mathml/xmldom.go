package mathml

import (
	"encoding/xml"
	"strings"
)

// xmlNode is a generic recursive XML element — the same "catch any child
// element, keep its char data and attributes" struct-tag idiom used by the
// reference JSBSim/XMILE parsers' typed structs, generalised here to an
// untyped tree since MathML's operator vocabulary is open-ended rather
// than a fixed schema.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	CharData string     `xml:",chardata"`
	Nodes    []xmlNode  `xml:",any"`
}

// xmlElement adapts an xmlNode to DOMElement.
type xmlElement struct {
	node *xmlNode
}

// ParseXMLElement decodes data as XML and returns its root element wrapped
// as a DOMElement — the reference DOM adapter for hosts with no DOM of
// their own (spec.md §6 treats the DOM as an external collaborator; this is
// one concrete, optional implementation of it).
func ParseXMLElement(data []byte) (DOMElement, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	return &xmlElement{node: &root}, nil
}

func (e *xmlElement) Tag() string { return e.node.XMLName.Local }

func (e *xmlElement) Children() []DOMElement {
	out := make([]DOMElement, len(e.node.Nodes))
	for i := range e.node.Nodes {
		out[i] = &xmlElement{node: &e.node.Nodes[i]}
	}

	return out
}

func (e *xmlElement) Attr(name string) (string, bool) {
	for _, a := range e.node.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

func (e *xmlElement) CharData() string { return strings.TrimSpace(e.node.CharData) }
