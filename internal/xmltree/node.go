// Package xmltree provides an order- and prefix-preserving XML element
// tree for rewriting document parts in place.
//
// encoding/xml's marshaller resolves namespace prefixes and reorders
// attributes, which would churn every line of a rewritten document
// part. This tree keeps names exactly as written (prefix and local
// part), keeps attributes in document order, and serializes untouched
// subtrees back to equivalent markup.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NodeType discriminates tree nodes.
type NodeType int

const (
	// ElementNode is a regular element.
	ElementNode NodeType = iota
	// TextNode is character data.
	TextNode
	// CommentNode is an XML comment.
	CommentNode
	// ProcInstNode is a processing instruction (including the XML declaration).
	ProcInstNode
	// DirectiveNode is a <!...> directive.
	DirectiveNode
)

// Attr is a single attribute with its name as written in the source.
type Attr struct {
	Name  string // full name including prefix, e.g. "w:val"
	Value string
}

// Node is one node of the parsed tree. For elements, Name carries the
// full prefixed name and Local the local part; for text, comments and
// directives the content lives in Text; for processing instructions
// Name is the target and Text the instruction body.
type Node struct {
	Type     NodeType
	Name     string
	Local    string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Parse decodes data into top-level nodes (XML declaration, comments,
// and the root element). Prefixes are kept as written.
func Parse(data []byte) ([]*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var top []*Node
	var stack []*Node

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Type:  ElementNode,
				Name:  rawName(t.Name),
				Local: t.Name.Local,
			}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			appendNode(n)
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parsing XML: unexpected </%s>", rawName(t.Name))
			}
			open := stack[len(stack)-1]
			if open.Name != rawName(t.Name) {
				return nil, fmt.Errorf("parsing XML: </%s> closes <%s>", rawName(t.Name), open.Name)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			appendNode(&Node{Type: TextNode, Text: string(t)})

		case xml.Comment:
			appendNode(&Node{Type: CommentNode, Text: string(t)})

		case xml.ProcInst:
			appendNode(&Node{Type: ProcInstNode, Name: t.Target, Text: string(t.Inst)})

		case xml.Directive:
			appendNode(&Node{Type: DirectiveNode, Text: string(t)})
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("parsing XML: unclosed <%s>", stack[len(stack)-1].Name)
	}
	return top, nil
}

// rawName rebuilds the name as written. RawToken reports the prefix in
// Space without namespace resolution.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// Serialize writes the nodes back to markup. Childless elements are
// emitted self-closing, the dominant form in OOXML and ODF parts.
func Serialize(nodes []*Node) []byte {
	var buf bytes.Buffer
	for _, n := range nodes {
		writeNode(&buf, n)
	}
	return buf.Bytes()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\t", "&#x9;", "\r", "&#xD;",
	)
)

func writeNode(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case TextNode:
		buf.WriteString(textEscaper.Replace(n.Text))
	case CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Text)
		buf.WriteString("-->")
	case ProcInstNode:
		buf.WriteString("<?")
		buf.WriteString(n.Name)
		if n.Text != "" {
			buf.WriteString(" ")
			buf.WriteString(n.Text)
		}
		buf.WriteString("?>")
	case DirectiveNode:
		buf.WriteString("<!")
		buf.WriteString(n.Text)
		buf.WriteString(">")
	case ElementNode:
		buf.WriteString("<")
		buf.WriteString(n.Name)
		for _, a := range n.Attrs {
			buf.WriteString(" ")
			buf.WriteString(a.Name)
			buf.WriteString(`="`)
			buf.WriteString(attrEscaper.Replace(a.Value))
			buf.WriteString(`"`)
		}
		if len(n.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteString(">")
		for _, c := range n.Children {
			writeNode(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Name)
		buf.WriteString(">")
	}
}

// Root returns the first element node among top-level nodes.
func Root(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.Type == ElementNode {
			return n
		}
	}
	return nil
}
