package xmltree

import "strings"

// NewElement creates an element node from a full prefixed name.
func NewElement(name string) *Node {
	local := name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		local = name[i+1:]
	}
	return &Node{Type: ElementNode, Name: name, Local: local}
}

// NewText creates a text node.
func NewText(s string) *Node {
	return &Node{Type: TextNode, Text: s}
}

// Child returns the first child element with the given local name,
// regardless of prefix, or nil.
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Local == local {
			return c
		}
	}
	return nil
}

// ChildElements returns all child elements with the given local name.
func (n *Node) ChildElements(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Elements returns all child elements in order.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant element with the given local name,
// depth-first, or nil.
func (n *Node) Find(local string) *Node {
	for _, c := range n.Children {
		if c.Type != ElementNode {
			continue
		}
		if c.Local == local {
			return c
		}
		if found := c.Find(local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element with the given local name,
// depth-first.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type != ElementNode {
			continue
		}
		if c.Local == local {
			out = append(out, c)
		}
		out = append(out, c.FindAll(local)...)
	}
	return out
}

// Attr returns the value of the attribute whose local part (the name
// after any prefix) matches local, or "".
func (n *Node) Attr(local string) string {
	for _, a := range n.Attrs {
		if attrLocal(a.Name) == local {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether an attribute with the given local part exists.
func (n *Node) HasAttr(local string) bool {
	for _, a := range n.Attrs {
		if attrLocal(a.Name) == local {
			return true
		}
	}
	return false
}

// SetAttr sets the attribute with the given full name, replacing an
// existing attribute whose local part matches.
func (n *Node) SetAttr(name, value string) {
	local := attrLocal(name)
	for i, a := range n.Attrs {
		if attrLocal(a.Name) == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

func attrLocal(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// AllText returns the concatenated text content of the subtree.
func (n *Node) AllText() string {
	if n.Type == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.AllText())
	}
	return b.String()
}

// SetText replaces the node's children with a single text node.
func (n *Node) SetText(s string) {
	n.Children = []*Node{NewText(s)}
}

// AppendChild appends c to n's children.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// InsertChildAt inserts c at index i, clamped to the valid range.
func (n *Node) InsertChildAt(i int, c *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

// RemoveChild removes the first occurrence of c.
func (n *Node) RemoveChild(c *Node) {
	for i, ch := range n.Children {
		if ch == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// ReplaceElements replaces n's child elements having the given local
// name with the supplied nodes, keeping their relative slots: the
// first replacement lands where the first match was. Non-matching
// children keep their positions. Used to reorder table cells in place.
func (n *Node) ReplaceElements(local string, replacements []*Node) {
	idx := 0
	for i, c := range n.Children {
		if c.Type == ElementNode && c.Local == local && idx < len(replacements) {
			n.Children[i] = replacements[idx]
			idx++
		}
	}
}
