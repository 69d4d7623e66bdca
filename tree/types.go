package tree

// Node is one element of a hierarchical attributed document.
//
// Fields:
//   - Tag        - element name; never empty in a valid tree.
//     Namespaced names are rendered as "{uri}local".
//   - Attributes - attribute name → value; nil means "no attributes".
//   - Text       - content before the first child; "" means absent.
//   - Tail       - content after this element's closing tag; "" means absent.
//   - Children   - ordered, exclusively owned sub-elements.
type Node struct {
	Tag        string
	Attributes map[string]string
	Text       string
	Tail       string
	Children   []*Node
}

// New returns an element with the given tag and no content.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr sets attribute name to value and returns n for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value

	return n
}

// SetText sets the leading text and returns n.
func (n *Node) SetText(text string) *Node {
	n.Text = text

	return n
}

// SetTail sets the trailing text and returns n.
func (n *Node) SetTail(tail string) *Node {
	n.Tail = tail

	return n
}

// Append adds children in order and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// Attr returns the value of attribute name and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]

	return v, ok
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.Children)
}

// Clone returns a deep copy of n. The copy shares nothing with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Tag: n.Tag, Text: n.Text, Tail: n.Tail}
	if n.Attributes != nil {
		out.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			out.Attributes[k] = v
		}
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}

	return out
}

// Walk visits n and its descendants in document order (pre-order),
// passing each node with its depth (root = 0). If fn returns false the
// node's children are skipped.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}
