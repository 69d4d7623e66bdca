package tree

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML builds a Node tree from an HTML document using the
// golang.org/x/net/html parser. The returned root is the <html> element
// (the parser synthesizes html/head/body when they are missing).
//
// Only element and text nodes are kept; comments and doctypes are dropped.
// Text/Tail are assigned exactly as in ParseXML. Foreign-content attributes
// with a namespace are keyed "ns:key". When the tokenizer reports the same
// attribute twice the first occurrence wins, as browsers do.
func ParseHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("tree: parse html: %w", err)
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return fromHTML(c), nil
		}
	}

	return nil, ErrNoRoot
}

func fromHTML(h *html.Node) *Node {
	n := &Node{Tag: h.Data}
	for _, a := range h.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if _, dup := n.Attributes[key]; dup {
			continue
		}
		n.SetAttr(key, a.Val)
	}

	var last *Node
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child := fromHTML(c)
			n.Children = append(n.Children, child)
			last = child
		case html.TextNode:
			if last != nil {
				last.Tail += c.Data
			} else {
				n.Text += c.Data
			}
		}
	}

	return n
}
