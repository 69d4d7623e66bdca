package tree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// xmlNamespaceURI is bound to the "xml" prefix without a declaration.
const xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// ParseXML builds a Node tree from an XML document.
//
// The mapping follows the ElementTree conventions the reference snapshots
// were written against:
//   - namespaced names become "{uri}local"; xmlns declarations are dropped;
//   - comments, processing instructions and directives are ignored;
//   - character data before an element's first child is its Text, character
//     data after a child's end tag is that child's Tail;
//   - character data outside the root element is discarded;
//   - non-UTF-8 documents are decoded per their encoding declaration.
//
// Errors: ErrNoRoot, ErrMultipleRoots, ErrDuplicateAttribute,
// ErrUnboundPrefix, or the decoder's syntax error wrapped with context.
func ParseXML(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root   *Node
		stack  []*Node
		scopes []map[string]struct{} // namespace URIs declared per open element
		closed *Node                 // last child closed at the current level; owns the next char data as Tail
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tree: decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			scopes = append(scopes, declaredNamespaces(t))
			n, err := elementFromXML(t, scopes)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: <%s>", ErrMultipleRoots, n.Tag)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			closed = nil

		case xml.EndElement:
			closed = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			scopes = scopes[:len(scopes)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if closed != nil {
				closed.Tail += string(t)
			} else {
				top := stack[len(stack)-1]
				top.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, ErrNoRoot
	}

	return root, nil
}

// ParseXMLFile opens path and parses it with ParseXML.
func ParseXMLFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tree: open %s: %w", path, err)
	}
	defer f.Close()

	n, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return n, nil
}

func elementFromXML(t xml.StartElement, scopes []map[string]struct{}) (*Node, error) {
	if !bound(t.Name, scopes) {
		return nil, fmt.Errorf("%w: %q on <%s:%s>", ErrUnboundPrefix, t.Name.Space, t.Name.Space, t.Name.Local)
	}
	n := &Node{Tag: qualifiedName(t.Name)}
	for _, a := range t.Attr {
		if isNamespaceDecl(a.Name) {
			continue
		}
		if !bound(a.Name, scopes) {
			return nil, fmt.Errorf("%w: %q on attribute %s:%s of <%s>",
				ErrUnboundPrefix, a.Name.Space, a.Name.Space, a.Name.Local, n.Tag)
		}
		key := qualifiedName(a.Name)
		if _, dup := n.Attributes[key]; dup {
			return nil, fmt.Errorf("%w: %q on <%s>", ErrDuplicateAttribute, key, n.Tag)
		}
		n.SetAttr(key, a.Value)
	}

	return n, nil
}

// declaredNamespaces collects the URIs bound by t's xmlns attributes.
func declaredNamespaces(t xml.StartElement) map[string]struct{} {
	var uris map[string]struct{}
	for _, a := range t.Attr {
		if !isNamespaceDecl(a.Name) || a.Value == "" {
			continue
		}
		if uris == nil {
			uris = make(map[string]struct{})
		}
		uris[a.Value] = struct{}{}
	}

	return uris
}

// bound reports whether name's namespace is declared in scope. The decoder
// replaces bound prefixes with their URI and leaves unbound prefixes as is,
// so a Space that is not an in-scope URI is an unbound prefix.
func bound(name xml.Name, scopes []map[string]struct{}) bool {
	if name.Space == "" || name.Space == xmlNamespaceURI {
		return true
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if _, ok := scopes[i][name.Space]; ok {
			return true
		}
	}

	return false
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}

	return "{" + name.Space + "}" + name.Local
}

// encoding/xml reports xmlns:p="..." as {xmlns p} and xmlns="..." as {"" xmlns}.
func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}
