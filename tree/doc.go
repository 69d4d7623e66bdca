// Package tree defines the in-memory document model consumed by the
// comparator: an element Node with a tag, attributes, text, tail and an
// ordered list of owned children.
//
// What
//
//   - Node mirrors the ElementTree element shape: Text is the content
//     before the first child, Tail is the content after the closing tag
//     (it belongs to the parent's character stream).
//   - Fluent builders (New, SetAttr, SetText, SetTail, Append) for tests
//     and hand-written fixtures.
//   - Validate detects malformed trees (nil nodes, empty tags, nodes that are
//     reachable twice) so callers fail loudly instead of comparing garbage.
//   - ParseXML / ParseHTML adapt real parsers (encoding/xml tokens and
//     golang.org/x/net/html) into Nodes.
//
// Ownership
//
//	Every child has exactly one parent. Trees handed to the comparator are
//	treated as read-only; use Clone before mutating a shared fixture.
//
// Example:
//
//	root := tree.New("VTKFile").SetAttr("type", "RectilinearGrid").Append(
//		tree.New("RectilinearGrid").SetAttr("WholeExtent", "0 3 0 5 0 0"),
//	)
//	if err := tree.Validate(root); err != nil {
//		// handle ErrEmptyTag / ErrNilNode / ErrSharedNode
//	}
package tree
