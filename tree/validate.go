package tree

import "fmt"

// Validate reports whether root is a well-formed tree.
//
// Checks (first violation wins, reported with its element path):
//   - root and every child pointer are non-nil   → ErrNilNode
//   - every tag is non-empty                     → ErrEmptyTag
//   - no node is reachable twice (cycles, DAGs)  → ErrSharedNode
//
// Attribute-key uniqueness is guaranteed by the map representation; parsers
// reject duplicates with ErrDuplicateAttribute before a Node is built.
//
// Complexity: O(N) time and memory, N = number of nodes.
func Validate(root *Node) error {
	if root == nil {
		return ErrNilNode
	}
	seen := make(map[*Node]struct{})

	return validate(root, "/"+root.Tag, seen)
}

func validate(n *Node, path string, seen map[*Node]struct{}) error {
	if n.Tag == "" {
		return fmt.Errorf("%w at %s", ErrEmptyTag, path)
	}
	if _, dup := seen[n]; dup {
		return fmt.Errorf("%w at %s", ErrSharedNode, path)
	}
	seen[n] = struct{}{}
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%w: child %d of %s", ErrNilNode, i+1, path)
		}
		if err := validate(c, ChildPath(path, c.Tag, i), seen); err != nil {
			return err
		}
	}

	return nil
}

// ChildPath formats the path of the i-th (0-based) child of parent as
// "parent/tag[i+1]".
func ChildPath(parent, tag string, i int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, tag, i+1)
}
