package tree

import (
	"sort"
	"strconv"
	"strings"
)

// Render returns a compact, deterministic start-tag rendering of n
// (attributes sorted by name, values Go-quoted), e.g. `<b k="1">`.
// It exists for diagnostics; it is not an XML serializer.
func Render(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, k := range SortedKeys(n.Attributes) {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strconv.Quote(n.Attributes[k]))
	}
	if len(n.Children) == 0 && n.Text == "" {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}

	return sb.String()
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
