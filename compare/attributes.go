package compare

import "github.com/katalvlaran/treecmp/tree"

// AttributeNamesMatch reports whether every attribute name of comp that is
// not excluded also exists on ref. Values are not inspected.
func AttributeNamesMatch(ref, comp *tree.Node, excludes ExcludeSet) bool {
	for name := range comp.Attributes {
		if excludes.Has(name) {
			continue
		}
		if _, ok := ref.Attributes[name]; !ok {
			return false
		}
	}

	return true
}

// AttributeValuesMatch reports whether every attribute of ref that is not
// excluded exists on comp with an identical value.
func AttributeValuesMatch(ref, comp *tree.Node, excludes ExcludeSet) bool {
	for name, want := range ref.Attributes {
		if excludes.Has(name) {
			continue
		}
		got, ok := comp.Attributes[name]
		if !ok || got != want {
			return false
		}
	}

	return true
}

// headMatch is the per-node gate used both at the top level and for child
// candidate selection: tag, attribute names and attribute values.
func (c *comparator) headMatch(ref, comp *tree.Node) bool {
	return ref.Tag == comp.Tag &&
		AttributeNamesMatch(ref, comp, c.opts.Excludes) &&
		AttributeValuesMatch(ref, comp, c.opts.Excludes)
}
