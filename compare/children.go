package compare

import "github.com/katalvlaran/treecmp/tree"

// childrenMatch decides whether ref's and comp's children form the same
// collection of matching subtrees under the configured strategy.
func (c *comparator) childrenMatch(ref, comp *tree.Node) bool {
	if len(ref.Children) != len(comp.Children) {
		return false
	}
	if c.opts.Strategy == Greedy {
		return c.greedyChildren(ref, comp)
	}
	_, unmatched := c.pairChildren(ref, comp)

	return len(unmatched) == 0
}

// greedyChildren is the legacy non-backtracking matcher:
//  1. for each reference child r (excluded tags skipped),
//  2. take the first comparison child with the same head (tag + attributes),
//  3. recurse; a failed recursion fails the whole match, no other
//     candidate is tried,
//  4. no candidate at all fails the match.
//
// Comparison children stay in the pool after being used, so one comparison
// child may satisfy several reference children.
func (c *comparator) greedyChildren(ref, comp *tree.Node) bool {
	for _, r := range ref.Children {
		if c.opts.Excludes.Has(r.Tag) {
			continue
		}
		cand := c.firstCandidate(r, comp.Children)
		if cand < 0 || !c.match(r, comp.Children[cand]) {
			return false
		}
	}

	return true
}

// firstCandidate returns the index of the first node in pool whose head
// matches r, or -1.
func (c *comparator) firstCandidate(r *tree.Node, pool []*tree.Node) int {
	for j, x := range pool {
		if c.headMatch(r, x) {
			return j
		}
	}

	return -1
}
