package compare

import "github.com/katalvlaran/treecmp/tree"

// pairChildren computes a maximum injective pairing between the
// non-excluded children of ref and the children of comp, where an edge
// r→c exists iff the two subtrees match completely.
//
// Returns:
//   - pair      : pair[i] = index into comp.Children matched to ref.Children[i],
//     or -1 (unmatched or excluded).
//   - unmatched : indices of non-excluded reference children left without a
//     partner, in document order. Empty means a perfect matching.
//
// Steps:
//  1. Aligned pass: ref child i takes comp child i when they match.
//  2. Free pass: each still unpaired ref child takes the first free comp
//     child it matches.
//  3. Kuhn's augmenting-path search for the rest: DFS over alternating
//     paths, re-routing already paired ref children to free a partner.
//     Starting from a partial matching keeps the result maximum; a ref
//     child that fails to augment never succeeds later, so one pass suffices.
//
// Edges are evaluated lazily through the comparator's memoized match, so
// each (ref child, comp child) pair is compared at most once per call.
//
// Complexity: O(R) subtree comparisons when siblings are aligned (the
// common case of regenerated documents), O(R·C) comparisons and O(R·C)
// DFS steps per augmentation in the worst case. R, C = child counts.
func (c *comparator) pairChildren(ref, comp *tree.Node) (pair []int, unmatched []int) {
	nRef, nComp := len(ref.Children), len(comp.Children)

	pair = make([]int, nRef)
	owner := make([]int, nComp) // owner[j] = ref child holding comp child j
	for i := range pair {
		pair[i] = -1
	}
	for j := range owner {
		owner[j] = -1
	}
	edge := func(i, j int) bool {
		r, x := ref.Children[i], comp.Children[j]

		return c.headMatch(r, x) && c.match(r, x)
	}
	take := func(i, j int) {
		owner[j] = i
		pair[i] = j
	}

	// 1) aligned
	for i, r := range ref.Children {
		if c.opts.Excludes.Has(r.Tag) || i >= nComp {
			continue
		}
		if edge(i, i) {
			take(i, i)
		}
	}

	// 2) first free partner
	for i, r := range ref.Children {
		if pair[i] >= 0 || c.opts.Excludes.Has(r.Tag) {
			continue
		}
		for j := 0; j < nComp; j++ {
			if owner[j] < 0 && edge(i, j) {
				take(i, j)
				break
			}
		}
	}

	// 3) augmenting paths
	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for j := 0; j < nComp; j++ {
			if seen[j] || !edge(i, j) {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				take(i, j)

				return true
			}
		}

		return false
	}
	for i, r := range ref.Children {
		if pair[i] >= 0 || c.opts.Excludes.Has(r.Tag) {
			continue
		}
		if !augment(i, make([]bool, nComp)) {
			unmatched = append(unmatched, i)
		}
	}

	return pair, unmatched
}
