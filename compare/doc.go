// Package compare decides whether two attributed document trees are
// structurally equivalent, and explains why when they are not.
//
// 🚀 What is it for?
//
//	Generated documents (VTK .vtr files, reports, rendered pages) are checked
//	against a stored reference snapshot. Byte equality is too strict: child
//	order, surrounding whitespace and nondeterministic attributes (timestamps,
//	offsets) must not fail the check. compare encodes exactly which
//	differences matter.
//
// ✨ Rules, per node pair (reference, comparison):
//  1. Tags are equal.
//  2. Every non-excluded attribute name of the comparison exists in the reference.
//  3. Every non-excluded attribute of the reference exists in the comparison
//     with an identical value (string equality, no numeric tolerance).
//  4. Text and Tail agree: both empty, or either is the wildcard "*", or
//     they are equal after trimming surrounding whitespace.
//  5. Children counts are equal and every reference child is matched by a
//     comparison child that satisfies 1–5 recursively. Reference children
//     whose tag is itself excluded are skipped.
//
// ⚙️ Child matching strategies:
//
//	Bipartite (default) - a reference child may only use a comparison child
//	                      that no other reference child uses (perfect
//	                      matching via augmenting paths). Reflexive and
//	                      insensitive to sibling order.
//	Greedy              - the legacy algorithm: the first comparison child
//	                      with the same tag and attributes is chosen and
//	                      never revisited; comparison children are not
//	                      consumed. Kept for compatibility with baselines
//	                      recorded by earlier checkers.
//
// Two operations, no mode flag:
//
//	ok, err := compare.Matches(ref, out, compare.WithExcludes("offset"))
//	if !ok {
//		err = compare.Explain(ref, out, sink, compare.WithExcludes("offset"))
//	}
//
// Matches is a pure predicate. Explain walks the same rules without
// short-circuiting and writes one diaglog.Entry per disagreement. Compare
// bundles both behind a scoped diaglog session.
//
// Errors are reserved for malformed input (tree.ErrNilNode,
// tree.ErrEmptyTag, tree.ErrSharedNode), invalid options
// (ErrOptionViolation) and diagnostic sink failures. A mismatch is never
// an error.
package compare
