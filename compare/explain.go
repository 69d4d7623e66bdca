package compare

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/tree"
)

// Explain re-runs every check of Matches without short-circuiting and
// writes one diaglog.Entry per disagreement to sink:
//
//   - tag mismatch, extra / missing attribute, attribute value mismatch;
//   - text and tail mismatch;
//   - children length mismatch;
//   - a reference child without any comparison child of the same tag and
//     attributes (reported together with the head differences against the
//     closest same-tag comparison child, if any);
//   - a reference child whose chosen candidate differs deeper down (the
//     deeper entries come first, then the child summary).
//
// A root whose own tag or attributes disagree gets an extra KindRoot entry:
// such a difference usually means the wrong document, not a content change.
//
// Attributes are reported in name order, so output is deterministic.
// Explain returns nil for identical trees without writing anything. It
// fails only on malformed input, invalid options, a nil sink, or the first
// sink write error (traversal stops there).
func Explain(ref, comp *tree.Node, sink diaglog.Sink, opts ...Option) error {
	if sink == nil {
		return ErrNilSink
	}
	c, err := newComparator(ref, comp, opts)
	if err != nil {
		return err
	}
	e := &explainer{comparator: c, sink: sink}
	e.node(ref, comp, "/"+ref.Tag, 0)

	return e.err
}

// explainer carries the first sink error; once set every step is a no-op.
type explainer struct {
	*comparator
	sink diaglog.Sink
	err  error
}

func (e *explainer) emit(entry diaglog.Entry) {
	if e.err != nil {
		return
	}
	if err := e.sink.Write(entry); err != nil {
		e.err = fmt.Errorf("compare: write diagnostic: %w", err)
	}
}

func (e *explainer) node(ref, comp *tree.Node, path string, depth int) {
	if e.err != nil {
		return
	}
	if !e.head(ref, comp, path, depth) && depth == 0 {
		e.emit(diaglog.Entry{
			Kind:    diaglog.KindRoot,
			Depth:   depth,
			Path:    path,
			Tag:     ref.Tag,
			Ref:     tree.Render(ref),
			Comp:    tree.Render(comp),
			Message: "document roots differ, probably there is a mistake in the uppermost layer of the tree",
		})
	}
	e.texts(ref, comp, path, depth)
	e.children(ref, comp, path, depth)
}

// head reports tag and attribute disagreements and whether there were none.
func (e *explainer) head(ref, comp *tree.Node, path string, depth int) bool {
	ok := true
	if ref.Tag != comp.Tag {
		ok = false
		e.emit(diaglog.Entry{
			Kind: diaglog.KindTag, Depth: depth, Path: path, Tag: ref.Tag,
			Ref: ref.Tag, Comp: comp.Tag,
			Message: fmt.Sprintf("tags do not match: %s and %s", ref.Tag, comp.Tag),
		})
	}

	ex := e.opts.Excludes
	for _, name := range tree.SortedKeys(comp.Attributes) {
		if ex.Has(name) {
			continue
		}
		if _, in := ref.Attributes[name]; !in {
			ok = false
			e.emit(diaglog.Entry{
				Kind: diaglog.KindExtraAttribute, Depth: depth, Path: path, Tag: ref.Tag,
				Attr: name, Comp: comp.Attributes[name],
				Message: fmt.Sprintf("comparison has an attribute the reference is missing: %s", name),
			})
		}
	}
	for _, name := range tree.SortedKeys(ref.Attributes) {
		if ex.Has(name) {
			continue
		}
		want := ref.Attributes[name]
		got, in := comp.Attributes[name]
		switch {
		case !in:
			ok = false
			e.emit(diaglog.Entry{
				Kind: diaglog.KindMissingAttribute, Depth: depth, Path: path, Tag: ref.Tag,
				Attr: name, Ref: want,
				Message: fmt.Sprintf("reference attribute %s=%q is missing from the comparison", name, want),
			})
		case got != want:
			ok = false
			e.emit(diaglog.Entry{
				Kind: diaglog.KindAttributeValue, Depth: depth, Path: path, Tag: ref.Tag,
				Attr: name, Ref: want, Comp: got,
				Message: fmt.Sprintf("attributes do not match: %s=%q, %s=%q", name, want, name, got),
			})
		}
	}

	return ok
}

func (e *explainer) texts(ref, comp *tree.Node, path string, depth int) {
	if !textMatch(ref.Text, comp.Text, e.opts.Wildcard) {
		e.emit(diaglog.Entry{
			Kind: diaglog.KindText, Depth: depth, Path: path, Tag: ref.Tag,
			Ref: ref.Text, Comp: comp.Text,
			Message: fmt.Sprintf("reference text %q != comparison text %q", ref.Text, comp.Text),
		})
	}
	if !textMatch(ref.Tail, comp.Tail, e.opts.Wildcard) {
		e.emit(diaglog.Entry{
			Kind: diaglog.KindTail, Depth: depth, Path: path, Tag: ref.Tag,
			Ref: ref.Tail, Comp: comp.Tail,
			Message: fmt.Sprintf("tail: %q != %q", ref.Tail, comp.Tail),
		})
	}
}

// children reports the count mismatch (if any) and then keeps pairing, so a
// missing or surplus child is also named, not only counted.
func (e *explainer) children(ref, comp *tree.Node, path string, depth int) {
	nRef, nComp := len(ref.Children), len(comp.Children)
	if nRef != nComp {
		e.emit(diaglog.Entry{
			Kind: diaglog.KindChildCount, Depth: depth, Path: path, Tag: ref.Tag,
			Ref: strconv.Itoa(nRef), Comp: strconv.Itoa(nComp),
			Message: fmt.Sprintf("children length differs: %d != %d", nRef, nComp),
		})
	}
	if e.opts.Strategy == Greedy {
		e.greedyChildren(ref, comp, path, depth)
	} else {
		e.bipartiteChildren(ref, comp, path, depth)
	}
}

func (e *explainer) greedyChildren(ref, comp *tree.Node, path string, depth int) {
	for i, r := range ref.Children {
		if e.err != nil {
			return
		}
		if e.opts.Excludes.Has(r.Tag) {
			continue
		}
		childPath := tree.ChildPath(path, r.Tag, i)
		j := e.firstCandidate(r, comp.Children)
		if j < 0 {
			e.unmatched(r, comp.Children, i, childPath, depth+1)
			continue
		}
		if !e.match(r, comp.Children[j]) {
			e.mismatch(r, comp.Children[j], i, childPath, depth+1)
		}
	}
}

func (e *explainer) bipartiteChildren(ref, comp *tree.Node, path string, depth int) {
	pair, unmatched := e.pairChildren(ref, comp)
	used := make([]bool, len(comp.Children))
	for _, j := range pair {
		if j >= 0 {
			used[j] = true
		}
	}

	for _, i := range unmatched {
		if e.err != nil {
			return
		}
		r := ref.Children[i]
		childPath := tree.ChildPath(path, r.Tag, i)

		// A free comparison child with the same head is the likely counterpart
		// whose content differs further down: explain that pair.
		var free []*tree.Node
		j := -1
		for k, x := range comp.Children {
			if used[k] {
				continue
			}
			free = append(free, x)
			if j < 0 && e.headMatch(r, x) {
				j = k
			}
		}
		if j >= 0 {
			used[j] = true
			e.mismatch(r, comp.Children[j], i, childPath, depth+1)
			continue
		}
		e.unmatched(r, free, i, childPath, depth+1)
	}
}

func (e *explainer) mismatch(r, c *tree.Node, i int, path string, depth int) {
	e.node(r, c, path, depth)
	e.emit(diaglog.Entry{
		Kind: diaglog.KindChildMismatch, Depth: depth, Path: path, Tag: r.Tag,
		Message: fmt.Sprintf("child %d does not match: %s", i+1, r.Tag),
	})
}

func (e *explainer) unmatched(r *tree.Node, pool []*tree.Node, i int, path string, depth int) {
	for _, x := range pool {
		if x.Tag == r.Tag {
			e.head(r, x, path, depth)
			break
		}
	}
	e.emit(diaglog.Entry{
		Kind: diaglog.KindUnmatchedChild, Depth: depth, Path: path, Tag: r.Tag,
		Ref: tree.Render(r),
		Message: fmt.Sprintf("child %d: can not find a matching %s with same names and belonging values in the comparison",
			i+1, r.Tag),
	})
}
