package compare

import (
	"fmt"

	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/tree"
)

// comparator carries the resolved options through one comparison call.
// memo caches match verdicts per node pair for the duration of the call;
// nothing survives between calls.
type comparator struct {
	opts Options
	memo map[nodePair]bool
}

type nodePair struct {
	ref, comp *tree.Node
}

// Matches reports whether comp is structurally equivalent to ref.
//
// Steps, per node pair:
//  1. tag equality;
//  2. attribute names and values (AttributeNamesMatch, AttributeValuesMatch);
//  3. Text, then Tail (TextMatch rules with the configured wildcard);
//  4. children: equal counts, then pairing under the configured Strategy,
//     recursing into every pair.
//
// Matches has no side effects and never mutates either tree. A structural
// difference yields (false, nil); errors are returned only for malformed
// trees (see tree.Validate) or invalid options.
//
// Complexity: Greedy visits each reference node once with O(b) head checks
// per level, O(N·b) overall. Bipartite costs O(N) subtree comparisons when
// siblings are aligned; in the worst case every same-depth node pair is
// compared once (match verdicts are memoized per call), O(N²), plus the
// augmenting-path search. N = nodes, b = maximum branching factor.
func Matches(ref, comp *tree.Node, opts ...Option) (bool, error) {
	c, err := newComparator(ref, comp, opts)
	if err != nil {
		return false, err
	}

	return c.match(ref, comp), nil
}

// Compare is the usual driver: it runs Matches and, when the trees differ,
// opens a diagnostic session with open and runs Explain into it. The sink
// is closed on every path. A sink failure is fatal: (false, err) is
// returned and the comparison result is withheld.
//
// When the trees match, open is never called.
func Compare(ref, comp *tree.Node, open diaglog.Opener, opts ...Option) (bool, error) {
	ok, err := Matches(ref, comp, opts...)
	if err != nil || ok {
		return ok, err
	}
	err = diaglog.Run(open, func(sink diaglog.Sink) error {
		return Explain(ref, comp, sink, opts...)
	})
	if err != nil {
		return false, err
	}

	return false, nil
}

func newComparator(ref, comp *tree.Node, opts []Option) (*comparator, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(ref); err != nil {
		return nil, fmt.Errorf("compare: reference tree: %w", err)
	}
	if err := tree.Validate(comp); err != nil {
		return nil, fmt.Errorf("compare: comparison tree: %w", err)
	}

	return &comparator{opts: o, memo: make(map[nodePair]bool)}, nil
}

// match memoizes matchNode per node pair.
func (c *comparator) match(ref, comp *tree.Node) bool {
	key := nodePair{ref, comp}
	if v, ok := c.memo[key]; ok {
		return v
	}
	v := c.matchNode(ref, comp)
	c.memo[key] = v

	return v
}

func (c *comparator) matchNode(ref, comp *tree.Node) bool {
	if !c.headMatch(ref, comp) {
		return false
	}
	if !textMatch(ref.Text, comp.Text, c.opts.Wildcard) {
		return false
	}
	if !textMatch(ref.Tail, comp.Tail, c.opts.Wildcard) {
		return false
	}

	return c.childrenMatch(ref, comp)
}
