package compare

import (
	"fmt"
	"strings"
)

// DefaultWildcard is the text token that matches any text or tail.
const DefaultWildcard = "*"

// Strategy selects how reference children are paired with comparison children.
type Strategy int

const (
	// Bipartite requires an injective pairing in which every non-excluded
	// reference child matches its partner recursively.
	Bipartite Strategy = iota

	// Greedy pairs each reference child with the first comparison child of
	// equal tag and attributes and fails if that pair does not match.
	Greedy
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case Bipartite:
		return "bipartite"
	case Greedy:
		return "greedy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "greedy" / "bipartite" (case-insensitive) to a Strategy.
// The empty string yields the default, Bipartite.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bipartite":
		return Bipartite, nil
	case "greedy":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// ExcludeSet holds attribute names ignored by every attribute check, at every
// depth. A reference child whose tag is in the set is not matched at all.
type ExcludeSet map[string]struct{}

// NewExcludeSet builds an ExcludeSet from names.
func NewExcludeSet(names ...string) ExcludeSet {
	s := make(ExcludeSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

// Has reports whether name is excluded. A nil set excludes nothing.
func (s ExcludeSet) Has(name string) bool {
	_, ok := s[name]

	return ok
}

// Option configures a comparison via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation when
// Matches, Explain or Compare is invoked.
type Option func(*Options)

// Options holds the resolved comparison parameters.
type Options struct {
	// Excludes lists attribute names (and child tags) to ignore.
	Excludes ExcludeSet

	// Strategy selects the child matching algorithm.
	Strategy Strategy

	// Wildcard is the text token that matches anything. Compared exactly,
	// without trimming.
	Wildcard string

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with no exclusions, Bipartite matching
// and the "*" wildcard.
func DefaultOptions() Options {
	return Options{
		Excludes: ExcludeSet{},
		Strategy: Bipartite,
		Wildcard: DefaultWildcard,
	}
}

// WithExcludes adds attribute names to the exclusion list. May be repeated.
func WithExcludes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.Excludes[n] = struct{}{}
		}
	}
}

// WithStrategy selects the child matching strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		switch s {
		case Bipartite, Greedy:
			o.Strategy = s
		default:
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, int(s))
		}
	}
}

// WithWildcard overrides the wildcard token. An empty token is rejected,
// since it would make every absent text a wildcard.
func WithWildcard(token string) Option {
	return func(o *Options) {
		if token == "" {
			o.err = fmt.Errorf("%w: wildcard must be non-empty", ErrOptionViolation)

			return
		}
		o.Wildcard = token
	}
}

// resolve applies opts over DefaultOptions.
func resolve(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o, o.err
}
