package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treecmp/compare"
	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/tree"
)

func TestDefaultOptions(t *testing.T) {
	o := compare.DefaultOptions()
	assert.Equal(t, compare.Bipartite, o.Strategy)
	assert.Equal(t, compare.DefaultWildcard, o.Wildcard)
	assert.Empty(t, o.Excludes)
}

func TestParseStrategy(t *testing.T) {
	s, err := compare.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, compare.Bipartite, s)

	s, err = compare.ParseStrategy(" Greedy ")
	require.NoError(t, err)
	assert.Equal(t, compare.Greedy, s)

	_, err = compare.ParseStrategy("hungarian")
	assert.ErrorIs(t, err, compare.ErrUnknownStrategy)

	assert.Equal(t, "Strategy(7)", compare.Strategy(7).String())
}

// TestOptionViolations: invalid options surface from every entry point.
func TestOptionViolations(t *testing.T) {
	a := tree.New("a")
	bad := [][]compare.Option{
		{compare.WithStrategy(compare.Strategy(42))},
		{compare.WithWildcard("")},
	}
	for _, opts := range bad {
		_, err := compare.Matches(a, a, opts...)
		assert.ErrorIs(t, err, compare.ErrOptionViolation)

		err = compare.Explain(a, a, diaglog.NewMemorySink(), opts...)
		assert.ErrorIs(t, err, compare.ErrOptionViolation)

		_, err = compare.Compare(a, a, diaglog.Static(diaglog.Discard), opts...)
		assert.ErrorIs(t, err, compare.ErrOptionViolation)
	}
}
