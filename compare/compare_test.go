package compare_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treecmp/compare"
	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/tree"
)

var strategies = []compare.Strategy{compare.Bipartite, compare.Greedy}

// TestMatches_Scenarios covers the reference scenarios under both strategies.
func TestMatches_Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		ref      string
		comp     string
		excludes []string
		want     bool
	}{
		{"identical attributes", `<a x="1" y="2"/>`, `<a x="1" y="2"/>`, nil, true},
		{"extra attribute", `<a x="1"/>`, `<a x="1" z="3"/>`, nil, false},
		{"extra attribute excluded", `<a x="1"/>`, `<a x="1" z="3"/>`, []string{"z"}, true},
		{"wildcard text", `<a><b>5</b></a>`, `<a><b>*</b></a>`, nil, true},
		{"children length", `<a><b/><c/></a>`, `<a><b/></a>`, nil, false},
		{"child attribute value", `<a><b k="1"/></a>`, `<a><b k="2"/></a>`, nil, false},
		{"tag differs", `<a/>`, `<b/>`, nil, false},
		{"missing attribute", `<a x="1" y="2"/>`, `<a x="1"/>`, nil, false},
		{"missing attribute excluded", `<a x="1" y="2"/>`, `<a x="1"/>`, []string{"y"}, true},
		{"text differs", `<a>5</a>`, `<a>6</a>`, nil, false},
		{"tail differs", `<a><b/>x</a>`, `<a><b/>y</a>`, nil, false},
		{"child order ignored", `<a><b/><c k="1"/></a>`, `<a><c k="1"/><b/></a>`, nil, true},
	}
	for _, s := range strategies {
		for _, tc := range cases {
			t.Run(s.String()+"/"+tc.name, func(t *testing.T) {
				ok, err := compare.Matches(mustXML(t, tc.ref), mustXML(t, tc.comp),
					compare.WithStrategy(s), compare.WithExcludes(tc.excludes...))
				require.NoError(t, err)
				assert.Equal(t, tc.want, ok)
			})
		}
	}
}

// TestMatches_ExclusionEfficacy: a difference only in attribute "t" disappears
// once "t" is excluded, at any depth and on either side.
func TestMatches_ExclusionEfficacy(t *testing.T) {
	ref := mustXML(t, `<a x="1" t="100"><b t="1"><c t="9"/></b></a>`)
	comp := mustXML(t, `<a x="1" t="200"><b t="2"><c/></b></a>`)

	for _, s := range strategies {
		ok, err := compare.Matches(ref, comp, compare.WithStrategy(s))
		require.NoError(t, err)
		assert.False(t, ok, "%s: differing t must fail", s)

		ok, err = compare.Matches(ref, comp, compare.WithStrategy(s), compare.WithExcludes("t"))
		require.NoError(t, err)
		assert.True(t, ok, "%s: excluded t must be ignored", s)
	}
}

// TestMatches_ExcludedChildTag: a reference child whose tag is excluded is not matched.
func TestMatches_ExcludedChildTag(t *testing.T) {
	ref := mustXML(t, `<a><b/><meta v="1"/></a>`)
	comp := mustXML(t, `<a><b/><meta v="2"/></a>`)

	for _, s := range strategies {
		ok, err := compare.Matches(ref, comp, compare.WithStrategy(s))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = compare.Matches(ref, comp, compare.WithStrategy(s), compare.WithExcludes("meta"))
		require.NoError(t, err)
		assert.True(t, ok, "%s: excluded child tag must be skipped", s)
	}
}

// TestMatches_LengthSensitivity: a count difference at any depth fails.
func TestMatches_LengthSensitivity(t *testing.T) {
	ref := mustXML(t, `<a><b><c/></b></a>`)
	comp := mustXML(t, `<a><b><c/><c/></b></a>`)

	for _, s := range strategies {
		ok, err := compare.Matches(ref, comp, compare.WithStrategy(s))
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

// TestMatches_WhitespaceInsensitive: pretty-printing does not matter.
func TestMatches_WhitespaceInsensitive(t *testing.T) {
	ref := mustXML(t, "<a>\n  <b>  5 \n</b>\n  <c/>\n</a>")
	comp := mustXML(t, `<a><b>5</b><c/></a>`)

	for _, s := range strategies {
		ok, err := compare.Matches(ref, comp, compare.WithStrategy(s))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

// TestMatches_NoMutation verifies neither tree is modified.
func TestMatches_NoMutation(t *testing.T) {
	ref := mustXML(t, `<a x="1"><c/><b>5</b></a>`)
	comp := mustXML(t, `<a x="1"><b>5</b><c/></a>`)
	refCopy, compCopy := ref.Clone(), comp.Clone()

	_, err := compare.Matches(ref, comp)
	require.NoError(t, err)
	assert.Equal(t, refCopy, ref)
	assert.Equal(t, compCopy, comp)
}

func TestMatches_MalformedInput(t *testing.T) {
	good := tree.New("a")

	_, err := compare.Matches(nil, good)
	assert.ErrorIs(t, err, tree.ErrNilNode)

	_, err = compare.Matches(good, tree.New("a").Append(tree.New("")))
	assert.ErrorIs(t, err, tree.ErrEmptyTag)

	shared := tree.New("s")
	_, err = compare.Matches(tree.New("a").Append(shared, shared), good)
	assert.ErrorIs(t, err, tree.ErrSharedNode)
}

// TestCompare_MatchSkipsSink: the opener is not called for equal trees.
func TestCompare_MatchSkipsSink(t *testing.T) {
	called := false
	open := func() (diaglog.Sink, error) {
		called = true

		return diaglog.Discard, nil
	}

	ok, err := compare.Compare(mustXML(t, `<a/>`), mustXML(t, `<a/>`), open)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, called)
}

// TestCompare_MismatchExplainsAndCloses checks the session is populated and closed.
func TestCompare_MismatchExplainsAndCloses(t *testing.T) {
	sink := diaglog.NewMemorySink()

	ok, err := compare.Compare(mustXML(t, `<a><b/><c/></a>`), mustXML(t, `<a><b/></a>`), diaglog.Static(sink))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, sink.Closed(), "sink must be closed when the session ends")
	assert.Contains(t, sink.Lines(), "/a: children length differs: 2 != 1")
}

// TestCompare_SinkFailureIsFatal: open and write failures surface as errors.
func TestCompare_SinkFailureIsFatal(t *testing.T) {
	ref, comp := mustXML(t, `<a x="1"/>`), mustXML(t, `<a x="2"/>`)

	_, err := compare.Compare(ref, comp, func() (diaglog.Sink, error) { return nil, errSinkBroken })
	assert.ErrorIs(t, err, errSinkBroken)

	fs := &failingSink{}
	ok, err := compare.Compare(ref, comp, diaglog.Static(fs))
	assert.ErrorIs(t, err, errSinkBroken)
	assert.False(t, ok)
	assert.True(t, fs.closed, "sink must be closed after a write failure")
}

// TestCompare_ConcurrentSessions runs independent comparisons over shared
// read-only trees; each session owns its sink.
func TestCompare_ConcurrentSessions(t *testing.T) {
	ref := mustXML(t, `<a><b k="1"/><c>x</c></a>`)
	same := mustXML(t, `<a><c> x </c><b k="1"/></a>`)
	diff := mustXML(t, `<a><b k="2"/><c>x</c></a>`)

	const workers = 16
	sinks := make([]*diaglog.MemorySink, workers)
	results := make([]bool, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		sinks[i] = diaglog.NewMemorySink()
		comp := same
		if i%2 == 1 {
			comp = diff
		}
		wg.Add(1)
		go func(i int, comp *tree.Node) {
			defer wg.Done()
			results[i], errs[i] = compare.Compare(ref, comp, diaglog.Static(sinks[i]))
		}(i, comp)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if i%2 == 0 {
			assert.True(t, results[i])
			assert.Empty(t, sinks[i].Entries())
			assert.False(t, sinks[i].Closed(), "matching session never opens its sink")
		} else {
			assert.False(t, results[i])
			assert.NotEmpty(t, sinks[i].Entries())
			assert.True(t, sinks[i].Closed())
		}
	}
}
