package compare_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treecmp/diaglog"
	"github.com/katalvlaran/treecmp/tree"
)

// mustXML parses src or fails the test.
func mustXML(t testing.TB, src string) *tree.Node {
	t.Helper()
	n, err := tree.ParseXML(strings.NewReader(src))
	require.NoError(t, err)

	return n
}

// kinds projects entries onto their kinds, in order.
func kinds(entries []diaglog.Entry) []diaglog.Kind {
	out := make([]diaglog.Kind, len(entries))
	for i, e := range entries {
		out[i] = e.Kind
	}

	return out
}

// failingSink fails every write after the first `ok` writes.
type failingSink struct {
	ok     int
	writes int
	closed bool
}

var errSinkBroken = errors.New("sink broken")

func (s *failingSink) Write(diaglog.Entry) error {
	s.writes++
	if s.writes > s.ok {
		return errSinkBroken
	}

	return nil
}

func (s *failingSink) Close() error {
	s.closed = true

	return nil
}
