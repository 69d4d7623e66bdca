// Package treecmp checks generated XML and HTML documents against stored
// reference snapshots by structure rather than by bytes.
//
// Two documents match when their element trees agree on tags, attribute
// names and values, and whitespace-trimmed text and tail, with children
// compared as an unordered collection. Attributes named in an exclusion
// list are ignored at every depth, and a text value of exactly "*" matches
// anything.
//
// Everything is organized under a handful of subpackages:
//
//	tree/     - element tree model, XML and HTML parsers, validation
//	compare/  - Matches (boolean verdict) and Explain (diagnostics)
//	diaglog/  - diagnostic sinks: memory, writer, log file, SQLite
//	profile/  - YAML comparison profiles
//	snapshot/ - Verify/Update of reference files on disk
//	cmd/treecmp - command-line driver
//
// Quick example:
//
//	ref, _ := tree.ParseXMLFile("testdata/grid.vtr")
//	out, _ := tree.ParseXMLFile("out/grid.vtr")
//	ok, err := compare.Matches(ref, out, compare.WithExcludes("created"))
//
//	go get github.com/katalvlaran/treecmp
package treecmp
